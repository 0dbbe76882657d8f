package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/services/export"
	"invoice-dashboard-backend/internal/services/invoices"
	"invoice-dashboard-backend/internal/spreadsheet"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	service     *invoices.InvoiceService
	records     InvoiceReader
	batches     BatchReader
	exporter    *export.Assembler
	maxFileSize int64
}

// InvoiceReader looks up a single stored invoice.
type InvoiceReader interface {
	GetByID(ctx context.Context, id uint) (*models.Invoice, error)
}

// BatchReader looks up recorded imports.
type BatchReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ImportBatch, error)
}

func NewInvoiceHandler(s *invoices.InvoiceService, records InvoiceReader, batches BatchReader, exporter *export.Assembler, maxFileSize int64) *InvoiceHandler {
	return &InvoiceHandler{
		service:     s,
		records:     records,
		batches:     batches,
		exporter:    exporter,
		maxFileSize: maxFileSize,
	}
}

// CreateResponse is the body of a successful create or import.
type CreateResponse struct {
	Message         string                `json:"message"`
	BatchID         string                `json:"batchId,omitempty"`
	CreatedInvoices []models.Invoice      `json:"createdInvoices"`
	SkippedRows     []invoices.SkippedRow `json:"skippedRows"`
}

// ListInvoices returns one page of the filtered listing
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param pageSize query int false "Rows per page" default(5)
// @Param search query string false "Case-insensitive substring of the invoice label"
// @Param status query string false "Exact status"
// @Param method query string false "Exact payment method"
// @Success 200 {object} invoices.ListResult
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, err := getQueryInt(c, "page")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	pageSize, err := getQueryInt(c, "pageSize")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), invoices.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Method:   c.Query("method"),
	})
	if errors.Is(err, invoices.ErrInvalidListParams) {
		respondBadRequest(c, err.Error())
		return
	}
	if err != nil {
		log.Println("ERROR listing invoices:", err)
		respondInternalServerError(c, MsgDatabaseError)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateInvoices creates one invoice or a batch of them
// @Summary Create invoices
// @Description Accepts {"data": [row, ...]} or a single row object. Rows that fail validation or insertion are reported in skippedRows.
// @Tags invoices
// @Accept json
// @Produce json
// @Success 201 {object} CreateResponse
// @Failure 400 {object} MessageResponse
// @Failure 413 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoices(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize)

	body, err := io.ReadAll(c.Request.Body)
	if isTooLarge(err) {
		respondWithError(c, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
		return
	}
	if err != nil {
		log.Println("ERROR reading request body:", err)
		respondInternalServerError(c, MsgServerError)
		return
	}

	rows, err := invoices.DecodePayload(body)
	if err != nil {
		respondBadRequest(c, MsgInvalidInputBody)
		return
	}

	h.ingest(c, rows, "")
}

// ImportInvoices creates invoices from an uploaded spreadsheet
// @Summary Import invoices from a spreadsheet
// @Description First sheet only; the header row supplies field names (InvoiceNumber, Status, Method, Amount).
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet (.xlsx or .xls)"
// @Success 201 {object} CreateResponse
// @Failure 400 {object} MessageResponse
// @Failure 413 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /invoices/import [post]
func (h *InvoiceHandler) ImportInvoices(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize)

	file, header, err := c.Request.FormFile("file")
	if isTooLarge(err) {
		respondWithError(c, http.StatusRequestEntityTooLarge, MsgFileTooLarge)
		return
	}
	if err != nil {
		log.Println("ERROR: no file received:", err)
		respondBadRequest(c, MsgFileRequired)
		return
	}
	defer file.Close()

	log.Println("Received file:", header.Filename, "size:", header.Size)

	if err := spreadsheet.CheckExtension(header.Filename); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	rows, err := spreadsheet.ReadRows(file)
	if err != nil {
		log.Println("ERROR reading spreadsheet:", err)
		respondBadRequest(c, err.Error())
		return
	}

	h.ingest(c, rows, header.Filename)
}

// ingest runs the normalizer and writes the 201 report. A non-empty filename
// marks a spreadsheet import, which is also recorded as an ImportBatch.
func (h *InvoiceHandler) ingest(c *gin.Context, rows []invoices.RawRow, filename string) {
	startedAt := time.Now()

	result, err := h.service.Ingest(c.Request.Context(), rows)
	if errors.Is(err, invoices.ErrNoInvoiceData) {
		respondBadRequest(c, MsgNoInvoiceData)
		return
	}
	if err != nil {
		log.Println("ERROR creating invoices:", err)
		respondInternalServerError(c, MsgServerError)
		return
	}

	resp := CreateResponse{
		Message:         result.Message(),
		CreatedInvoices: result.Created,
		SkippedRows:     result.Skipped,
	}

	if filename != "" {
		batch, err := h.service.RecordImport(c.Request.Context(), filename, startedAt, result)
		if err != nil {
			log.Println("ERROR recording import batch:", err)
		} else {
			resp.BatchID = batch.ID.String()
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// ExportInvoices streams every matching invoice as an xlsx workbook
// @Summary Export invoices
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Case-insensitive substring of the invoice label"
// @Param status query string false "Exact status"
// @Param method query string false "Exact payment method"
// @Success 200 {file} file
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /invoices/export [get]
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	wb, err := h.exporter.Build(c.Request.Context(), export.Filter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Method: c.Query("method"),
	})
	if errors.Is(err, export.ErrNothingToExport) {
		respondNotFound(c, MsgNothingToExport)
		return
	}
	if err != nil {
		log.Println("ERROR exporting invoices:", err)
		respondInternalServerError(c, MsgExportFailed)
		return
	}

	if wb.Truncated {
		log.Printf("Export truncated: %d of %d invoices written", len(wb.Rows), wb.Total)
		c.Header("X-Export-Truncated", "true")
	}
	c.Header("X-Export-Total", strconv.FormatInt(wb.Total, 10))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+wb.Filename+`"`)
	c.Status(http.StatusOK)

	if _, err := wb.WriteTo(c.Writer); err != nil {
		log.Println("ERROR writing export workbook:", err)
	}
}

// GetInvoice returns one invoice by ID
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} models.Invoice
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		respondBadRequest(c, MsgInvalidInvoiceID)
		return
	}

	invoice, err := h.records.GetByID(c.Request.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, MsgInvoiceNotFound)
		return
	}
	if err != nil {
		log.Println("ERROR loading invoice:", err)
		respondInternalServerError(c, MsgDatabaseError)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetImportBatch returns the report of a recorded spreadsheet import
// @Summary Get an import batch
// @Tags imports
// @Produce json
// @Param id path string true "Import batch ID"
// @Success 200 {object} models.ImportBatch
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /imports/{id} [get]
func (h *InvoiceHandler) GetImportBatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, MsgInvalidImportID)
		return
	}

	batch, err := h.batches.GetByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, MsgImportNotFound)
		return
	}
	if err != nil {
		log.Println("ERROR loading import batch:", err)
		respondInternalServerError(c, MsgDatabaseError)
		return
	}

	c.JSON(http.StatusOK, batch)
}
