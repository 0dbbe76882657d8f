package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "invoice-dashboard-backend/docs"
	handler "invoice-dashboard-backend/internal/handlers"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/export"
	"invoice-dashboard-backend/internal/services/invoices"
)

// Options carries the settings the handlers need beyond the DB handle.
type Options struct {
	CurrencyPrefix string
	MaxUploadBytes int64
}

// RegisterRoutes wires repositories, services and handlers around the one
// shared DB handle and mounts them at the root and under /api.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, opts Options) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	batchRepo := repository.NewImportBatchRepository(db)

	invoiceService := invoices.NewInvoiceService(invoiceRepo, batchRepo)
	exporter := export.NewAssembler(invoiceService, opts.CurrencyPrefix)

	invoiceHandler := handler.NewInvoiceHandler(invoiceService, invoiceRepo, batchRepo, exporter, opts.MaxUploadBytes)

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)

	api := r.Group("/api")
	api.GET("/health", health)

	for _, g := range []*gin.RouterGroup{&r.RouterGroup, api} {
		invoiceRoutes := g.Group("/invoices")
		{
			invoiceRoutes.GET("", invoiceHandler.ListInvoices)
			invoiceRoutes.POST("", invoiceHandler.CreateInvoices)
			invoiceRoutes.POST("/import", invoiceHandler.ImportInvoices)
			invoiceRoutes.GET("/export", invoiceHandler.ExportInvoices)
			invoiceRoutes.GET("/:id", invoiceHandler.GetInvoice)
		}
		g.GET("/imports/:id", invoiceHandler.GetImportBatch)
	}

	// Swagger UI at /api-docs/index.html
	r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
