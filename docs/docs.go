// Package docs registers the swagger document for the invoice API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/invoices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "List invoices",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "1-based page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Rows per page", "name": "pageSize", "in": "query"},
                    {"type": "string", "description": "Case-insensitive substring of the invoice label", "name": "search", "in": "query"},
                    {"type": "string", "description": "Exact status", "name": "status", "in": "query"},
                    {"type": "string", "description": "Exact payment method", "name": "method", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/invoices.ListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            },
            "post": {
                "description": "Accepts {\"data\": [row, ...]} or a single row object. Rows that fail validation or insertion are reported in skippedRows.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Create invoices",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CreateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        },
        "/invoices/import": {
            "post": {
                "description": "First sheet only; the header row supplies field names (InvoiceNumber, Status, Method, Amount).",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Import invoices from a spreadsheet",
                "parameters": [
                    {"type": "file", "description": "Spreadsheet (.xlsx or .xls)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CreateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        },
        "/invoices/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["invoices"],
                "summary": "Export invoices",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive substring of the invoice label", "name": "search", "in": "query"},
                    {"type": "string", "description": "Exact status", "name": "status", "in": "query"},
                    {"type": "string", "description": "Exact payment method", "name": "method", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        },
        "/invoices/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get an invoice",
                "parameters": [
                    {"type": "integer", "description": "Invoice ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Invoice"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        },
        "/imports/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["imports"],
                "summary": "Get an import batch",
                "parameters": [
                    {"type": "string", "description": "Import batch ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ImportBatch"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.CreateResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "batchId": {"type": "string"},
                "createdInvoices": {"type": "array", "items": {"$ref": "#/definitions/models.Invoice"}},
                "skippedRows": {"type": "array", "items": {"$ref": "#/definitions/invoices.SkippedRow"}}
            }
        },
        "invoices.ListResult": {
            "type": "object",
            "properties": {
                "invoices": {"type": "array", "items": {"$ref": "#/definitions/models.Invoice"}},
                "total": {"type": "integer"}
            }
        },
        "invoices.SkippedRow": {
            "type": "object",
            "properties": {
                "row": {"type": "object", "additionalProperties": true},
                "reason": {"type": "string"}
            }
        },
        "models.Invoice": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "invoice": {"type": "string"},
                "status": {"type": "string"},
                "method": {"type": "string"},
                "amount": {"type": "number"}
            }
        },
        "models.ImportBatch": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "filename": {"type": "string"},
                "totalRows": {"type": "integer"},
                "createdCount": {"type": "integer"},
                "skippedCount": {"type": "integer"},
                "skippedRows": {"type": "array", "items": {"$ref": "#/definitions/invoices.SkippedRow"}},
                "status": {"type": "string"},
                "startedAt": {"type": "string"},
                "completedAt": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice Dashboard API",
	Description:      "List, filter, create, import and export invoices.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
