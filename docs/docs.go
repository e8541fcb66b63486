// Package docs registers the OpenAPI description served under /swagger.
// Keep it in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/bulk": {
            "post": {
                "description": "Upload a ZIP of PDFs (max 100MB); the processing service's result file is returned as-is",
                "consumes": ["multipart/form-data"],
                "produces": ["application/octet-stream"],
                "tags": ["bulk"],
                "summary": "Process a ZIP archive",
                "parameters": [
                    {"type": "file", "description": "ZIP archive", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "default": "spend", "description": "spend or activity", "name": "methodology", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Result file with X-Processed-Count, X-Failed-Count and X-Total-Files headers", "schema": {"type": "file"}},
                    "400": {"description": "Missing or invalid file", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "409": {"description": "Submission already in progress", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Processing service error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/single": {
            "get": {
                "produces": ["application/json"],
                "tags": ["single"],
                "summary": "Get single-document state",
                "responses": {
                    "200": {"description": "Current state", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            },
            "post": {
                "description": "Upload a PDF (max 50MB) with a methodology; returns the normalized rows and the column registry",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["single"],
                "summary": "Process a single PDF",
                "parameters": [
                    {"type": "file", "description": "PDF to process", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "default": "spend", "description": "spend or activity", "name": "methodology", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Processed", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Missing or invalid file", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "409": {"description": "Submission already in progress", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Unusable response shape", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Processing service error", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["single"],
                "summary": "Reset the single-document state",
                "responses": {
                    "200": {"description": "Fresh state", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "409": {"description": "Submission in progress", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/single/columns/all": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["single"],
                "summary": "Select or deselect every column",
                "parameters": [
                    {"description": "Inclusion flag", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SetAllColumnsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated state", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid body or no data", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/single/columns/{key}": {
            "patch": {
                "description": "Toggle inclusion and/or set the display name of a column",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["single"],
                "summary": "Update one column",
                "parameters": [
                    {"type": "string", "description": "Original column key", "name": "key", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateColumnRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated state", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid body", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Unknown column", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/single/export": {
            "get": {
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["single"],
                "summary": "Download the curated rows",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Export file", "schema": {"type": "file"}},
                    "400": {"description": "No columns selected, no data, or bad format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Reports whether the processing service answers HTTP",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "INVALID_PDF"},
                "message": {"type": "string", "example": "please select a valid PDF file"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "error": {"type": "string", "example": "processing service not reachable"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handler.SetAllColumnsRequest": {
            "type": "object",
            "required": ["included"],
            "properties": {
                "included": {"type": "boolean"}
            }
        },
        "handler.UpdateColumnRequest": {
            "type": "object",
            "properties": {
                "display_name": {"type": "string"},
                "included": {"type": "boolean"}
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
	Title:            "Carbonfront API",
	Description:      "Front end for the emissions processing service: single PDF curation and bulk ZIP processing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
