package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Document Manager API",
        "description": "API for modeling document types, columns and documents",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Document Types", "description": "Managing the document types, the base of the API"},
        {"name": "Columns", "description": "Managing the columns, necessary for creating a document"},
        {"name": "Documents", "description": "Managing documents and their field values"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/doctypes": {
            "get": {
                "tags": ["Document Types"],
                "summary": "List document types with their columns",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Document Types"],
                "summary": "Create a document type",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDocumentTypeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Duplicate name"}
                }
            }
        },
        "/doctypes/{id}": {
            "get": {
                "tags": ["Document Types"],
                "summary": "Get a document type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Document Types"],
                "summary": "Update a document type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDocumentTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"},
                    "409": {"description": "Duplicate name"}
                }
            },
            "delete": {
                "tags": ["Document Types"],
                "summary": "Soft-delete a document type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Dependents still reference the type"}
                }
            }
        },
        "/columns": {
            "get": {
                "tags": ["Columns"],
                "summary": "List columns with their document type",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Columns"],
                "summary": "Create a column under a document type",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateColumnRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "404": {"description": "Document type not found"}
                }
            }
        },
        "/columns/{id}": {
            "get": {
                "tags": ["Columns"],
                "summary": "Get a column",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Columns"],
                "summary": "Update a column",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateColumnRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Columns"],
                "summary": "Soft-delete a column",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Dependents still reference the column"}
                }
            }
        },
        "/documents": {
            "get": {
                "tags": ["Documents"],
                "summary": "List documents with their document type",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Documents"],
                "summary": "Create a document with its field values",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDocumentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error or column type mismatch"},
                    "409": {"description": "Persistence conflict"}
                }
            }
        },
        "/documents/{id}": {
            "get": {
                "tags": ["Documents"],
                "summary": "Get a document with its projected data",
                "description": "The rel_id of each data entry is what addresses that value on update and delete.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Documents"],
                "summary": "Update a document and/or its field values",
                "description": "Each column entry either edits an existing value (rel_id + content) or populates a new column (id + content). Malformed entries are ignored.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDocumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error or column type mismatch"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Documents"],
                "summary": "Delete a document, or one field value when rel_id is supplied",
                "description": "Documents are NOT soft-deleted. With rel_id only that field value is removed and the document stays.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/DeleteDocumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Persistence conflict"}
                }
            }
        },
        "/documents/{id}/download": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download a document with all its values",
                "description": "Renders the document as PDF by default; pass format=csv for CSV.",
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "required": false, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "The document formatted as a file"},
                    "404": {"description": "Not found"}
                }
            }
        }
    },
    "definitions": {
        "CreateDocumentTypeRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "minLength": 3},
                "active": {"type": "boolean"}
            }
        },
        "UpdateDocumentTypeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "minLength": 3},
                "active": {"type": "boolean"}
            }
        },
        "CreateColumnRequest": {
            "type": "object",
            "required": ["name", "document_types_id"],
            "properties": {
                "name": {"type": "string", "minLength": 3},
                "document_types_id": {"type": "integer"}
            }
        },
        "UpdateColumnRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "minLength": 3},
                "document_types_id": {"type": "integer"}
            }
        },
        "FieldEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "rel_id": {"type": "integer"},
                "content": {"type": "string", "minLength": 3}
            }
        },
        "CreateDocumentRequest": {
            "type": "object",
            "required": ["name", "document_types_id", "column"],
            "properties": {
                "name": {"type": "string", "minLength": 3},
                "document_types_id": {"type": "integer"},
                "column": {"type": "array", "items": {"$ref": "#/definitions/FieldEntry"}}
            }
        },
        "UpdateDocumentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "minLength": 3},
                "column": {"type": "array", "items": {"$ref": "#/definitions/FieldEntry"}}
            }
        },
        "DeleteDocumentRequest": {
            "type": "object",
            "properties": {
                "rel_id": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "message": {"type": "string"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
