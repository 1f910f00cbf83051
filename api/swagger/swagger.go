package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ISP Back Office API",
        "description": "Customer, bundle and payment administration for the ISP dashboard",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Admin sign in"},
        {"name": "Customers", "description": "Subscriber records and their bundle subscriptions"},
        {"name": "Bundles", "description": "Service bundle catalogue"},
        {"name": "Payments", "description": "Customer payments"},
        {"name": "Drafts", "description": "Bundle subscription editing sessions"},
        {"name": "Snapshots", "description": "In-memory collections behind list views"}
    ],
    "parameters": {
        "search": {"name": "search", "in": "query", "type": "string", "description": "Case-insensitive substring match over every field"},
        "sort": {"name": "sort", "in": "query", "type": "string"},
        "dir": {"name": "dir", "in": "query", "type": "string", "enum": ["asc", "desc"]},
        "page": {"name": "page", "in": "query", "type": "integer"},
        "pageSize": {"name": "pageSize", "in": "query", "type": "integer"},
        "format": {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
        "id": {"name": "id", "in": "path", "type": "string", "required": true},
        "tempId": {"name": "tempId", "in": "path", "type": "string", "required": true}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in as an admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current admin profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/customers": {
            "get": {
                "tags": ["Customers"],
                "summary": "List customers",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/search"}, {"$ref": "#/parameters/sort"}, {"$ref": "#/parameters/dir"},
                    {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/pageSize"},
                    {"name": "filter[status]", "in": "query", "type": "string"},
                    {"name": "filter[location.city]", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Customers"],
                "summary": "Create customer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CustomerPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/customers/filters": {
            "get": {
                "tags": ["Customers"],
                "summary": "Distinct filter options",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/customers/export": {
            "get": {
                "tags": ["Customers"],
                "summary": "Export the filtered customer view",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"$ref": "#/parameters/format"}, {"$ref": "#/parameters/search"}, {"$ref": "#/parameters/sort"}, {"$ref": "#/parameters/dir"}],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/customers/{id}": {
            "get": {
                "tags": ["Customers"],
                "summary": "Get customer",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Customers"],
                "summary": "Replace customer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CustomerPayload"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Customers"],
                "summary": "Delete customer (superadmin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"204": {"description": "Deleted"}, "403": {"description": "Forbidden"}}
            }
        },
        "/bundles": {
            "get": {
                "tags": ["Bundles"],
                "summary": "List bundles",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/search"}, {"$ref": "#/parameters/sort"}, {"$ref": "#/parameters/dir"},
                    {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/pageSize"},
                    {"name": "filter[status]", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Bundles"],
                "summary": "Create bundle",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BundlePayload"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/bundles/filters": {
            "get": {
                "tags": ["Bundles"],
                "summary": "Distinct filter options",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/bundles/export": {
            "get": {
                "tags": ["Bundles"],
                "summary": "Export the filtered bundle view",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"$ref": "#/parameters/format"}],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/bundles/{id}": {
            "get": {
                "tags": ["Bundles"],
                "summary": "Get bundle",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Bundles"],
                "summary": "Replace bundle",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BundlePayload"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Bundles"],
                "summary": "Delete bundle (superadmin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"204": {"description": "Deleted"}, "409": {"description": "Bundle has active subscriptions"}}
            }
        },
        "/payments": {
            "get": {
                "tags": ["Payments"],
                "summary": "List payments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/search"}, {"$ref": "#/parameters/sort"}, {"$ref": "#/parameters/dir"},
                    {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/pageSize"},
                    {"name": "filter[status]", "in": "query", "type": "string"},
                    {"name": "filter[method]", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Payments"],
                "summary": "Record payment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentPayload"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/payments/filters": {
            "get": {
                "tags": ["Payments"],
                "summary": "Distinct filter options",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/payments/export": {
            "get": {
                "tags": ["Payments"],
                "summary": "Export the filtered payment view",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"$ref": "#/parameters/format"}],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/payments/{id}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Get payment",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/snapshots": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "List snapshot states",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/snapshots/{resource}": {
            "get": {
                "tags": ["Snapshots"],
                "summary": "Get snapshot state",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "resource", "in": "path", "type": "string", "required": true, "enum": ["customers", "bundles", "payments"]}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/snapshots/{resource}/refresh": {
            "post": {
                "tags": ["Snapshots"],
                "summary": "Queue a snapshot refresh",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "resource", "in": "path", "type": "string", "required": true}],
                "responses": {"202": {"description": "Accepted"}, "503": {"description": "Queue unavailable"}}
            }
        },
        "/drafts": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Open a subscription editing session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/CreateDraftRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/drafts/{id}": {
            "get": {
                "tags": ["Drafts"],
                "summary": "Get draft",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Drafts"],
                "summary": "Discard draft",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"204": {"description": "Discarded"}}
            }
        },
        "/drafts/{id}/entries": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Add a bundle subscription entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddEntryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Entry limit reached", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/drafts/{id}/entries/{tempId}": {
            "patch": {
                "tags": ["Drafts"],
                "summary": "Update one entry field",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/tempId"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateFieldRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/drafts/{id}/entries/{tempId}/status": {
            "put": {
                "tags": ["Drafts"],
                "summary": "Set entry status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/tempId"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/drafts/{id}/entries/{tempId}/copy-primary": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Copy the primary location into an entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/tempId"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CopyLocationRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/drafts/{id}/entries/{tempId}/toggle": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Expand or collapse an entry",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/tempId"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/drafts/{id}/entries/{tempId}/removal": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Ask to remove an entry",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/tempId"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/drafts/{id}/removal/confirm": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Confirm the pending removal",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No pending removal", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/drafts/{id}/removal": {
            "delete": {
                "tags": ["Drafts"],
                "summary": "Cancel the pending removal",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/drafts/{id}/validate": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Validate every entry",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/drafts/{id}/submit": {
            "post": {
                "tags": ["Drafts"],
                "summary": "Submit the customer with the edited subscriptions",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitDraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed; data holds the draft", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "Location": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "city": {"type": "string"},
                "street": {"type": "string"},
                "building": {"type": "string"},
                "floor": {"type": "string"},
                "googleMapsUrl": {"type": "string"}
            },
            "required": ["address", "city"]
        },
        "SubscriptionPayload": {
            "type": "object",
            "properties": {
                "bundleId": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]},
                "location": {"$ref": "#/definitions/Location"}
            },
            "required": ["bundleId", "status"]
        },
        "CustomerPayload": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]},
                "location": {"$ref": "#/definitions/Location"},
                "bundleSubscriptions": {"type": "array", "items": {"$ref": "#/definitions/SubscriptionPayload"}}
            },
            "required": ["firstName", "lastName", "email", "phone", "status"]
        },
        "BundlePayload": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "speedMbps": {"type": "integer"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]}
            },
            "required": ["name", "speedMbps", "status"]
        },
        "PaymentPayload": {
            "type": "object",
            "properties": {
                "customerId": {"type": "string"},
                "amount": {"type": "number"},
                "method": {"type": "string", "enum": ["CASH", "CARD", "TRANSFER"]},
                "status": {"type": "string", "enum": ["PAID", "PENDING", "FAILED", "REFUNDED"]},
                "reference": {"type": "string"},
                "paidAt": {"type": "string", "format": "date-time"}
            },
            "required": ["customerId", "method", "status"]
        },
        "CreateDraftRequest": {
            "type": "object",
            "properties": {"customerId": {"type": "string"}}
        },
        "AddEntryRequest": {
            "type": "object",
            "properties": {"bundleId": {"type": "string"}},
            "required": ["bundleId"]
        },
        "UpdateFieldRequest": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "enum": ["bundleId", "address", "city", "street", "building", "floor", "googleMapsUrl"]},
                "value": {"type": "string"}
            },
            "required": ["field"]
        },
        "SetStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]}},
            "required": ["status"]
        },
        "CopyLocationRequest": {
            "type": "object",
            "properties": {"location": {"$ref": "#/definitions/Location"}}
        },
        "SubmitDraftRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE"]},
                "location": {"$ref": "#/definitions/Location"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/FieldError"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
