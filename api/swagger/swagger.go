package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Pass API",
        "description": "Student transport pass registration, login and sharing",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Student, staff and support sessions"},
        {"name": "Students", "description": "Student registry, roster import and export"},
        {"name": "Passes", "description": "Printable passes and share links"},
        {"name": "Schools", "description": "School list"},
        {"name": "Staff", "description": "Staff roster"},
        {"name": "Settings", "description": "Welcome message"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/login/student": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Student login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/login/staff": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Staff login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StaffLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/login/support": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Support login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SupportLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/navigation": {
            "post": {
                "tags": ["Navigation"],
                "summary": "Next screen",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NavigationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/settings/welcome": {
            "get": {
                "tags": ["Settings"],
                "summary": "Login banner",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export roster",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/import": {
            "post": {
                "tags": ["Students"],
                "summary": "Import roster spreadsheet",
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{id}/pass.pdf": {
            "get": {
                "tags": ["Passes"],
                "summary": "Printable pass",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{id}/share": {
            "post": {
                "tags": ["Passes"],
                "summary": "Plan pass sharing",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ShareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/passes/{token}": {
            "get": {
                "tags": ["Passes"],
                "summary": "Public pass",
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schools": {
            "get": {
                "tags": ["Schools"],
                "summary": "List schools",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schools"],
                "summary": "Add school",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSchoolRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/staff": {
            "get": {
                "tags": ["Staff"],
                "summary": "List staff",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Staff"],
                "summary": "Add staff member",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStaffRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Save settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schools/{id}": {
            "delete": {
                "tags": ["Schools"],
                "summary": "Delete school",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/staff/{id}": {
            "delete": {
                "tags": ["Staff"],
                "summary": "Remove staff member",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "StudentLoginRequest": {
            "type": "object",
            "properties": {"cpf": {"type": "string"}, "birthDate": {"type": "string", "format": "date"}},
            "required": ["cpf", "birthDate"]
        },
        "StaffLoginRequest": {
            "type": "object",
            "properties": {"cpf": {"type": "string"}},
            "required": ["cpf"]
        },
        "SupportLoginRequest": {
            "type": "object",
            "properties": {"secret": {"type": "string"}},
            "required": ["secret"]
        },
        "NavigationRequest": {
            "type": "object",
            "properties": {"state": {"type": "object"}, "action": {"type": "string", "enum": ["login", "new", "edit", "view", "cancel", "save", "back", "logout"]}, "studentId": {"type": "string"}},
            "required": ["action"]
        },
        "UpdateSettingsRequest": {
            "type": "object",
            "properties": {"welcomeMessage": {"type": "string"}},
            "required": ["welcomeMessage"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "cpf": {"type": "string"}, "birthDate": {"type": "string", "format": "date"}, "parents": {"type": "string"}, "phone": {"type": "string"}, "emergencyPhone": {"type": "string"}, "bloodType": {"type": "string"}, "specialNeeds": {"type": "boolean"}, "school": {"type": "string"}, "photoUrl": {"type": "string"}, "status": {"type": "string", "enum": ["Active", "Pending", "Inactive"]}},
            "required": ["name", "cpf", "birthDate"]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "cpf": {"type": "string"}, "birthDate": {"type": "string", "format": "date"}, "parents": {"type": "string"}, "phone": {"type": "string"}, "emergencyPhone": {"type": "string"}, "bloodType": {"type": "string"}, "specialNeeds": {"type": "boolean"}, "school": {"type": "string"}, "photoUrl": {"type": "string"}, "status": {"type": "string", "enum": ["Active", "Pending", "Inactive"]}}
        },
        "ShareRequest": {
            "type": "object",
            "properties": {"pageUrl": {"type": "string"}, "capabilities": {"type": "object", "properties": {"nativeShare": {"type": "boolean"}, "clipboard": {"type": "boolean"}}}}
        },
        "CreateSchoolRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "address": {"type": "string"}},
            "required": ["name"]
        },
        "CreateStaffRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "cpf": {"type": "string"}, "role": {"type": "string", "enum": ["driver", "admin"]}},
            "required": ["name", "cpf", "role"]
        },
        "APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "meta": {"type": "object"}}
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
