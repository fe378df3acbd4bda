package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "College Notice Board API",
        "description": "Multi-department digital notice board with TV displays and an attendance register",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Shared-password session login"},
        {"name": "Display", "description": "Public boards and TV display feeds"},
        {"name": "Notices", "description": "Staff notice management"},
        {"name": "Events", "description": "Staff event management"},
        {"name": "Results", "description": "Staff result management"},
        {"name": "Media", "description": "Display media management"},
        {"name": "Students", "description": "Attendance roster"},
        {"name": "Attendance", "description": "Attendance register"},
        {"name": "Settings", "description": "Display duration settings"},
        {"name": "Dashboard", "description": "Staff dashboard"}
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Shared-password login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Wrong password or unknown HOD email"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "End the session",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/session": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current session and queued flash messages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/notices/{department}": {
            "get": {
                "tags": ["Display"],
                "summary": "Active notices for a department board",
                "parameters": [
                    {"name": "department", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/events/{department}": {
            "get": {
                "tags": ["Display"],
                "summary": "Active events for a department, soonest first",
                "parameters": [
                    {"name": "department", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/results/{department}": {
            "get": {
                "tags": ["Display"],
                "summary": "Active results for a department",
                "parameters": [
                    {"name": "department", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/media/{department}": {
            "get": {
                "tags": ["Display"],
                "summary": "Active display media for a department",
                "parameters": [
                    {"name": "department", "in": "path", "type": "string", "required": true},
                    {"name": "type", "in": "query", "type": "string", "enum": ["image", "video"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/settings/{department}": {
            "get": {
                "tags": ["Display"],
                "summary": "Display durations for a department",
                "parameters": [
                    {"name": "department", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/display/{department}": {
            "get": {
                "tags": ["Display"],
                "summary": "Full TV rotation for a department (\"all\" for college-wide)",
                "parameters": [
                    {"name": "department", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/viewer": {
            "get": {
                "tags": ["Display"],
                "summary": "Public viewer page data: all active notices, events and results",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notice/{id}": {
            "get": {
                "tags": ["Display"],
                "summary": "One notice; every visit counts a view",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/event/{id}": {
            "get": {
                "tags": ["Display"],
                "summary": "One event's public detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/result/{id}": {
            "get": {
                "tags": ["Display"],
                "summary": "One result's public detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/qr/{kind}/{id}": {
            "get": {
                "tags": ["Display"],
                "summary": "PNG QR code linking to a notice, event or result",
                "produces": ["image/png"],
                "parameters": [
                    {"name": "kind", "in": "path", "type": "string", "required": true, "enum": ["notice", "event", "result"]},
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PNG image"}
                }
            }
        },
        "/api/admin/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Recent content, totals and per-year attendance",
                "parameters": [
                    {"name": "dept", "in": "query", "type": "string", "description": "Department code, principal only"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/notices": {
            "get": {
                "tags": ["Notices"],
                "summary": "Notices visible to the signed-in staff member",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Notices"],
                "summary": "Post a notice, optionally with an attachment",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "type": "string", "required": true},
                    {"name": "content", "in": "formData", "type": "string", "required": true},
                    {"name": "priority", "in": "formData", "type": "string", "enum": ["normal", "urgent"]},
                    {"name": "expires_at", "in": "formData", "type": "string"},
                    {"name": "display_duration", "in": "formData", "type": "integer"},
                    {"name": "for_all_departments", "in": "formData", "type": "boolean"},
                    {"name": "attachment", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error, including disallowed file types"}
                }
            }
        },
        "/api/admin/notices/{id}": {
            "get": {
                "tags": ["Notices"],
                "summary": "One notice for staff review, scoped to the actor's department",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Belongs to another department"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Notices"],
                "summary": "Soft-delete a notice",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/admin/events": {
            "get": {
                "tags": ["Events"],
                "summary": "Events visible to the signed-in staff member",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Schedule an event, optionally with a poster image",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "type": "string", "required": true},
                    {"name": "description", "in": "formData", "type": "string", "required": true},
                    {"name": "event_date", "in": "formData", "type": "string", "required": true},
                    {"name": "event_time", "in": "formData", "type": "string"},
                    {"name": "venue", "in": "formData", "type": "string"},
                    {"name": "display_duration", "in": "formData", "type": "integer"},
                    {"name": "image", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "One event for staff review, scoped to the actor's department",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Belongs to another department"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Soft-delete an event",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/admin/results": {
            "get": {
                "tags": ["Results"],
                "summary": "Results visible to the signed-in staff member",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Results"],
                "summary": "Publish a result, optionally with a file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "type": "string", "required": true},
                    {"name": "year", "in": "formData", "type": "string", "required": true},
                    {"name": "semester", "in": "formData", "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "department", "in": "formData", "type": "string", "description": "Principal only"},
                    {"name": "file", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/results/{id}": {
            "get": {
                "tags": ["Results"],
                "summary": "One result for staff review, scoped to the actor's department",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Belongs to another department"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Results"],
                "summary": "Soft-delete a result",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/admin/media": {
            "get": {
                "tags": ["Media"],
                "summary": "Display media visible to the signed-in staff member",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Media"],
                "summary": "Upload an image or video for the display rotation",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "content_type", "in": "formData", "type": "string", "enum": ["image", "video"], "required": true},
                    {"name": "title", "in": "formData", "type": "string"},
                    {"name": "display_order", "in": "formData", "type": "integer"},
                    {"name": "display_duration", "in": "formData", "type": "integer"},
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/media/{id}": {
            "delete": {
                "tags": ["Media"],
                "summary": "Soft-delete a media item",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/admin/students": {
            "get": {
                "tags": ["Students"],
                "summary": "Active students of a department and year",
                "parameters": [
                    {"name": "year", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string", "description": "Principal only"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register a single student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Register number already exists"}
                }
            }
        },
        "/api/admin/students/import": {
            "post": {
                "tags": ["Students"],
                "summary": "Bulk-import students from an .xlsx roster",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true},
                    {"name": "year", "in": "formData", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Import report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/students/{id}": {
            "delete": {
                "tags": ["Students"],
                "summary": "Soft-remove a student from the roster",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/admin/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark present/absent statuses for one date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/attendance/sheet": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Marking sheet for one date with any saved statuses",
                "parameters": [
                    {"name": "year", "in": "query", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string", "description": "Principal only"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/attendance/register": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Rolling ten-day register for a year",
                "parameters": [
                    {"name": "year", "in": "query", "type": "string", "required": true},
                    {"name": "department", "in": "query", "type": "string", "description": "Principal only"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/attendance/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download the register as xlsx, csv or pdf",
                "parameters": [
                    {"name": "year", "in": "query", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["xlsx", "csv", "pdf"]},
                    {"name": "department", "in": "query", "type": "string", "description": "Principal only"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/api/admin/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "The signed-in HOD's display settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Change display durations",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["login_type", "password"],
            "properties": {
                "login_type": {"type": "string", "enum": ["principal", "staff", "general"]},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "AddStudentRequest": {
            "type": "object",
            "required": ["name", "register_number", "year"],
            "properties": {
                "name": {"type": "string"},
                "register_number": {"type": "string"},
                "year": {"type": "string"}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["date", "year", "statuses"],
            "properties": {
                "date": {"type": "string", "example": "2025-06-01"},
                "year": {"type": "string", "example": "2nd Year"},
                "department": {"type": "string", "description": "Principal only"},
                "statuses": {
                    "type": "object",
                    "additionalProperties": {"type": "string", "enum": ["present", "absent"]}
                }
            }
        },
        "UpdateSettingsRequest": {
            "type": "object",
            "required": ["text_duration", "photo_duration", "video_duration"],
            "properties": {
                "text_duration": {"type": "integer"},
                "photo_duration": {"type": "integer"},
                "video_duration": {"type": "integer"},
                "total_working_days": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
