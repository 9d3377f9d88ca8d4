package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Répétition Chez Toi API",
        "description": "Tutoring marketplace: tutor availability, bookings, messages and reviews.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Accounts and access tokens"},
        {"name": "Availability", "description": "Tutors' weekly availability windows"},
        {"name": "Bookings", "description": "Reservations and their lifecycle"},
        {"name": "Messages", "description": "Booking conversation"},
        {"name": "Reviews", "description": "Ratings of completed lessons"},
        {"name": "Reference", "description": "Subjects and neighborhoods"},
        {"name": "Events", "description": "Live change notifications"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Create a parent or tutor account",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/subjects": {
            "get": {"tags": ["Reference"], "summary": "List subjects", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/neighborhoods": {
            "get": {"tags": ["Reference"], "summary": "List neighborhoods", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Search tutors",
                "parameters": [
                    {"in": "query", "name": "subject_id", "type": "integer"},
                    {"in": "query", "name": "neighborhood_id", "type": "integer"},
                    {"in": "query", "name": "level", "type": "string", "enum": ["college", "lycee"]},
                    {"in": "query", "name": "max_rate", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer", "default": 20, "maximum": 100},
                    {"in": "query", "name": "offset", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filters", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get a tutor's profile",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            }
        },
        "/teacher-profile": {
            "put": {
                "tags": ["Teachers"],
                "summary": "Create or replace my tutor profile",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SaveTeacherProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid profile", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Tutors only", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/children": {
            "get": {
                "tags": ["Children"],
                "summary": "List my children",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Parents only"}}
            },
            "post": {
                "tags": ["Children"],
                "summary": "Add a child",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ChildRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Invalid child"}}
            }
        },
        "/children/{id}": {
            "patch": {
                "tags": ["Children"],
                "summary": "Update a child",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ChildRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Another parent's child"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Children"],
                "summary": "Remove a child",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Another parent's child"}, "404": {"description": "Not found"}}
            }
        },
        "/teachers/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List a tutor's availability",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teachers/{id}/availability/check": {
            "get": {
                "tags": ["Availability"],
                "summary": "Check a slot against a tutor's availability and bookings",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "query", "name": "starts_at", "required": true, "type": "string", "format": "date-time"},
                    {"in": "query", "name": "ends_at", "required": true, "type": "string", "format": "date-time"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid interval", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}/reviews": {
            "get": {
                "tags": ["Reviews"],
                "summary": "List a tutor's reviews",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teachers/{id}/rating": {
            "get": {
                "tags": ["Reviews"],
                "summary": "Get a tutor's average rating",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/availability": {
            "post": {
                "tags": ["Availability"],
                "summary": "Declare a weekly availability window",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateAvailabilityRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid window", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Tutors only", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/{id}": {
            "delete": {
                "tags": ["Availability"],
                "summary": "Remove an availability window",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List my bookings",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "status", "type": "string", "enum": ["pending", "confirmed", "cancelled", "completed"]}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Bookings"],
                "summary": "Request a booking",
                "description": "meta.outside_availability flags slots outside the tutor's weekly rules; meta.subjects_attached is false when tagging failed.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid interval or payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot already booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Outside availability (strict policy)", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/export": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Download my bookings",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/bookings/{id}": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Get a booking",
                "description": "meta.allowed_transitions lists the statuses the caller may move the booking to.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            }
        },
        "/bookings/{id}/status": {
            "patch": {
                "tags": ["Bookings"],
                "summary": "Change a booking's status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UpdateBookingStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Transition not allowed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/{id}/subjects": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Tag a booking with subjects",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/AttachSubjectsRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/bookings/{id}/messages": {
            "get": {
                "tags": ["Messages"],
                "summary": "Read a booking's messages",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Messages"],
                "summary": "Post a message on a booking",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SendMessageRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/bookings/{id}/review": {
            "post": {
                "tags": ["Reviews"],
                "summary": "Review a completed booking",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already reviewed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Booking not completed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "Stream my change events",
                "produces": ["text/event-stream"],
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "access_token", "type": "string"}],
                "responses": {"200": {"description": "Event stream"}, "503": {"description": "Live updates disabled"}}
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "full_name", "role"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["PARENT", "TEACHER"]}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "CreateAvailabilityRequest": {
            "type": "object",
            "required": ["weekday", "start_time", "end_time"],
            "properties": {
                "weekday": {"type": "integer", "minimum": 0, "maximum": 6, "description": "0 is Sunday"},
                "start_time": {"type": "string", "example": "08:00"},
                "end_time": {"type": "string", "example": "10:00"}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "required": ["teacher_id", "starts_at", "ends_at"],
            "properties": {
                "teacher_id": {"type": "string", "format": "uuid"},
                "child_id": {"type": "string", "format": "uuid"},
                "subject_id": {"type": "integer"},
                "neighborhood_id": {"type": "integer"},
                "starts_at": {"type": "string", "format": "date-time", "example": "2024-06-03T08:00:00Z", "description": "RFC3339; unparseable values return INVALID_INTERVAL"},
                "ends_at": {"type": "string", "format": "date-time", "example": "2024-06-03T09:00:00Z"},
                "note": {"type": "string"},
                "subject_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "SaveTeacherProfileRequest": {
            "type": "object",
            "properties": {
                "bio": {"type": "string"},
                "hourly_rate": {"type": "integer", "minimum": 0},
                "levels": {"type": "array", "items": {"type": "string", "enum": ["college", "lycee"]}},
                "address": {"type": "string"},
                "subject_ids": {"type": "array", "items": {"type": "integer"}},
                "neighborhood_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "ChildRequest": {
            "type": "object",
            "required": ["full_name", "level"],
            "properties": {
                "full_name": {"type": "string"},
                "level": {"type": "string", "enum": ["college", "lycee"]}
            }
        },
        "UpdateBookingStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["confirmed", "cancelled", "completed"]}}
        },
        "AttachSubjectsRequest": {
            "type": "object",
            "required": ["subject_ids"],
            "properties": {"subject_ids": {"type": "array", "items": {"type": "integer"}}}
        },
        "SendMessageRequest": {
            "type": "object",
            "required": ["body"],
            "properties": {"body": {"type": "string"}}
        },
        "CreateReviewRequest": {
            "type": "object",
            "required": ["rating"],
            "properties": {"rating": {"type": "integer", "minimum": 1, "maximum": 5}, "comment": {"type": "string"}}
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
