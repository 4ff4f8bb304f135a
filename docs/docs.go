package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Daybook API Documentation",
        "title": "Daybook API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/health/detailed": {
            "get": {
                "tags": ["Health"],
                "summary": "Detailed Health Check",
                "description": "Health with uptime, store sizes and seed watcher state",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register",
                "description": "Create an account and receive an access token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {
                        "description": "Account created"
                    },
                    "400": {
                        "description": "Invalid registration data"
                    }
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login",
                "description": "Authenticate with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/api/v1/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh token",
                "description": "Exchange a refresh token for a new token pair",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Token refreshed"
                    },
                    "401": {
                        "description": "Invalid refresh token"
                    }
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout",
                "description": "Revoke a refresh token",
                "consumes": ["application/json"],
                "responses": {
                    "204": {
                        "description": "Token revoked"
                    }
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "description": "List events with optional range, search and pagination",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated events"
                    }
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create event",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Event created"
                    },
                    "400": {
                        "description": "Invalid event data"
                    }
                }
            }
        },
        "/api/v1/events/{id}/reschedule": {
            "patch": {
                "tags": ["Events"],
                "summary": "Reschedule event",
                "description": "Commit a drag drop: a pixel offset shifts the event in time and an optional day index moves it to another day",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Event rescheduled"
                    },
                    "404": {
                        "description": "Event not found"
                    }
                }
            }
        },
        "/api/v1/events/export.ics": {
            "get": {
                "tags": ["Events"],
                "summary": "Export iCalendar feed",
                "produces": ["text/calendar"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "iCalendar data"
                    }
                }
            }
        },
        "/api/v1/calendar/day": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Day grid",
                "description": "One day's events with computed positions for the time grid",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Laid-out day grid"
                    }
                }
            }
        },
        "/api/v1/calendar/week": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Week grid",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Laid-out week grid"
                    }
                }
            }
        },
        "/api/v1/calendar/window": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Change visible time window",
                "description": "Apply a preset or typed hours and report hidden events",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Committed window and hidden events"
                    }
                }
            }
        },
        "/api/v1/shopping": {
            "get": {
                "tags": ["Shopping"],
                "summary": "List shopping items",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated shopping items"
                    }
                }
            },
            "post": {
                "tags": ["Shopping"],
                "summary": "Add shopping item",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Item created"
                    }
                }
            }
        },
        "/api/v1/shopping/{id}/toggle": {
            "patch": {
                "tags": ["Shopping"],
                "summary": "Toggle purchased state",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated item"
                    },
                    "404": {
                        "description": "Item not found"
                    }
                }
            }
        },
        "/api/v1/scan": {
            "post": {
                "tags": ["Scanner"],
                "summary": "Scan an image",
                "description": "Recognize an image and return drafts, nothing is saved yet",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Recognition result with drafts"
                    },
                    "400": {
                        "description": "Empty image or invalid hint"
                    }
                }
            }
        },
        "/api/v1/scan/accept": {
            "post": {
                "tags": ["Scanner"],
                "summary": "Accept scan drafts",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Drafts saved"
                    }
                }
            }
        },
        "/api/v1/admin/seed/reload": {
            "post": {
                "tags": ["Admin"],
                "summary": "Reload seed data",
                "description": "Re-apply the seed file to the in-memory stores (admin only)",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Seed applied"
                    },
                    "403": {
                        "description": "Admin role required"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Daybook API",
	Description:      "Daybook API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
