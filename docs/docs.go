// Package docs registers the swagger specification served at /swagger/*.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler
// annotations.
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
        "/api/v1/employee/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new employee",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/v1/employee/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in with email and password",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not Found"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/api/v1/employee/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log out the authenticated employee",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/v1/employee/getemployee": {
            "get": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Fetch the authenticated employee",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/employee/getemployees": {
            "get": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "List all employees (admin only)",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/v1/employee/update": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Update profile fields",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/v1/employee/delete": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Delete own account",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/v1/employee/deleteemployee": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Delete an employee by id",
                "parameters": [
                    {
                        "type": "string",
                        "name": "employeeId",
                        "in": "query",
                        "required": true,
                        "description": "Employee id"
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Employee API",
	Description:      "Employee records with cookie-based JWT sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
