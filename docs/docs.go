// Package docs holds the OpenAPI description served at /swagger.
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
        "/api/v1/introductions": {
            "get": {
                "description": "Returns every introduction, newest first.",
                "produces": ["application/json"],
                "tags": ["introductions"],
                "summary": "List introductions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListIntroductionsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Validates the required fields and forwards the record to the endpoint.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["introductions"],
                "summary": "Create an introduction",
                "parameters": [
                    {
                        "description": "Introduction to be created",
                        "name": "introduction",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.CreateIntroductionRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.IntroductionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateIntroductionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "department": {"type": "string"},
                "responsibilities": {"type": "string"},
                "previousCompany": {"type": "string"},
                "mbti": {"type": "string"},
                "hobbies": {"type": "string"},
                "tmi": {"type": "string"},
                "greetings": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "kind": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"$ref": "#/definitions/intro.FieldError"}}
            }
        },
        "handlers.IntroductionResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/intro.Record"}
            }
        },
        "handlers.ListIntroductionsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/intro.Record"}},
                "total": {"type": "integer"}
            }
        },
        "intro.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "intro.Record": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "department": {"type": "string"},
                "responsibilities": {"type": "string"},
                "previousCompany": {"type": "string"},
                "mbti": {"type": "string"},
                "hobbies": {"type": "string"},
                "tmi": {"type": "string"},
                "greetings": {"type": "string"},
                "timestamp": {"type": "string"}
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
	Title:            "Introboard API",
	Description:      "Self-introduction board for newly joined colleagues.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
