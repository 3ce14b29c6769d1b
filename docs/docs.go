// Package docs holds the swagger description served at /swagger/*.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login user", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Refresh access token", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.RefreshRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}},
        "/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}},
        "/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}},
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Create a category", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.CreateCategoryRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["categories"], "summary": "Get a category", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Update a category", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateCategoryRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Delete a category", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/products": {
            "get": {"tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Create a product", "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.CreateProductRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/products/{id}": {
            "get": {"tags": ["products"], "summary": "Get a product", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Update a product", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateProductRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Delete a product and its images", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/healthz": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}}
    },
    "definitions": {
        "handler.Envelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "data": {}}},
        "handler.RegisterRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6}, "role": {"type": "string", "enum": ["user", "admin"]}}},
        "handler.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "handler.RefreshRequest": {"type": "object", "required": ["refresh_token"], "properties": {"refresh_token": {"type": "string"}}},
        "handler.CreateCategoryRequest": {"type": "object", "required": ["name", "slug"], "properties": {"name": {"type": "string"}, "slug": {"type": "string"}}},
        "handler.UpdateCategoryRequest": {"type": "object", "properties": {"name": {"type": "string"}, "slug": {"type": "string"}}},
        "handler.CreateProductRequest": {"type": "object", "required": ["name", "description", "price", "category_id"], "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"}, "category_id": {"type": "string"}, "images": {"type": "array", "items": {"type": "string"}}}},
        "handler.UpdateProductRequest": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"}, "category_id": {"type": "string"}, "images": {"type": "array", "items": {"type": "string"}}, "images_to_add": {"type": "array", "items": {"type": "string"}}, "images_to_remove": {"type": "array", "items": {"type": "string"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Store Catalog API",
	Description:      "Catalog API for products, categories and product images with role-gated writes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
