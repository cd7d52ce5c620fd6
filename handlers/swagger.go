package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>site-backend — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "site-backend", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Record": { "type": "object", "properties": { "id": {"type":"string"}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} }, "additionalProperties": true },
      "Error": { "type": "object", "properties": { "error": {"type":"string"}, "reason": {"type":"string"} } }
    }
  },
  "paths": {
    "/api/pages/home": { "get": { "summary": "Home page content, stats, services, featured projects and feedback", "responses": { "200": { "description": "page" } } } },
    "/api/pages/services": { "get": { "summary": "Services", "responses": { "200": { "description": "list" } } } },
    "/api/pages/projects": { "get": { "summary": "Projects", "responses": { "200": { "description": "list" } } } },
    "/api/pages/team": { "get": { "summary": "Team members", "responses": { "200": { "description": "list" } } } },
    "/api/pages/faq": { "get": { "summary": "FAQ items and categories", "responses": { "200": { "description": "page" } } } },
    "/api/pages/terms": { "get": { "summary": "Terms rendered to HTML", "responses": { "200": { "description": "page" } } } },
    "/api/settings": { "get": { "summary": "Site settings", "responses": { "200": { "description": "settings" } } } },
    "/api/contact": { "post": { "summary": "Send a contact message", "responses": { "201": { "description": "stored" }, "400": { "description": "validation failed" }, "429": { "description": "rate limited" } } } },
    "/api/inquiries": { "post": { "summary": "Send a service inquiry", "responses": { "201": { "description": "stored" }, "400": { "description": "validation failed" }, "429": { "description": "rate limited" } } } },
    "/api/feedback": { "post": { "summary": "Leave feedback", "responses": { "201": { "description": "stored" }, "400": { "description": "validation failed" }, "429": { "description": "rate limited" } } } },
    "/admin/login": {
      "get": { "summary": "Login page state; redirects when already logged in", "responses": { "200": { "description": "state" }, "302": { "description": "already logged in" } } },
      "post": { "summary": "Log in with the shared admin password", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "ok and redirect target" }, "401": { "description": "wrong password" } } }
    },
    "/admin/logout": { "post": { "summary": "Log out", "responses": { "200": { "description": "logged out" } } } },
    "/admin": { "get": { "summary": "Editable content and config types", "responses": { "200": { "description": "type lists" }, "401": { "description": "login required" } } } },
    "/admin/session": { "get": { "summary": "Gate state", "responses": { "200": { "description": "loggedIn and checking" } } } },
    "/admin/api/content/{type}": {
      "get": { "summary": "List records", "responses": { "200": { "description": "list" }, "401": { "description": "login required" }, "404": { "description": "unknown type" }, "503": { "description": "storage unavailable" } } },
      "post": { "summary": "Add a record", "responses": { "201": { "description": "created" }, "400": { "description": "validation failed" } } }
    },
    "/admin/api/content/{type}/{id}": {
      "get": { "summary": "Get a record", "responses": { "200": { "description": "record" }, "400": { "description": "invalid identifier" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Partially update a record", "responses": { "200": { "description": "record" }, "400": { "description": "invalid" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a record", "responses": { "204": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/admin/api/config/{type}": {
      "get": { "summary": "Get a configuration document (home, stats, settings, terms)", "responses": { "200": { "description": "record" } } },
      "put": { "summary": "Update a configuration document", "responses": { "200": { "description": "record" }, "400": { "description": "validation failed" } } }
    },
    "/admin/api/media": { "post": { "summary": "Upload an image", "responses": { "201": { "description": "key and url" }, "415": { "description": "unsupported type" }, "503": { "description": "media storage not configured" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
