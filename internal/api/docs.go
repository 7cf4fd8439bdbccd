package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/recipe-api/backend/internal/types"
)

//go:embed openapi.yaml
var openAPISpec []byte

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Recipe API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "/api/schema/?format=json", dom_id: "#swagger-ui" });
  </script>
</body>
</html>`

// Schema serves the OpenAPI document as YAML, or as JSON with ?format=json.
func Schema(c *gin.Context) {
	if c.Query("format") != "json" {
		c.Data(http.StatusOK, "application/vnd.oai.openapi; charset=utf-8", openAPISpec)
		return
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(openAPISpec, &doc); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "invalid schema document"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Docs serves the Swagger UI for the schema.
func Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIPage))
}
