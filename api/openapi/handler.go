// Package openapi serves a Swagger UI over the live OpenAPI 3.1 document
// and exports that document for offline use.
package openapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
)

// SpecPath is where huma serves the JSON document.
const SpecPath = "/openapi.json"

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>eBay Lister API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "` + SpecPath + `",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`

// RegisterRoutes adds the Swagger UI endpoints to the Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/swagger/index.html", serveUI)
	e.GET("/swagger", redirectToUI)
	e.GET("/swagger/", redirectToUI)
}

// Write renders the API's OpenAPI document as "json" or "yaml".
func Write(w io.Writer, api huma.API, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = api.OpenAPI().MarshalJSON()
	case "yaml":
		data, err = api.OpenAPI().YAML()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("rendering OpenAPI document: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing OpenAPI document: %w", err)
	}
	return nil
}

func serveUI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIHTML)
}

func redirectToUI(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
}
