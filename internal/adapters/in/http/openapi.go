package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"

	_ "embed"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var (
	openAPIOnce sync.Once
	openAPISpec *openapi3.T
	openAPIErr  error
)

// LoadOpenAPISpec parses and validates the embedded API contract. The result
// is cached; validation runs once per process.
func LoadOpenAPISpec(ctx context.Context) (*openapi3.T, error) {
	openAPIOnce.Do(func() {
		loader := openapi3.NewLoader()
		loader.Context = ctx

		spec, err := loader.LoadFromData(openAPIDocument)
		if err != nil {
			openAPIErr = fmt.Errorf("failed to parse OpenAPI document: %w", err)
			return
		}

		if err = spec.Validate(ctx); err != nil {
			openAPIErr = fmt.Errorf("invalid OpenAPI document: %w", err)
			return
		}

		openAPISpec = spec
	})

	return openAPISpec, openAPIErr
}

// GetOpenAPIDocument handles GET /openapi.json - serves the API contract.
func (s *Server) GetOpenAPIDocument(ctx echo.Context) error {
	spec, err := LoadOpenAPISpec(ctx.Request().Context())
	if err != nil {
		return internalError(ctx, "OpenAPI document unavailable")
	}

	return ctx.JSON(http.StatusOK, spec)
}
