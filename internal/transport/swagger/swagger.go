// Package swagger serves the API description and the interactive UI.
package swagger

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SpecPath is where the JSON rendering of the document is served.
const SpecPath = "/openapi.json"

//go:embed openapi.yml
var rawSpec []byte

// Docs is the parsed and validated OpenAPI document.
type Docs struct {
	doc  *openapi3.T
	json []byte
}

// Load parses the embedded document and fails when it does not validate.
func Load(ctx context.Context) (*Docs, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	out, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}
	return &Docs{doc: doc, json: out}, nil
}

// Paths lists the documented routes.
func (d *Docs) Paths() []string {
	return d.doc.Paths.InMatchingOrder()
}

func (d *Docs) ServeSpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.json)
}

// Handler serves the Swagger UI pointed at SpecPath.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(SpecPath),
	)
}
