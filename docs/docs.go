// Package docs publica a descrição OpenAPI da API e a interface Swagger.
package docs

import (
	_ "embed"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SpecPath é onde o documento OpenAPI é servido.
const SpecPath = "/openapi.json"

//go:embed openapi.json
var openAPISpec []byte

// SpecHandler serve o documento OpenAPI embutido.
func SpecHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPISpec)
}

// UIHandler serve a interface Swagger apontando para SpecPath.
func UIHandler() http.Handler {
	return httpSwagger.Handler(httpSwagger.URL(SpecPath))
}
