// Package swaggerkit serves the swagger UI and the OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "tripmaker/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives
const DocsPath = "/docs"

// Mount serves the UI under /docs/ and the document at /docs/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("tripmaker"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}
