package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var openAPIDocument []byte

// OpenAPIDocument serves the API description consumed by the Swagger UI.
func OpenAPIDocument(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPIDocument)
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, http.StatusOK, jsonResponse{"status": "ok"})
}
