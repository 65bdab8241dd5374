// Package handlers implements the HTTP API of the listing engine. Operations
// are registered on a huma.API; probes are plain echo handlers.
package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string            `json:"status"           example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}
