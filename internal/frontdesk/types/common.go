// Package types holds the JSON request and response bodies of the HTTP API.
package types

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	ServerTime string `json:"server_time"`
}
