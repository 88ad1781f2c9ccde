// Package dto provides request/response shapes for the HTTP API.
package dto

// IDResponse is returned on resource creation.
type IDResponse struct {
	ID string `json:"id"`
}

// ListResponse wraps list results.
type ListResponse struct {
	Items []any `json:"items"`
	Count int   `json:"count"`
}
