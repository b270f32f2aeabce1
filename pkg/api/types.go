package api

import (
	"github.com/ssargent/sus/pkg/catalog"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string // empty disables authentication
}

// RunStore is the read side of the run catalog
type RunStore interface {
	List() ([]*catalog.Manifest, error)
	Get(id string) (*catalog.Manifest, error)
}

// RunList is the response body of GET /api/v1/runs
type RunList struct {
	Runs  []*catalog.Manifest `json:"runs"`
	Total int                 `json:"total"`
}
