package dto

import "time"

// APIResponse is the envelope for all API responses.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// PaginationInfo is the standard pagination block embedded in list responses.
type PaginationInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// SuccessResponse is used for operations with no payload, such as deletes.
type SuccessResponse struct {
	Message string `json:"message"`
}
