package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// UpdateColumnRequest changes one column. Omitted fields are left as they are.
type UpdateColumnRequest struct {
	Included    *bool   `json:"included,omitempty" example:"false"`
	DisplayName *string `json:"display_name,omitempty" example:"Emissions (tCO2)"`
}

// SetAllColumnsRequest selects or deselects every column.
type SetAllColumnsRequest struct {
	Included *bool `json:"included" binding:"required" example:"true"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"processing service not reachable"`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
