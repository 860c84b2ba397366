package dto

// Envelope is the success body: isSuccess, message and one named payload,
// e.g. {"isSuccess": true, "message": "...", "user": {...}}
type Envelope map[string]interface{}

// NewEnvelope creates a success envelope. An empty key omits the payload.
func NewEnvelope(message, key string, payload interface{}) Envelope {
	env := Envelope{
		"isSuccess": true,
		"message":   message,
	}
	if key != "" {
		env[key] = payload
	}
	return env
}

// With adds another payload entry
func (e Envelope) With(key string, payload interface{}) Envelope {
	e[key] = payload
	return e
}

// PaginationInfo describes a page of a list
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"25"`
}

// SuccessResponse documents the bare success envelope in swagger
type SuccessResponse struct {
	IsSuccess bool   `json:"isSuccess" example:"true"`
	Message   string `json:"message" example:"Operation completed successfully"`
}
