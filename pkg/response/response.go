package response

// Response is the standard API envelope. Error responses carry a stable
// machine-readable MessageKey clients can localize on.
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	MessageKey string      `json:"message_key,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response carrying the message key
func Error(statusCode int, messageKey string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		MessageKey: messageKey,
	}
}

// ErrorWithDetail returns an error response with a human-readable detail
// alongside the message key
func ErrorWithDetail(statusCode int, messageKey, detail string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		MessageKey: messageKey,
		Error:      detail,
	}
}
