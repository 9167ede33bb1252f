package dto

// Result is the envelope of every API response: an explicit success flag, a
// human readable message naming the violated rule on failure, and the payload.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK wraps a successful payload.
func OK(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail wraps a failure message.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}
