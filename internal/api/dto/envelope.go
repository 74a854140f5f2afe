package dto

// Envelope is the uniform response shape returned by every operation.
// Data is always an object, never null, so clients can index into it
// without checking.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK builds a success envelope.
func OK(message string, data any) Envelope {
	if data == nil {
		data = map[string]any{}
	}
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message, Data: map[string]any{}}
}
