package response

// Envelope is the uniform API response body. Failures carry Error;
// successful mutations usually carry a human-readable Message.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Message(msg string, data any) Envelope {
	return Envelope{Success: true, Message: msg, Data: data}
}

func Fail(err string) Envelope {
	return Envelope{Success: false, Error: err}
}
