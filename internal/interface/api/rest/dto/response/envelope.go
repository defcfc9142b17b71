// Package response holds the JSON envelope shared by every endpoint.
package response

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Image   any    `json:"image,omitempty"`
	Error   string `json:"error,omitempty"`

	Errors map[string]string `json:"errors,omitempty"`
}

func OK(message string, image any) Envelope {
	return Envelope{Success: true, Message: message, Image: image}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

func Invalid(message string, errs map[string]string) Envelope {
	return Envelope{Success: false, Message: message, Errors: errs}
}

// Internal carries err's text; only used for 5xx responses.
func Internal(message string, err error) Envelope {
	e := Envelope{Success: false, Message: message}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}
