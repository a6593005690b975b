package store

// Result is the uniform envelope returned by every mutating operation.
// Callers must check Success; operations never panic and never return a
// bare error for domain failures.
type Result struct {
	Success bool     `json:"success"`
	Data    Document `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"` // a Code value when failed
	Message string   `json:"message,omitempty"`
}

func ok(data Document, message string) Result {
	return Result{Success: true, Data: data, Message: message}
}

func fail(code Code, message string) Result {
	return Result{Success: false, Error: string(code), Message: message}
}

// Failed reports whether the result carries the given error code.
func (r Result) Failed(code Code) bool {
	return !r.Success && r.Error == string(code)
}
