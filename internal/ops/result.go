package ops

import "fmt"

// Result is the outcome of one operation, fed back to the model as the
// function response and mined by the dispatcher's fallback reply synthesis.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`

	// NeedsConfirmation marks a preview of a guarded operation: nothing was
	// mutated and Message holds the confirmation prompt.
	NeedsConfirmation bool `json:"needsConfirmation,omitempty"`

	// NeedsClarification marks a question back to the user, such as which
	// job a shift belongs to.
	NeedsClarification bool `json:"needsClarification,omitempty"`

	Data map[string]any `json:"data,omitempty"`
}

// Response flattens the result into the map sent back to the model.
func (r *Result) Response() map[string]any {
	resp := map[string]any{"success": r.Success}
	if r.Message != "" {
		resp["message"] = r.Message
	}
	if r.Error != "" {
		resp["error"] = r.Error
	}
	if r.NeedsConfirmation {
		resp["needsConfirmation"] = true
	}
	if r.NeedsClarification {
		resp["needsClarification"] = true
	}
	for k, v := range r.Data {
		resp[k] = v
	}
	return resp
}

func ok(format string, args ...any) *Result {
	return &Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

func okData(data map[string]any, format string, args ...any) *Result {
	return &Result{Success: true, Message: fmt.Sprintf(format, args...), Data: data}
}

func fail(format string, args ...any) *Result {
	return &Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// confirm is a guarded operation's preview: nothing was performed yet, so
// success stays false and Message holds the prompt.
func confirm(data map[string]any, format string, args ...any) *Result {
	return &Result{
		Success:           false,
		Message:           fmt.Sprintf(format, args...),
		NeedsConfirmation: true,
		Data:              data,
	}
}

func clarify(format string, args ...any) *Result {
	return &Result{
		Success:            true,
		Message:            fmt.Sprintf(format, args...),
		NeedsClarification: true,
	}
}
