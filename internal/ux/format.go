package ux

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formatter writes command results as human text or as a JSON envelope.
type Formatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope for command output.
type Response struct {
	Status string       `json:"status"` // "ok" or "error"
	Data   any          `json:"data,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (f *Formatter) JSON() bool {
	return f.Format == FormatJSON
}

// Emit writes data as JSON in json mode; otherwise text renders it.
func (f *Formatter) Emit(data any, text func(w io.Writer)) error {
	if f.JSON() {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

// Text writes s verbatim, or wrapped as {"data": s} in json mode.
func (f *Formatter) Text(s string) error {
	return f.Emit(s, func(w io.Writer) { fmt.Fprint(w, s) })
}

// Fail writes an error envelope in json mode. In text mode it writes nothing
// and the caller's returned error is printed by main.
func (f *Formatter) Fail(message string, details any) error {
	if !f.JSON() {
		return nil
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(Response{Status: "error", Error: &ErrorDetail{Message: message, Details: details}})
}
