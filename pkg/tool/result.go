package tool

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a failed tool invocation.
type ErrorKind string

const (
	// ErrValidation means the caller supplied bad or missing arguments.
	// Validation failures never reach the network.
	ErrValidation ErrorKind = "validation_error"
	// ErrUnknownTool means the call named a tool that is not registered.
	ErrUnknownTool ErrorKind = "unknown_tool"
	// ErrTimeout means the backend exceeded the tool's configured budget.
	ErrTimeout ErrorKind = "timeout"
	// ErrBackendStatus means the backend answered with a non-2xx status.
	ErrBackendStatus ErrorKind = "backend_status"
	// ErrTransport means a connection-level failure (reset, DNS, TLS).
	ErrTransport ErrorKind = "transport_error"
	// ErrEmptyResult means the backend answered 2xx with zero usable
	// result items. Zero results is always reported as failure.
	ErrEmptyResult ErrorKind = "empty_result"
)

// ErrorDetail describes why an invocation failed.
type ErrorDetail struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	return e.Message
}

// ContentItem is a single piece of envelope content. Generated media is
// represented as formatted text carrying URLs; the core never handles
// raw media bytes.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextContent builds a text content item.
func TextContent(text string) ContentItem {
	return ContentItem{Type: "text", Text: text}
}

// Envelope is the transport-neutral result of a tool invocation. Every
// invocation outcome, success or failure, is delivered as an Envelope
// value; nothing below the transport bindings panics across this
// boundary.
type Envelope struct {
	OK      bool          `json:"ok"`
	Content []ContentItem `json:"content,omitempty"`
	Err     *ErrorDetail  `json:"error,omitempty"`
}

// Success builds a successful envelope from content items.
func Success(items ...ContentItem) Envelope {
	return Envelope{OK: true, Content: items}
}

// Failure builds a failed envelope with a formatted message.
func Failure(kind ErrorKind, format string, args ...interface{}) Envelope {
	return Envelope{
		OK:  false,
		Err: &ErrorDetail{Kind: kind, Message: fmt.Sprintf(format, args...)},
	}
}

// FailureDetail wraps an existing ErrorDetail in a failed envelope.
func FailureDetail(detail *ErrorDetail) Envelope {
	return Envelope{OK: false, Err: detail}
}

// Text renders the envelope as a single human-readable string: the
// concatenated content for successes, the error message for failures.
func (e Envelope) Text() string {
	if !e.OK {
		if e.Err != nil {
			return e.Err.Message
		}
		return "unknown error"
	}

	parts := make([]string, 0, len(e.Content))
	for _, item := range e.Content {
		parts = append(parts, item.Text)
	}
	return strings.Join(parts, "\n")
}
