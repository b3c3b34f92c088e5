package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/tool"
)

// Dispatcher is the tool-invocation core the protocol handler exposes.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]interface{}) tool.Envelope
	ListTools() []tool.ToolSpec
}

// Handler implements the MCP method surface over JSON-RPC 2.0. It is
// transport-free: the stdio and SSE bindings feed it one raw message at
// a time and deliver whatever bytes it returns over their own channel.
type Handler struct {
	dispatcher Dispatcher
	logger     zerolog.Logger
}

// NewHandler creates a protocol handler.
func NewHandler(dispatcher Dispatcher, logger zerolog.Logger) (*Handler, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	return &Handler{dispatcher: dispatcher, logger: logger}, nil
}

// Handle processes one JSON-RPC message and returns the serialized
// response, or nil for notifications. It never panics; unanticipated
// failures degrade to an internal-error response so the channel stays
// usable.
func (h *Handler) Handle(ctx context.Context, raw []byte) (out []byte) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return h.marshal(errorResponse(nil, ParseError, "Parse error", err.Error()))
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().
				Str("method", req.Method).
				Interface("panic", r).
				Msg("Recovered panic handling MCP message")
			out = h.marshal(errorResponse(req.ID, InternalError, "Internal error", fmt.Sprint(r)))
		}
	}()

	if req.Method == "" {
		return h.marshal(errorResponse(req.ID, InvalidRequest, "Invalid request: missing method field", nil))
	}

	resp := h.route(ctx, &req)
	if resp == nil {
		return nil
	}
	return h.marshal(resp)
}

func (h *Handler) route(ctx context.Context, req *Request) *Response {
	// Notifications receive no response regardless of method.
	if strings.HasPrefix(req.Method, "notifications/") || len(req.ID) == 0 {
		h.logger.Debug().Str("method", req.Method).Msg("Notification received")
		return nil
	}

	switch req.Method {
	case "initialize":
		return h.handleInitialize(req)
	case "ping":
		return resultResponse(req.ID, struct{}{})
	case "tools/list":
		return h.handleToolsList(req)
	case "tools/call":
		return h.handleToolsCall(ctx, req)
	default:
		return errorResponse(req.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

// handleInitialize answers the capability negotiation that opens every
// MCP session, before any tool call.
func (h *Handler) handleInitialize(req *Request) *Response {
	h.logger.Info().Msg("MCP session initializing")
	return resultResponse(req.ID, map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    ServerName,
			"version": ServerVersion,
		},
	})
}

func (h *Handler) handleToolsList(req *Request) *Response {
	specs := h.dispatcher.ListTools()
	descriptors := make([]toolDescriptor, 0, len(specs))
	for _, spec := range specs {
		descriptors = append(descriptors, toolDescriptor{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: spec.InputSchema(),
		})
	}
	return resultResponse(req.ID, map[string]interface{}{"tools": descriptors})
}

func (h *Handler) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params callParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, InvalidParams, "Invalid params", err.Error())
		}
	}
	if params.Name == "" {
		return errorResponse(req.ID, InvalidParams, "Invalid params: missing tool name", nil)
	}

	env := h.dispatcher.Dispatch(ctx, params.Name, params.Arguments)

	// Every business-level outcome, success or failure, travels as a
	// successful JSON-RPC response; the error object is reserved for
	// protocol faults.
	result := callResult{IsError: !env.OK}
	if env.OK {
		for _, item := range env.Content {
			result.Content = append(result.Content, toolContent{Type: item.Type, Text: item.Text})
		}
	} else {
		result.Content = []toolContent{{Type: "text", Text: env.Text()}}
	}

	return resultResponse(req.ID, result)
}

func (h *Handler) marshal(resp *Response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode MCP response")
		fallback := errorResponse(resp.ID, InternalError, "Internal error: response not serializable", nil)
		data, _ = json.Marshal(fallback)
	}
	return data
}

func resultResponse(id json.RawMessage, result interface{}) *Response {
	return &Response{JSONRPC: "2.0", ID: normalizeID(id), Result: result}
}

func errorResponse(id json.RawMessage, code int, message string, data interface{}) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      normalizeID(id),
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}

// normalizeID keeps the wire ID as-is but renders absent IDs as an
// explicit null, which parse-error responses require.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
