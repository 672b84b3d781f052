package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON-RPC 2.0 error codes.
const (
	ErrParseCode      = -32700
	ErrInvalidReq     = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternal       = -32603

	// ErrApplication carries a domain error; its code is in the error data.
	ErrApplication = -32000
)

// maxRequestBytes bounds a single /rpc body. Seed-sized payloads fit well
// under it.
const maxRequestBytes = 1 << 20

const jsonrpcVersion = "2.0"

var (
	errMalformed      = errors.New("parse error")
	errInvalidRequest = errors.New("invalid request")
)

// Request is one JSON-RPC 2.0 call. Batches are not accepted.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// Response is the reply to a Request. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// Error is the JSON-RPC error object. Domain failures put their APIError in
// Data.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc %d: %s", e.Code, e.Message)
}

// ParseRequest decodes a single call. Undecodable bodies wrap errMalformed;
// a decodable body that is not a 2.0 call wraps errInvalidRequest.
func ParseRequest(body io.Reader) (Request, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxRequestBytes))
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", errMalformed, err)
	}

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Request{}, fmt.Errorf("%w: %w", errInvalidRequest, err)
		}
		return Request{}, fmt.Errorf("%w: %w", errMalformed, err)
	}
	switch {
	case req.JSONRPC != jsonrpcVersion:
		return Request{}, fmt.Errorf("%w: jsonrpc version %q", errInvalidRequest, req.JSONRPC)
	case req.Method == "":
		return Request{}, fmt.Errorf("%w: missing method", errInvalidRequest)
	}
	return req, nil
}

// requestError is the reply for a body ParseRequest rejected.
func requestError(err error) *Error {
	if errors.Is(err, errMalformed) {
		return &Error{Code: ErrParseCode, Message: "parse error"}
	}
	return &Error{Code: ErrInvalidReq, Message: "invalid request"}
}

// callError maps a coded tool failure onto a JSON-RPC code. The second
// result is false for errors without a code, which are internal.
func callError(err error) (*Error, bool) {
	var coded CodedError
	if !errors.As(err, &coded) {
		return nil, false
	}
	code := ErrApplication
	switch coded.ErrorCode() {
	case "UNKNOWN_METHOD":
		code = ErrMethodNotFound
	case "INVALID_INPUT":
		code = ErrInvalidParams
	}
	return &Error{Code: code, Message: coded.Error(), Data: coded}, true
}

// WriteResult writes a success reply echoing id.
func WriteResult(w http.ResponseWriter, id any, result any) {
	writeResponse(w, Response{JSONRPC: jsonrpcVersion, Result: result, ID: id})
}

// WriteError writes an error reply echoing id.
func WriteError(w http.ResponseWriter, id any, code int, message string, data any) {
	writeRPCError(w, id, &Error{Code: code, Message: message, Data: data})
}

func writeRPCError(w http.ResponseWriter, id any, rpcErr *Error) {
	writeResponse(w, Response{JSONRPC: jsonrpcVersion, Error: rpcErr, ID: id})
}

// JSON-RPC errors travel in a 200 body; only auth failures change the status.
func writeResponse(w http.ResponseWriter, resp Response) {
	writeBody(w, http.StatusOK, resp)
}
