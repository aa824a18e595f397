package rpcjson

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RomanRosson/Byteful/internal/apperr"
	"github.com/RomanRosson/Byteful/internal/application"
	"github.com/RomanRosson/Byteful/internal/domain"
)

// Result payloads mirror the REST adapter's JSON shape so the CLI can
// decode either transport identically.
type itemPayload struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type typePayload struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ItemCount int64     `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

func itemToPayload(item domain.Item) itemPayload {
	return itemPayload{
		ID:          item.ID,
		Type:        item.Type,
		Title:       item.Title,
		Content:     item.Content,
		Description: item.Description,
		Category:    item.Category,
		Tags:        item.Tags,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func itemPayloads(items []domain.Item) []itemPayload {
	result := make([]itemPayload, 0, len(items))
	for _, item := range items {
		result = append(result, itemToPayload(item))
	}
	return result
}

func typeToPayload(t domain.ItemType) typePayload {
	return typePayload{ID: t.ID, Name: t.Name, ItemCount: t.ItemCount, CreatedAt: t.CreatedAt}
}

func typePayloads(types []domain.ItemType) []typePayload {
	result := make([]typePayload, 0, len(types))
	for _, t := range types {
		result = append(result, typeToPayload(t))
	}
	return result
}

type Server struct {
	service  *application.Service
	listener net.Listener
	path     string
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Start(path string, service *application.Service) (*Server, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("rpc socket path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		_ = os.Remove(path)
		return nil, err
	}

	s := &Server{service: service, listener: ln, path: path}
	go s.serve()
	return s, nil
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Close() error {
	err := s.listener.Close()
	_ = os.Remove(s.path)
	return err
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			_ = enc.Encode(response{JSONRPC: "2.0", Error: &rpcError{Code: -32700, Message: "parse error"}, ID: nil})
			return
		}

		resp := s.dispatch(context.Background(), req)
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	if req.JSONRPC != "2.0" || strings.TrimSpace(req.Method) == "" {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: -32600, Message: "invalid request"}, ID: req.ID}
	}

	switch req.Method {
	case "auth.login":
		var p struct {
			Username string `json:"username"`
			PIN      string `json:"pin"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		ok, err := s.service.Authenticate(ctx, p.Username, p.PIN)
		if err != nil {
			return appError(req.ID, err)
		}
		if !ok {
			return response{JSONRPC: "2.0", Error: &rpcError{Code: 40100, Message: "invalid credentials"}, ID: req.ID}
		}
		return response{JSONRPC: "2.0", Result: map[string]any{"authenticated": true}, ID: req.ID}
	case "items.list":
		items, err := s.service.ListItems(ctx)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: itemPayloads(items), ID: req.ID}
	case "items.get":
		var p struct {
			ID int64 `json:"id"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		item, err := s.service.GetItem(ctx, p.ID)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: itemToPayload(item), ID: req.ID}
	case "items.create":
		var p application.ItemInput
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		item, err := s.service.CreateItem(ctx, p)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: itemToPayload(item), ID: req.ID}
	case "items.update":
		var p struct {
			ID int64 `json:"id"`
			application.ItemInput
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		item, err := s.service.UpdateItem(ctx, p.ID, p.ItemInput)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: itemToPayload(item), ID: req.ID}
	case "items.delete":
		var p struct {
			ID int64 `json:"id"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.DeleteItem(ctx, p.ID); err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: map[string]any{"success": true}, ID: req.ID}
	case "items.search":
		var p struct {
			Query string `json:"query"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		items, err := s.service.SearchItems(ctx, p.Query)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: itemPayloads(items), ID: req.ID}
	case "items.listByType":
		var p struct {
			Type string `json:"type"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		items, err := s.service.ListItemsByType(ctx, p.Type)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: itemPayloads(items), ID: req.ID}
	case "types.list":
		types, err := s.service.ListTypes(ctx)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: typePayloads(types), ID: req.ID}
	case "types.names":
		names, err := s.service.ListTypeNames(ctx)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: names, ID: req.ID}
	case "types.create":
		var p struct {
			Name string `json:"name"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		created, err := s.service.CreateType(ctx, p.Name)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: typeToPayload(created), ID: req.ID}
	case "types.rename":
		var p struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		renamed, err := s.service.RenameType(ctx, p.ID, p.Name)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: typeToPayload(renamed), ID: req.ID}
	case "types.delete":
		var p struct {
			ID int64 `json:"id"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.service.DeleteType(ctx, p.ID); err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: map[string]any{"success": true}, ID: req.ID}
	default:
		return response{JSONRPC: "2.0", Error: &rpcError{Code: -32601, Message: "method not found"}, ID: req.ID}
	}
}

func decodeParams(raw json.RawMessage, out any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func invalidParams(id any) response {
	return response{JSONRPC: "2.0", Error: &rpcError{Code: -32602, Message: "invalid params"}, ID: id}
}

func appError(id any, err error) response {
	code := 50000
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalidInput:
		code = 40000
	case apperr.CodeNotFound:
		code = 40400
	case apperr.CodeConflict:
		code = 40900
	case apperr.CodeUnauthenticated:
		code = 40100
	}
	return response{JSONRPC: "2.0", Error: &rpcError{Code: code, Message: apperr.MessageOf(err)}, ID: id}
}
