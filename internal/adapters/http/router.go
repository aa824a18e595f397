package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/RomanRosson/Byteful/internal/apperr"
	"github.com/RomanRosson/Byteful/internal/application"
	"github.com/RomanRosson/Byteful/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	service *application.Service
	logger  *slog.Logger
}

func NewRouter(service *application.Service, logger *slog.Logger) http.Handler {
	h := &Handler{service: service, logger: logger}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Route("/api", func(api chi.Router) {
		// The literal /items/types route must win over /items/{id}.
		api.Get("/items/types", h.handleListTypeNames)
		api.Get("/items/search/{query}", h.handleSearchItems)
		api.Get("/items/type/{type}", h.handleListItemsByType)
		api.Get("/items", h.handleListItems)
		api.Post("/items", h.handleCreateItem)
		api.Get("/items/{id}", h.handleGetItem)
		api.Put("/items/{id}", h.handleUpdateItem)
		api.Delete("/items/{id}", h.handleDeleteItem)

		api.Get("/types", h.handleListTypes)
		api.Post("/types", h.handleCreateType)
		api.Put("/types/{id}", h.handleRenameType)
		api.Delete("/types/{id}", h.handleDeleteType)

		api.Post("/auth/login", h.handleLogin)
	})

	return r
}

type itemResponse struct {
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

type typeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ItemCount int64     `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponses(items))
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(item))
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req application.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, itemToResponse(item))
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var req application.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	item, err := h.service.UpdateItem(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(item))
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.SearchItems(r.Context(), chi.URLParam(r, "query"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponses(items))
}

func (h *Handler) handleListItemsByType(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItemsByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponses(items))
}

func (h *Handler) handleListTypeNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.ListTypeNames(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	result := make([]typeResponse, 0, len(types))
	for _, t := range types {
		result = append(result, typeToResponse(t))
	}
	writeJSON(w, http.StatusOK, result)
}

type typeNameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	var req typeNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	created, err := h.service.CreateType(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, typeToResponse(created))
}

func (h *Handler) handleRenameType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var req typeNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	renamed, err := h.service.RenameType(r.Context(), id, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, typeToResponse(renamed))
}

func (h *Handler) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteType(r.Context(), id); err != nil {
		// An in-use type answers 400, not 409.
		if apperr.IsCode(err, apperr.CodeConflict) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": apperr.MessageOf(err)})
			return
		}
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type loginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}
	ok, err := h.service.Authenticate(r.Context(), req.Username, req.PIN)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false, "error": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeConflict:
		status = http.StatusConflict
	case apperr.CodeUnauthenticated:
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]any{"error": apperr.MessageOf(err)})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func itemToResponse(item domain.Item) itemResponse {
	return itemResponse{
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

func itemResponses(items []domain.Item) []itemResponse {
	result := make([]itemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, itemToResponse(item))
	}
	return result
}

func typeToResponse(t domain.ItemType) typeResponse {
	return typeResponse{ID: t.ID, Name: t.Name, ItemCount: t.ItemCount, CreatedAt: t.CreatedAt}
}
