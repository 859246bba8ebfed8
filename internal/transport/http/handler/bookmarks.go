package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quran-api-nosql/internal/application/bookmark"
	"github.com/quran-api-nosql/internal/domain"
	"github.com/quran-api-nosql/internal/transport/http/middleware"
)

// BookmarkHandler serves the authenticated user's bookmarks.
type BookmarkHandler struct {
	svc bookmark.Service
}

func NewBookmarkHandler(svc bookmark.Service) *BookmarkHandler { return &BookmarkHandler{svc: svc} }

func (h *BookmarkHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.AddBookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.svc.Add(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, BookmarkEnvelope{Message: "Bookmark added", Bookmark: b})
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	items, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Bookmark deleted"})
}
