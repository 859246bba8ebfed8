package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/quran-api-nosql/internal/application/audio"
	"github.com/quran-api-nosql/internal/domain"
	"github.com/quran-api-nosql/internal/pkg/validate"
)

// AudioHandler proxies recitation metadata from the upstream content API.
type AudioHandler struct {
	svc audio.Service
}

func NewAudioHandler(svc audio.Service) *AudioHandler { return &AudioHandler{svc: svc} }

// Chapter handles GET /audio/{chapterID}?chapter_length=N.
func (h *AudioHandler) Chapter(w http.ResponseWriter, r *http.Request) {
	chapterID, err := strconv.Atoi(chi.URLParam(r, "chapterID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "chapter id must be a number")
		return
	}
	length := 0
	if raw := r.URL.Query().Get("chapter_length"); raw != "" {
		if length, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "chapter_length must be a number")
			return
		}
	}
	urls, err := h.svc.ChapterAudio(r.Context(), chapterID, length)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AudioURLsEnvelope{URLs: urls})
}

func (h *AudioHandler) VerseFiles(w http.ResponseWriter, r *http.Request) {
	var req domain.VerseAudioRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	urls, err := h.svc.VerseAudio(r.Context(), req.VerseKeys)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, VerseAudioEnvelope{URLs: urls})
}
