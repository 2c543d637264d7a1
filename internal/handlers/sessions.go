package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Sourabh71/AI-Analyst/internal/models"
	"github.com/Sourabh71/AI-Analyst/internal/services"
	"github.com/Sourabh71/AI-Analyst/internal/utils"
	"github.com/gorilla/mux"
)

const pdfContentType = "application/pdf"

type SessionHandler struct {
	service     services.SessionService
	maxFileSize int64
	logger      *utils.Logger
}

func NewSessionHandler(service services.SessionService, maxFileSize int64, logger *utils.Logger) *SessionHandler {
	return &SessionHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

func (h *SessionHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	tooLarge := utils.NewBadRequestError(fmt.Sprintf("File size exceeds %s limit", formatSize(h.maxFileSize)))

	// Reject oversized requests before reading the body
	if r.ContentLength > h.maxFileSize {
		h.respondError(w, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			h.respondError(w, tooLarge)
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	contentType := determineContentType(header.Filename, header.Header.Get("Content-Type"))

	h.logger.Info("File upload attempt",
		"filename", header.Filename,
		"reported_content_type", header.Header.Get("Content-Type"),
		"determined_content_type", contentType)

	if contentType != pdfContentType {
		h.respondError(w, utils.NewBadRequestError("Only PDF files are allowed"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}

	if int64(len(data)) > h.maxFileSize {
		h.respondError(w, tooLarge)
		return
	}

	if len(data) == 0 {
		h.respondError(w, utils.NewBadRequestError("Uploaded file is empty"))
		return
	}

	req := &models.UploadRequest{
		File:        data,
		Filename:    filepath.Base(header.Filename),
		ContentType: contentType,
	}

	resp, err := h.service.LoadDocument(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) RunExtraction(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, h.service.RunExtraction)
}

func (h *SessionHandler) ParseTables(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, h.service.ParseTables)
}

func (h *SessionHandler) Classify(w http.ResponseWriter, r *http.Request) {
	h.runAction(w, r, h.service.Classify)
}

func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.CloseSession(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type actionFunc func(ctx context.Context, id string) (*models.ActionResult, error)

func (h *SessionHandler) runAction(w http.ResponseWriter, r *http.Request, action actionFunc) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, err := action(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewBadRequestError("Session ID is required"))
		return "", false
	}
	return id, true
}

// determineContentType prefers the file extension over the reported header.
func determineContentType(filename, headerContentType string) string {
	if strings.ToLower(filepath.Ext(filename)) == ".pdf" {
		return pdfContentType
	}

	mediaType, _, _ := strings.Cut(headerContentType, ";")
	return strings.TrimSpace(strings.ToLower(mediaType))
}

func formatSize(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}

func (h *SessionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *SessionHandler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request error", "status", status, "error", err)
	} else {
		h.logger.Warn("Request rejected", "status", status, "error", message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
