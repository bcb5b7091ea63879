package handler

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/snapgala/api/internal/model"
	"github.com/snapgala/api/internal/service"
)

// maxUploadBytes caps the accepted request body for photo uploads.
const maxUploadBytes = 20 << 20

// EventHandler handles guest-facing event endpoints
type EventHandler struct {
	admissionService *service.AdmissionService
}

// NewEventHandler creates a new event handler
func NewEventHandler(admissionService *service.AdmissionService) *EventHandler {
	return &EventHandler{
		admissionService: admissionService,
	}
}

// GetEventPage handles GET /v1/events/{eventId} - the guest landing page data
func (h *EventHandler) GetEventPage(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	page, err := h.admissionService.GetEventPage(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, page, map[string]string{
		"self":  "/v1/events/" + eventID,
		"album": "/v1/events/" + eventID + "/album",
	})
}

// GetAlbum handles GET /v1/events/{eventId}/album - all visible photos
func (h *EventHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	album, err := h.admissionService.Album(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, album, map[string]string{
		"self": "/v1/events/" + eventID + "/album",
	})
}

// UploadPhoto handles POST /v1/events/{eventId}/photos - a guest upload.
// The image arrives either as a multipart form field named "image" or as
// the raw request body.
func (h *EventHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	image, err := readUpload(r)
	if err != nil {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "image", Message: "an image payload is required"},
		}))
		return
	}

	origin := clientOrigin(r)
	label := r.Header.Get("User-Agent")

	photo, err := h.admissionService.Admit(r.Context(), eventID, origin, label, image)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, photo, map[string]string{
		"album": "/v1/events/" + eventID + "/album",
	})
}

// readUpload extracts the image bytes from a multipart form or raw body.
func readUpload(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

// clientOrigin identifies the uploading guest. Proxied deployments carry
// the real address in X-Forwarded-For; otherwise the socket address is
// used with the port stripped.
func clientOrigin(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
