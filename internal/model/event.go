package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is the durable configuration record governing one photo-sharing
// occasion. Once finalized an event is immutable except for Status.
type Event struct {
	ID          string    `json:"id"`
	WelcomeText string    `json:"welcome_text"`
	Description string    `json:"description"`
	Background  MediaRef  `json:"background"`
	ServiceType string    `json:"service_type"` // both, viewalbum, uploadpics
	UploadLimit int       `json:"upload_limit"` // per-origin guest photo quota
	Status      string    `json:"status"`       // active, disabled
	CreatedBy   string    `json:"created_by"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// MediaRef points at a stored image in the media store.
type MediaRef struct {
	MediaID string `json:"media_id"`
	URL     string `json:"url"`
}

// ServiceType constants
const (
	ServiceTypeBoth       = "both"       // Guests may view and upload
	ServiceTypeViewAlbum  = "viewalbum"  // Read-only event
	ServiceTypeUploadPics = "uploadpics" // Upload-only event
)

// EventStatus constants
const (
	EventStatusActive   = "active"
	EventStatusDisabled = "disabled"
)

// Constraints
const (
	MaxWelcomeTextLength = 100
	MaxDescriptionLength = 200
	MinUploadLimit       = 50
	MaxUploadLimit       = 5000
)

// EventIDPrefix is the fixed prefix of every event identifier.
const EventIDPrefix = "gala-"

const eventIDSuffixLength = 10

// NewEventID generates an event identifier: the fixed prefix followed by a
// short random alphanumeric suffix. Uniqueness is assumed, not guaranteed;
// there is no collision retry.
func NewEventID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")
	return EventIDPrefix + suffix[:eventIDSuffixLength]
}

// ValidServiceType reports whether s is one of the three service types.
func ValidServiceType(s string) bool {
	switch s {
	case ServiceTypeBoth, ServiceTypeViewAlbum, ServiceTypeUploadPics:
		return true
	}
	return false
}

// AllowsUploads reports whether the event currently accepts guest uploads.
func (e *Event) AllowsUploads() bool {
	return e.Status == EventStatusActive && e.ServiceType != ServiceTypeViewAlbum
}

// EventPage is the guest-facing view of an event with its photos.
type EventPage struct {
	Event           *Event   `json:"event"`
	PreloadedPhotos []*Photo `json:"preloaded_photos"`
	GuestPhotos     []*Photo `json:"guest_photos"`
	UploadEnabled   bool     `json:"upload_enabled"`
}

// Album partitions an event's photos for the album read path.
type Album struct {
	PreloadedPhotos []*Photo `json:"preloaded_photos"`
	GuestPhotos     []*Photo `json:"guest_photos"`
}
