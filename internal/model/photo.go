package model

import "time"

// Photo is an append-only record of one uploaded image. Photos are never
// mutated after creation; retrieval order is by UploadedOn descending.
// EventID may dangle if the referenced event never finished finalizing.
type Photo struct {
	ID         string        `json:"id"`
	EventID    string        `json:"event_id"`
	Media      MediaRef      `json:"media"`
	UploadType string        `json:"upload_type"` // preloaded, guest
	Uploader   *UploaderInfo `json:"uploader,omitempty"`
	Approved   bool          `json:"approved"`
	UploadedOn time.Time     `json:"uploaded_on"`
}

// UploadType constants
const (
	UploadTypePreloaded = "preloaded"
	UploadTypeGuest     = "guest"
)

// UploaderInfo identifies the party behind a guest upload. Origin is the
// requester's network address; it is the quota key, not authentication.
type UploaderInfo struct {
	Origin      string `json:"origin"`
	ClientLabel string `json:"client_label,omitempty"`
}
