package model

import "time"

// Step identifies a position in the event-creation sequence.
type Step string

// Creation steps, in the order the state machine visits them. The disable
// step belongs to a separate sub-flow entered by its own trigger.
const (
	StepWelcomeText     Step = "awaiting-welcome-text"
	StepDescription     Step = "awaiting-description"
	StepBackgroundImage Step = "awaiting-background-image"
	StepServiceType     Step = "awaiting-service-type"
	StepUploadLimit     Step = "awaiting-upload-limit"
	StepExpectedCount   Step = "awaiting-expected-photo-count"
	StepPreloadedPhotos Step = "awaiting-preloaded-photos"
	StepDisableEventID  Step = "awaiting-event-id-for-disable"
)

// SessionState is implemented by one struct type per creation step. Each
// state carries only the draft fields already validated, so a session can
// never hold a half-filled field for a step it has not passed.
type SessionState interface {
	Step() Step
}

// Session is the volatile, per-organizer in-progress creation state.
// One active session per organizer; a new begin trigger replaces it.
type Session struct {
	OrganizerID string
	EventID     string // generated at session start, immutable
	State       SessionState
	StartedOn   time.Time
}

// WelcomeTextState awaits the event welcome text.
type WelcomeTextState struct{}

// DescriptionState awaits the event description.
type DescriptionState struct {
	WelcomeText string
}

// BackgroundImageState awaits the background image.
type BackgroundImageState struct {
	WelcomeText string
	Description string
}

// ServiceTypeState awaits the service-type token.
type ServiceTypeState struct {
	WelcomeText string
	Description string
	Background  MediaRef
}

// UploadLimitState awaits the per-origin upload limit.
type UploadLimitState struct {
	WelcomeText string
	Description string
	Background  MediaRef
	ServiceType string
}

// ExpectedCountState awaits the number of preloaded photos the organizer
// commits to sending.
type ExpectedCountState struct {
	WelcomeText string
	Description string
	Background  MediaRef
	ServiceType string
	UploadLimit int
}

// PreloadedPhotosState accumulates preloaded photos until the expected
// count is reached, which triggers finalization.
type PreloadedPhotosState struct {
	WelcomeText   string
	Description   string
	Background    MediaRef
	ServiceType   string
	UploadLimit   int
	ExpectedCount int
	Photos        []MediaRef
}

// DisableEventIDState awaits the identifier of the event to disable.
type DisableEventIDState struct{}

func (WelcomeTextState) Step() Step     { return StepWelcomeText }
func (DescriptionState) Step() Step     { return StepDescription }
func (BackgroundImageState) Step() Step { return StepBackgroundImage }
func (ServiceTypeState) Step() Step     { return StepServiceType }
func (UploadLimitState) Step() Step     { return StepUploadLimit }
func (ExpectedCountState) Step() Step   { return StepExpectedCount }
func (PreloadedPhotosState) Step() Step { return StepPreloadedPhotos }
func (DisableEventIDState) Step() Step  { return StepDisableEventID }

// Remaining returns how many preloaded photos are still expected.
func (s PreloadedPhotosState) Remaining() int {
	return s.ExpectedCount - len(s.Photos)
}
