package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/snapgala/api/internal/media"
	"github.com/snapgala/api/internal/model"
)

// CreationEventRepository defines the event repository interface
type CreationEventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, eventID string) (*model.Event, error)
	UpdateStatus(ctx context.Context, eventID, status string) error
}

// CreationPhotoRepository defines the photo repository interface
type CreationPhotoRepository interface {
	CreateMany(ctx context.Context, photos []*model.Photo) error
}

// SessionStore is the volatile per-organizer session store
type SessionStore interface {
	Get(organizerID string) *model.Session
	Put(sess *model.Session)
	Delete(organizerID string)
	Do(organizerID string, fn func())
}

// Sender delivers outbound messages on the conversation channel.
// Delivery is best effort; a lost message never affects session state.
type Sender interface {
	Send(ctx context.Context, organizerID, text string)
}

// CreationService drives the organizer through the event-creation steps.
// All inputs for one organizer are serialized through the session store.
type CreationService struct {
	sessions      SessionStore
	events        CreationEventRepository
	photos        CreationPhotoRepository
	media         media.Store
	sender        Sender
	publicBaseURL string
}

// CreationServiceConfig holds creation service dependencies
type CreationServiceConfig struct {
	Sessions      SessionStore
	EventRepo     CreationEventRepository
	PhotoRepo     CreationPhotoRepository
	Media         media.Store
	Sender        Sender
	PublicBaseURL string
}

// NewCreationService creates a new creation service
func NewCreationService(cfg CreationServiceConfig) *CreationService {
	return &CreationService{
		sessions:      cfg.Sessions,
		events:        cfg.EventRepo,
		photos:        cfg.PhotoRepo,
		media:         cfg.Media,
		sender:        cfg.Sender,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}
}

// Prompts and replies sent to the organizer.
const (
	msgPromptWelcomeText = "Let's set up your event! Send the welcome text your guests will see (up to 100 characters)."
	msgPromptDescription = "Now send a short description of the event (up to 200 characters)."
	msgPromptBackground  = "Looking good. Send the background image for your event page."
	msgPromptServiceType = "How should guests use the event? Reply with one of: both, viewalbum, uploadpics."
	msgPromptUploadLimit = "How many photos may each guest upload? Send a number between 50 and 5000."
	msgPromptExpected    = "How many photos will you preload into the album? Send a positive number."
	msgPromptDisable     = "Send the ID of the event you want to disable."
	msgCancelled         = "Event setup cancelled."
	msgExpectImage       = "That step needs an image. Please send one."
	msgImageFailed       = "Sorry, that image could not be processed. Please try again."
	msgSaveFailed        = "Sorry, something went wrong while saving your event. Please start over."
	msgDisableFailed     = "Sorry, the event could not be disabled. Please try again."
)

// Begin starts a new creation session for the organizer, replacing any
// in-progress one. The event identifier is generated here and never
// changes afterwards.
func (s *CreationService) Begin(ctx context.Context, organizerID string) {
	s.sessions.Do(organizerID, func() {
		s.sessions.Put(&model.Session{
			OrganizerID: organizerID,
			EventID:     model.NewEventID(),
			State:       model.WelcomeTextState{},
			StartedOn:   time.Now(),
		})
		s.sender.Send(ctx, organizerID, msgPromptWelcomeText)
	})
}

// Cancel destroys the organizer's session, if any. Session-less cancels
// are silently ignored like any other session-less input.
func (s *CreationService) Cancel(ctx context.Context, organizerID string) {
	s.sessions.Do(organizerID, func() {
		if s.sessions.Get(organizerID) == nil {
			return
		}
		s.sessions.Delete(organizerID)
		s.sender.Send(ctx, organizerID, msgCancelled)
	})
}

// BeginDisable starts the disable sub-flow, bypassing the main sequence.
func (s *CreationService) BeginDisable(ctx context.Context, organizerID string) {
	s.sessions.Do(organizerID, func() {
		s.sessions.Put(&model.Session{
			OrganizerID: organizerID,
			State:       model.DisableEventIDState{},
			StartedOn:   time.Now(),
		})
		s.sender.Send(ctx, organizerID, msgPromptDisable)
	})
}

// HandleText processes a text input against the organizer's current step.
// Inputs without a session are silently ignored so unrelated conversation
// passes through without error noise.
func (s *CreationService) HandleText(ctx context.Context, organizerID, text string) {
	s.sessions.Do(organizerID, func() {
		sess := s.sessions.Get(organizerID)
		if sess == nil {
			return
		}

		switch st := sess.State.(type) {
		case model.WelcomeTextState:
			if len([]rune(text)) > model.MaxWelcomeTextLength {
				s.sender.Send(ctx, organizerID, fmt.Sprintf("That text is too long (max %d characters). %s", model.MaxWelcomeTextLength, msgPromptWelcomeText))
				return
			}
			sess.State = model.DescriptionState{WelcomeText: text}
			s.sessions.Put(sess)
			s.sender.Send(ctx, organizerID, msgPromptDescription)

		case model.DescriptionState:
			if len([]rune(text)) > model.MaxDescriptionLength {
				s.sender.Send(ctx, organizerID, fmt.Sprintf("That description is too long (max %d characters). %s", model.MaxDescriptionLength, msgPromptDescription))
				return
			}
			sess.State = model.BackgroundImageState{
				WelcomeText: st.WelcomeText,
				Description: text,
			}
			s.sessions.Put(sess)
			s.sender.Send(ctx, organizerID, msgPromptBackground)

		case model.ServiceTypeState:
			token := strings.ToLower(strings.TrimSpace(text))
			if !model.ValidServiceType(token) {
				s.sender.Send(ctx, organizerID, msgPromptServiceType)
				return
			}
			sess.State = model.UploadLimitState{
				WelcomeText: st.WelcomeText,
				Description: st.Description,
				Background:  st.Background,
				ServiceType: token,
			}
			s.sessions.Put(sess)
			s.sender.Send(ctx, organizerID, msgPromptUploadLimit)

		case model.UploadLimitState:
			limit, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil || limit < model.MinUploadLimit || limit > model.MaxUploadLimit {
				s.sender.Send(ctx, organizerID, msgPromptUploadLimit)
				return
			}
			sess.State = model.ExpectedCountState{
				WelcomeText: st.WelcomeText,
				Description: st.Description,
				Background:  st.Background,
				ServiceType: st.ServiceType,
				UploadLimit: limit,
			}
			s.sessions.Put(sess)
			s.sender.Send(ctx, organizerID, msgPromptExpected)

		case model.ExpectedCountState:
			count, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil || count <= 0 {
				s.sender.Send(ctx, organizerID, msgPromptExpected)
				return
			}
			sess.State = model.PreloadedPhotosState{
				WelcomeText:   st.WelcomeText,
				Description:   st.Description,
				Background:    st.Background,
				ServiceType:   st.ServiceType,
				UploadLimit:   st.UploadLimit,
				ExpectedCount: count,
			}
			s.sessions.Put(sess)
			s.sender.Send(ctx, organizerID, fmt.Sprintf("Great. Now send your %d photos, one at a time.", count))

		case model.DisableEventIDState:
			s.disableEvent(ctx, organizerID, strings.TrimSpace(text))

		case model.BackgroundImageState, model.PreloadedPhotosState:
			s.sender.Send(ctx, organizerID, msgExpectImage)
		}
	})
}

// HandleImage processes an image input against the organizer's current step.
func (s *CreationService) HandleImage(ctx context.Context, organizerID string, data []byte) {
	s.handleImage(ctx, organizerID, func(ctx context.Context, folder string) (model.MediaRef, error) {
		return s.media.Upload(ctx, data, folder)
	})
}

// HandleImageURL processes an image delivered as a remote URL.
func (s *CreationService) HandleImageURL(ctx context.Context, organizerID, rawURL string) {
	s.handleImage(ctx, organizerID, func(ctx context.Context, folder string) (model.MediaRef, error) {
		return s.media.UploadFromURL(ctx, rawURL, folder)
	})
}

func (s *CreationService) handleImage(ctx context.Context, organizerID string, upload func(ctx context.Context, folder string) (model.MediaRef, error)) {
	s.sessions.Do(organizerID, func() {
		sess := s.sessions.Get(organizerID)
		if sess == nil {
			return
		}

		switch st := sess.State.(type) {
		case model.BackgroundImageState:
			ref, err := upload(ctx, sess.EventID)
			if err != nil {
				// Session untouched: the organizer can retry the same step.
				s.sender.Send(ctx, organizerID, msgImageFailed)
				return
			}
			sess.State = model.ServiceTypeState{
				WelcomeText: st.WelcomeText,
				Description: st.Description,
				Background:  ref,
			}
			s.sessions.Put(sess)
			s.sender.Send(ctx, organizerID, msgPromptServiceType)

		case model.PreloadedPhotosState:
			ref, err := upload(ctx, sess.EventID)
			if err != nil {
				s.sender.Send(ctx, organizerID, msgImageFailed)
				return
			}
			st.Photos = append(st.Photos, ref)
			if st.Remaining() > 0 {
				sess.State = st
				s.sessions.Put(sess)
				s.sender.Send(ctx, organizerID, fmt.Sprintf("Got it! %d/%d photos received.", len(st.Photos), st.ExpectedCount))
				return
			}
			s.finalize(ctx, sess, st)

		default:
			s.sender.Send(ctx, organizerID, "Please finish the current step first.")
		}
	})
}

// finalize persists the completed event and its preloaded photos, reports
// the guest URL, and destroys the session. The event write and the photo
// writes are two independent operations, not one transaction: if the photo
// write fails the event record may already exist. That weak consistency is
// accepted; the organizer is told to start over either way.
func (s *CreationService) finalize(ctx context.Context, sess *model.Session, st model.PreloadedPhotosState) {
	// Session destruction is unconditional once finalization is attempted.
	defer s.sessions.Delete(sess.OrganizerID)

	event := &model.Event{
		ID:          sess.EventID,
		WelcomeText: st.WelcomeText,
		Description: st.Description,
		Background:  st.Background,
		ServiceType: st.ServiceType,
		UploadLimit: st.UploadLimit,
		Status:      model.EventStatusActive,
		CreatedBy:   sess.OrganizerID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		s.sender.Send(ctx, sess.OrganizerID, msgSaveFailed)
		return
	}

	photos := make([]*model.Photo, 0, len(st.Photos))
	for _, ref := range st.Photos {
		photos = append(photos, &model.Photo{
			EventID:    sess.EventID,
			Media:      ref,
			UploadType: model.UploadTypePreloaded,
			Approved:   true,
		})
	}

	if err := s.photos.CreateMany(ctx, photos); err != nil {
		s.sender.Send(ctx, sess.OrganizerID, msgSaveFailed)
		return
	}

	s.sender.Send(ctx, sess.OrganizerID, fmt.Sprintf("Your event is live! Share this link with your guests: %s", s.GuestURL(sess.EventID)))
}

// GuestURL returns the guest-facing URL for an event.
func (s *CreationService) GuestURL(eventID string) string {
	return s.publicBaseURL + "/e/" + eventID
}

// disableEvent looks up the candidate event and performs the
// active -> disabled transition. Whatever the outcome, the session is
// destroyed; the organizer must re-trigger the flow to retry.
func (s *CreationService) disableEvent(ctx context.Context, organizerID, eventID string) {
	defer s.sessions.Delete(organizerID)

	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		s.sender.Send(ctx, organizerID, msgDisableFailed)
		return
	}
	if event == nil {
		s.sender.Send(ctx, organizerID, fmt.Sprintf("No event found with ID %s.", eventID))
		return
	}
	if event.Status == model.EventStatusDisabled {
		s.sender.Send(ctx, organizerID, fmt.Sprintf("Event %s is already disabled.", eventID))
		return
	}

	if err := s.events.UpdateStatus(ctx, eventID, model.EventStatusDisabled); err != nil {
		s.sender.Send(ctx, organizerID, msgDisableFailed)
		return
	}

	s.sender.Send(ctx, organizerID, fmt.Sprintf("Event %s has been disabled. Guests can no longer upload photos.", eventID))
}
