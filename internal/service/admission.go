package service

import (
	"context"
	"fmt"

	"github.com/snapgala/api/internal/media"
	"github.com/snapgala/api/internal/model"
)

// AdmissionEventRepository defines the event repository interface
type AdmissionEventRepository interface {
	Get(ctx context.Context, eventID string) (*model.Event, error)
}

// AdmissionPhotoRepository defines the photo repository interface
type AdmissionPhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
	ListByEventAndType(ctx context.Context, eventID, uploadType string, approvedOnly bool) ([]*model.Photo, error)
	CountByEventAndOrigin(ctx context.Context, eventID, uploadType, origin string) (int, error)
}

// AdmissionService decides whether an event accepts a guest upload and
// serves the album read paths.
type AdmissionService struct {
	events AdmissionEventRepository
	photos AdmissionPhotoRepository
	media  media.Store
}

// AdmissionServiceConfig holds admission service dependencies
type AdmissionServiceConfig struct {
	EventRepo AdmissionEventRepository
	PhotoRepo AdmissionPhotoRepository
	Media     media.Store
}

// NewAdmissionService creates a new admission service
func NewAdmissionService(cfg AdmissionServiceConfig) *AdmissionService {
	return &AdmissionService{
		events: cfg.EventRepo,
		photos: cfg.PhotoRepo,
		media:  cfg.Media,
	}
}

// Admit processes one guest upload. The quota is enforced per distinct
// origin address, an abuse-control proxy rather than authentication. The
// count check and the photo write are not under a lock: concurrent
// requests from the same address may both pass the check. The check is
// advisory, not a hard guarantee.
func (s *AdmissionService) Admit(ctx context.Context, eventID, origin, clientLabel string, image []byte) (*model.Photo, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if event.Status == model.EventStatusDisabled {
		return nil, ErrEventDisabled
	}
	if event.ServiceType == model.ServiceTypeViewAlbum {
		return nil, ErrUploadsDisabled
	}

	count, err := s.photos.CountByEventAndOrigin(ctx, eventID, model.UploadTypeGuest, origin)
	if err != nil {
		return nil, err
	}
	if count >= event.UploadLimit {
		return nil, ErrUploadQuota
	}

	ref, err := s.media.Upload(ctx, image, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}

	photo := &model.Photo{
		EventID:    eventID,
		Media:      ref,
		UploadType: model.UploadTypeGuest,
		Uploader: &model.UploaderInfo{
			Origin:      origin,
			ClientLabel: clientLabel,
		},
		Approved: true,
	}

	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}

	return photo, nil
}

// Album retrieves an event's photos partitioned into preloaded and
// approved guest uploads, newest first. An event with no photos of either
// kind yields empty slices, not an error.
func (s *AdmissionService) Album(ctx context.Context, eventID string) (*model.Album, error) {
	preloaded, err := s.photos.ListByEventAndType(ctx, eventID, model.UploadTypePreloaded, false)
	if err != nil {
		return nil, err
	}

	guest, err := s.photos.ListByEventAndType(ctx, eventID, model.UploadTypeGuest, true)
	if err != nil {
		return nil, err
	}

	return &model.Album{
		PreloadedPhotos: preloaded,
		GuestPhotos:     guest,
	}, nil
}

// GetEventPage retrieves the guest-facing event view: the event record,
// both photo partitions, and whether uploads are currently enabled.
func (s *AdmissionService) GetEventPage(ctx context.Context, eventID string) (*model.EventPage, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	album, err := s.Album(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &model.EventPage{
		Event:           event,
		PreloadedPhotos: album.PreloadedPhotos,
		GuestPhotos:     album.GuestPhotos,
		UploadEnabled:   event.AllowsUploads(),
	}, nil
}
