package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/snapgala/api/internal/database"
	"github.com/snapgala/api/internal/model"
)

// PhotoRepository handles photo data access. Photo records are append-only;
// there is no update or delete path.
type PhotoRepository struct {
	db database.Database
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db database.Database) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create persists a single photo record
func (r *PhotoRepository) Create(ctx context.Context, photo *model.Photo) error {
	vars := map[string]interface{}{
		"event_id": photo.EventID,
		"media": map[string]interface{}{
			"media_id": photo.Media.MediaID,
			"url":      photo.Media.URL,
		},
		"upload_type": photo.UploadType,
		"approved":    photo.Approved,
	}

	setClause := `
		event_id = $event_id,
		media = $media,
		upload_type = $upload_type,
		approved = $approved,
		uploaded_on = time::now()`

	// Uploader is only present for guest uploads (SurrealDB option<T> requires NONE, not NULL)
	if photo.Uploader != nil {
		setClause += ", uploader = $uploader"
		vars["uploader"] = map[string]interface{}{
			"origin":       photo.Uploader.Origin,
			"client_label": photo.Uploader.ClientLabel,
		}
	}

	result, err := r.db.Query(ctx, "CREATE photo SET "+setClause, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	photo.ID = created.ID
	photo.UploadedOn = created.CreatedOn
	return nil
}

// CreateMany persists photos one at a time. Writes are independent; a
// failure partway leaves the earlier records in place.
func (r *PhotoRepository) CreateMany(ctx context.Context, photos []*model.Photo) error {
	for _, photo := range photos {
		if err := r.Create(ctx, photo); err != nil {
			return err
		}
	}
	return nil
}

// ListByEventAndType retrieves photos for an event of one upload type,
// newest first. approvedOnly restricts to approved records.
func (r *PhotoRepository) ListByEventAndType(ctx context.Context, eventID, uploadType string, approvedOnly bool) ([]*model.Photo, error) {
	query := `
		SELECT * FROM photo
		WHERE event_id = $event_id AND upload_type = $upload_type
	`
	vars := map[string]interface{}{
		"event_id":    eventID,
		"upload_type": uploadType,
	}

	if approvedOnly {
		query += ` AND approved = true`
	}

	query += ` ORDER BY uploaded_on DESC`

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parsePhotosResult(result)
}

// CountByEventAndOrigin counts photos of one upload type for an event from
// a single origin address. This backs the per-origin quota check.
func (r *PhotoRepository) CountByEventAndOrigin(ctx context.Context, eventID, uploadType, origin string) (int, error) {
	query := `
		SELECT count() as cnt FROM photo
		WHERE event_id = $event_id
		AND upload_type = $upload_type
		AND uploader.origin = $origin
		GROUP ALL
	`
	vars := map[string]interface{}{
		"event_id":    eventID,
		"upload_type": uploadType,
		"origin":      origin,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if data, ok := result.(map[string]interface{}); ok {
		return getInt(data, "cnt"), nil
	}
	return 0, nil
}

func parsePhotoResult(result interface{}) (*model.Photo, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	id := convertSurrealID(data["id"])
	delete(data, "id")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var photo model.Photo
	if err := json.Unmarshal(jsonBytes, &photo); err != nil {
		return nil, err
	}

	photo.ID = id
	if t := getTime(data, "uploaded_on"); t != nil {
		photo.UploadedOn = *t
	}

	return &photo, nil
}

func parsePhotosResult(result []interface{}) ([]*model.Photo, error) {
	photos := make([]*model.Photo, 0)

	for _, item := range extractQueryResults(result) {
		photo, err := parsePhotoResult(item)
		if err != nil {
			continue
		}
		photos = append(photos, photo)
	}

	return photos, nil
}
