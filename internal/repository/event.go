package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/snapgala/api/internal/database"
	"github.com/snapgala/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create persists a finalized event. The event keeps its application
// generated ID; CreatedOn/UpdatedOn come back from the database.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event SET
			event_id = $event_id,
			welcome_text = $welcome_text,
			description = $description,
			background = $background,
			service_type = $service_type,
			upload_limit = $upload_limit,
			status = $status,
			created_by = $created_by,
			created_on = time::now(),
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"event_id":     event.ID,
		"welcome_text": event.WelcomeText,
		"description":  event.Description,
		"background": map[string]interface{}{
			"media_id": event.Background.MediaID,
			"url":      event.Background.URL,
		},
		"service_type": event.ServiceType,
		"upload_limit": event.UploadLimit,
		"status":       event.Status,
		"created_by":   event.CreatedBy,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.CreatedOn
	return nil
}

// Get retrieves an event by its event_id. Returns (nil, nil) when absent.
func (r *EventRepository) Get(ctx context.Context, eventID string) (*model.Event, error) {
	query := `SELECT * FROM event WHERE event_id = $event_id LIMIT 1`
	vars := map[string]interface{}{"event_id": eventID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventResult(result)
}

// UpdateStatus sets the event status. The active -> disabled transition is
// enforced by the caller; this is a plain field update.
func (r *EventRepository) UpdateStatus(ctx context.Context, eventID, status string) error {
	query := `
		UPDATE event SET
			status = $status,
			updated_on = time::now()
		WHERE event_id = $event_id
	`
	vars := map[string]interface{}{
		"event_id": eventID,
		"status":   status,
	}

	return r.db.Execute(ctx, query, vars)
}

func parseEventResult(result interface{}) (*model.Event, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	// The SurrealDB record id is not part of the model; the event_id field is.
	delete(data, "id")

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := json.Unmarshal(jsonBytes, &event); err != nil {
		return nil, err
	}

	event.ID = getString(data, "event_id")

	if bg, ok := data["background"].(map[string]interface{}); ok {
		event.Background = model.MediaRef{
			MediaID: getString(bg, "media_id"),
			URL:     getString(bg, "url"),
		}
	}

	if t := getTime(data, "created_on"); t != nil {
		event.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		event.UpdatedOn = *t
	}

	return &event, nil
}
