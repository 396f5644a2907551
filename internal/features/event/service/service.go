package service

import (
	"context"
	"encoding/json"

	apperrors "github.com/erickmmolina/baby-shower-registry/internal/common/errors"
	"github.com/erickmmolina/baby-shower-registry/internal/features/event/models"
	"github.com/erickmmolina/baby-shower-registry/internal/platform/blob"
)

// KeyEvent is the store key holding the event document.
const KeyEvent = "event"

// EventService reads and replaces the event details document.
type EventService interface {
	Get(ctx context.Context) (*models.Event, error)
	Set(ctx context.Context, event *models.Event) (*models.Event, error)
}

type eventService struct {
	store blob.Store
}

func NewEventService(store blob.Store) EventService {
	return &eventService{store: store}
}

func (s *eventService) Get(ctx context.Context) (*models.Event, error) {
	data, _, err := s.store.Get(ctx, KeyEvent)
	if err != nil {
		return nil, apperrors.NewStoreError("get", err)
	}
	if data == nil {
		return models.Default(), nil
	}

	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, apperrors.NewCorruptStateError(err)
	}
	return &event, nil
}

// Set replaces the whole document. A single admin writer is assumed, so a
// plain Put is enough here; the gift list is the only contended document.
func (s *eventService) Set(ctx context.Context, event *models.Event) (*models.Event, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode event document")
	}
	if err := s.store.Put(ctx, KeyEvent, data); err != nil {
		return nil, apperrors.NewStoreError("put", err)
	}
	return event, nil
}
