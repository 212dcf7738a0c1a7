package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tenderdesk/procurement-service/internal/domain"
	"github.com/tenderdesk/procurement-service/internal/events"
	"github.com/tenderdesk/procurement-service/internal/repository"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

const (
	msgInvalidStatus = "Only choose available status: onprocess, approve, reject"
	msgItemNotFound  = "Item not found"
	msgItemForbidden = "You don't have accesss to this items"
	msgTotalTooLarge = "Total price exceeds the supported range"
)

// ItemService coordinates procurement item workflows.
type ItemService struct {
	items      repository.ItemRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ItemDependencies bundles repositories for item service.
type ItemDependencies struct {
	ItemRepo   repository.ItemRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ItemCreateInput describes item submission payload.
type ItemCreateInput struct {
	Name        string
	Description string
	Category    string
	URL         string
	Quantity    int64
	Price       int64
	DueDate     time.Time
}

func (in ItemCreateInput) complete() bool {
	for _, v := range []string{in.Name, in.Description, in.Category, in.URL} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return in.Quantity > 0 && in.Price > 0 && !in.DueDate.IsZero()
}

// NewItemService constructs the service.
func NewItemService(deps ItemDependencies) *ItemService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemService{
		items:      deps.ItemRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create submits an item for the given member. Total is computed here.
func (s *ItemService) Create(ctx context.Context, ownerID int64, in ItemCreateInput) (*domain.Item, error) {
	if !in.complete() {
		return nil, apperrors.NewValidationError(msgMissingParams, nil)
	}
	item, err := domain.NewItem(ownerID, in.Name, in.Description, in.Category, in.URL, in.Quantity, in.Price, in.DueDate)
	if err != nil {
		if errors.Is(err, domain.ErrTotalOverflow) {
			return nil, apperrors.NewValidationError(msgTotalTooLarge, nil)
		}
		return nil, apperrors.NewValidationError(msgMissingParams, nil)
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventItemSubmitted,
		ItemID: item.ID,
		Actor:  memberActor(ownerID),
		Payload: events.ItemSubmittedPayload{
			OwnerID:  ownerID,
			Name:     item.Name,
			Category: item.Category,
			Total:    item.Total,
			DueDate:  item.DueDate,
		},
	})
	return item, nil
}

// List returns every item.
func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.list(ctx, repository.ItemFilter{})
}

// ListByStatus returns every item with the given status.
func (s *ItemService) ListByStatus(ctx context.Context, rawStatus string) ([]domain.Item, error) {
	status, err := parseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ItemFilter{Status: &status})
}

// ListForMember returns the member's own items.
func (s *ItemService) ListForMember(ctx context.Context, userID int64) ([]domain.Item, error) {
	return s.list(ctx, repository.ItemFilter{UserID: &userID})
}

// ListForMemberByStatus returns the member's own items with the given status.
func (s *ItemService) ListForMemberByStatus(ctx context.Context, userID int64, rawStatus string) ([]domain.Item, error) {
	status, err := parseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ItemFilter{UserID: &userID, Status: &status})
}

// GetForMember fetches an item, refusing items owned by someone else.
func (s *ItemService) GetForMember(ctx context.Context, userID, itemID int64) (*domain.Item, error) {
	item, err := s.get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.OwnedBy(userID) {
		return nil, apperrors.NewForbidden(msgItemForbidden)
	}
	return item, nil
}

// UpdateStatus applies an admin review decision.
func (s *ItemService) UpdateStatus(ctx context.Context, itemID int64, rawStatus string) (*domain.Item, error) {
	status, err := parseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	item, err := s.get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	oldStatus := item.Status
	if err := item.SetStatus(status); err != nil {
		if errors.Is(err, domain.ErrNoOpTransition) {
			return nil, apperrors.NewNoOpTransition(fmt.Sprintf("This item already has %s status", status))
		}
		return nil, apperrors.NewInvalidStatus(msgInvalidStatus)
	}
	if err := s.items.UpdateStatus(ctx, item); err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound(msgItemNotFound)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventItemStatusChanged,
		ItemID: item.ID,
		Actor:  events.Actor{Role: domain.RoleAdmin},
		Payload: events.ItemStatusChangedPayload{
			OwnerID:   item.UserID,
			OldStatus: oldStatus,
			NewStatus: item.Status,
		},
	})
	return item, nil
}

func (s *ItemService) get(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound(msgItemNotFound)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return item, nil
}

func (s *ItemService) list(ctx context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

// publishEvent never fails the request; subscriber errors are logged.
func (s *ItemService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("item_id", event.ItemID),
			zap.Error(err))
	}
}

func parseStatus(raw string) (domain.ItemStatus, error) {
	status, err := domain.ParseItemStatus(raw)
	if err != nil {
		return "", apperrors.NewInvalidStatus(msgInvalidStatus)
	}
	return status, nil
}

func memberActor(userID int64) events.Actor {
	return events.Actor{
		Role:   domain.RoleMember,
		UserID: &userID,
	}
}
