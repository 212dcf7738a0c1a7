package domain

import (
	"errors"
	"math"
	"time"
)

// ItemStatus enumerates review states for procurement items.
type ItemStatus string

const (
	ItemStatusOnProcess ItemStatus = "onprocess"
	ItemStatusApprove   ItemStatus = "approve"
	ItemStatusReject    ItemStatus = "reject"
)

var (
	ErrInvalidStatus  = errors.New("invalid item status")
	ErrNoOpTransition = errors.New("item already has requested status")
)

// ParseItemStatus validates a status string.
func ParseItemStatus(raw string) (ItemStatus, error) {
	switch ItemStatus(raw) {
	case ItemStatusOnProcess, ItemStatusApprove, ItemStatusReject:
		return ItemStatus(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Item is a single procurement request.
type Item struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	URL         string     `json:"url"`
	Quantity    int64      `json:"quantity"`
	Price       int64      `json:"price"`
	Total       int64      `json:"total"`
	DueDate     time.Time  `json:"dueDate"`
	Status      ItemStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SetStatus applies a review decision. Only unknown values and repeats of the
// current status are rejected; approve and reject may be swapped freely.
func (i *Item) SetStatus(next ItemStatus) error {
	if _, err := ParseItemStatus(string(next)); err != nil {
		return err
	}
	if next == i.Status {
		return ErrNoOpTransition
	}
	i.Status = next
	return nil
}

// OwnedBy reports whether the item was submitted by userID.
func (i *Item) OwnedBy(userID int64) bool {
	return i.UserID == userID
}

// ErrTotalOverflow is returned when price × quantity does not fit in int64.
var ErrTotalOverflow = errors.New("item total overflows")

// NewItem builds a submitted item in its initial state. Total is fixed here and
// never recomputed.
func NewItem(userID int64, name, description, category, url string, quantity, price int64, dueDate time.Time) (*Item, error) {
	if quantity <= 0 || price <= 0 {
		return nil, errors.New("quantity and price must be positive")
	}
	if price > math.MaxInt64/quantity {
		return nil, ErrTotalOverflow
	}
	return &Item{
		UserID:      userID,
		Name:        name,
		Description: description,
		Category:    category,
		URL:         url,
		Quantity:    quantity,
		Price:       price,
		Total:       price * quantity,
		DueDate:     dueDate,
		Status:      ItemStatusOnProcess,
	}, nil
}
