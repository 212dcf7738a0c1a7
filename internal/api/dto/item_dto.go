package dto

import (
	"fmt"
	"time"
)

// dueDateLayouts are tried in order.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// CreateItemRequest payload for submitting a procurement item.
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	DueDate     string `json:"dueDate" validate:"required"`
}

// ParseDueDate accepts RFC 3339 timestamps and plain dates (UTC).
func (r CreateItemRequest) ParseDueDate() (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, r.DueDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dueDate %q", r.DueDate)
}

// UpdateItemStatusRequest payload for an admin review decision. Status is
// checked by the item service so unknown values get the status error.
type UpdateItemStatusRequest struct {
	Status string `json:"status"`
}
