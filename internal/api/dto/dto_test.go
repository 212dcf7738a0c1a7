package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

func TestValidate_ReportsMissingFields(t *testing.T) {
	err := Validate(&MemberRequest{Name: "Alice", Password: "pw"}, "All parameter must be filled!")

	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	assert.Equal(t, "All parameter must be filled!", de.Message)
	assert.ElementsMatch(t, []string{"username", "email"}, de.Details["fields"])
}

func TestValidate_ItemQuantities(t *testing.T) {
	req := CreateItemRequest{
		Name: "Laptop", Description: "d", Category: "c", URL: "u",
		Quantity: 3, Price: 1000, DueDate: "2026-12-01",
	}
	require.NoError(t, Validate(&req, "x"))

	req.Quantity = -1
	assert.Error(t, Validate(&req, "x"))
}

func TestParseDueDate(t *testing.T) {
	cases := map[string]time.Time{
		"2026-12-01":                time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		"2026-12-01T10:30:00Z":      time.Date(2026, 12, 1, 10, 30, 0, 0, time.UTC),
		"2026-12-01T10:30:00":       time.Date(2026, 12, 1, 10, 30, 0, 0, time.UTC),
		"2026-12-01T10:30:00+02:00": time.Date(2026, 12, 1, 8, 30, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		got, err := CreateItemRequest{DueDate: raw}.ParseDueDate()
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}

	_, err := CreateItemRequest{DueDate: "next tuesday"}.ParseDueDate()
	assert.Error(t, err)
}

func TestNewResponse(t *testing.T) {
	r := NewResponse(204, "No item found", nil)
	assert.Equal(t, "204", r.Status)
	assert.Nil(t, r.Data)
}
