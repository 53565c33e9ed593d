package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"signoff/internal/models"
	"signoff/internal/roles"
	"signoff/pkg/apperrors"
)

// Validation failures must short-circuit before any persistence I/O, so these
// engines carry no database at all.
func newValidationEngine(chain roles.Sequence) *Engine {
	return NewEngine(nil, chain, nil, nil, time.Hour)
}

func TestProcessStep_UnknownRoleRejectedBeforeAnyRead(t *testing.T) {
	engine := newValidationEngine(roles.NewSequence([]string{"MANAGER", "DIRECTOR"}))

	_, err := engine.ProcessStep(context.Background(), 1, models.StatusApproved, 42, "CEO")
	assert.ErrorIs(t, err, apperrors.ErrUnknownRole)
}

func TestProcessStep_InvalidStatusRejected(t *testing.T) {
	engine := newValidationEngine(roles.NewSequence([]string{"MANAGER", "DIRECTOR"}))

	testCases := []struct {
		name   string
		status models.Status
	}{
		{name: "pending is not a decision", status: models.StatusPending},
		{name: "empty status", status: ""},
		{name: "garbage status", status: "SIGNED"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.ProcessStep(context.Background(), 1, tc.status, 42, "MANAGER")
			assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
		})
	}
}

func TestCreateRequest_EmptyTitleRejected(t *testing.T) {
	engine := newValidationEngine(roles.NewSequence([]string{"MANAGER"}))

	_, err := engine.CreateRequest(context.Background(), CreateRequestInput{CreatorID: 1})
	assert.ErrorIs(t, err, apperrors.ErrEmptyTitle)
}

func TestCreateRequest_EmptyChainRejected(t *testing.T) {
	engine := newValidationEngine(roles.NewSequence(nil))

	_, err := engine.CreateRequest(context.Background(), CreateRequestInput{Title: "Budget", CreatorID: 1})
	assert.ErrorIs(t, err, apperrors.ErrNoNextRole)
}
