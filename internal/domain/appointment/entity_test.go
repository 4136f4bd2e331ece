package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

var (
	staffActor = Actor{ID: uuid.New(), IsStaff: true}
	ownerID    = uuid.New()
	ownerActor = Actor{ID: ownerID, IsStaff: false}
	otherActor = Actor{ID: uuid.New(), IsStaff: false}
)

func pendingAppointment(start time.Time) *models.Appointment {
	return &models.Appointment{
		ID:         uuid.New(),
		CustomerID: ownerID,
		Status:     string(StatusPending),
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
	}
}

func TestConfirmPendingByStaff(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ap := pendingAppointment(now.Add(48 * time.Hour))

	require.NoError(t, Confirm(ap, staffActor, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	assert.Equal(t, now, *ap.ConfirmedAt)
}

func TestConfirmRejectsNonStaff(t *testing.T) {
	now := time.Now()
	ap := pendingAppointment(now.Add(48 * time.Hour))

	err := Confirm(ap, ownerActor, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
	assert.Equal(t, string(StatusPending), ap.Status)
}

func TestConfirmTwiceFails(t *testing.T) {
	now := time.Now()
	ap := pendingAppointment(now.Add(48 * time.Hour))

	require.NoError(t, Confirm(ap, staffActor, now))
	err := Confirm(ap, staffActor, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	now := time.Now()
	ap := pendingAppointment(now.Add(48 * time.Hour))

	// Pending cannot jump straight to completed.
	err := Complete(ap, staffActor, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	require.NoError(t, Confirm(ap, staffActor, now))
	require.NoError(t, Complete(ap, staffActor, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestCancelByOwnerWithAmpleNotice(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ap := pendingAppointment(now.Add(72 * time.Hour))

	warning, err := Cancel(ap, ownerActor, now, 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
}

func TestCancelInsideNoticeWindowWarns(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ap := pendingAppointment(now.Add(3 * time.Hour))

	warning, err := Cancel(ap, ownerActor, now, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, WarnLateCancellation, warning)
	assert.Equal(t, string(StatusCancelled), ap.Status)
}

func TestCancelExactlyAtNoticeBoundaryDoesNotWarn(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ap := pendingAppointment(now.Add(24 * time.Hour))

	warning, err := Cancel(ap, ownerActor, now, 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, warning)
}

func TestCancelRejectsStrangers(t *testing.T) {
	now := time.Now()
	ap := pendingAppointment(now.Add(48 * time.Hour))

	_, err := Cancel(ap, otherActor, now, 24*time.Hour)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
	assert.Equal(t, string(StatusPending), ap.Status)
}

func TestCancelRejectsStartedAppointment(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ap := pendingAppointment(now.Add(-time.Hour))

	_, err := Cancel(ap, staffActor, now, 24*time.Hour)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestCancelRejectsTerminalStatuses(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		ap := pendingAppointment(now.Add(48 * time.Hour))
		ap.Status = string(status)

		_, err := Cancel(ap, staffActor, now, 24*time.Hour)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition), string(status))
	}
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCompleted.Active())
	assert.False(t, StatusCancelled.Active())
}
