package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/httperr"
)

func TestAddNoteByOwner(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	uc := NewAddNote(f.repo, nil)
	note, err := uc.Execute(context.Background(), domain.Actor{ID: f.customerID}, ap.ID, "  Rex gets nervous around dryers  ")
	require.NoError(t, err)

	assert.Equal(t, "Rex gets nervous around dryers", note.Note)
	assert.False(t, note.StaffAuthored)
	assert.Equal(t, f.customerID, note.AuthorID)
}

func TestAddNoteByStaffOnAnyAppointment(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	staff := domain.Actor{ID: uuid.New(), IsStaff: true}
	note, err := NewAddNote(f.repo, nil).Execute(context.Background(), staff, ap.ID, "Bring the medical record")
	require.NoError(t, err)
	assert.True(t, note.StaffAuthored)
}

func TestAddNoteRejectsStranger(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	stranger := domain.Actor{ID: uuid.New()}
	_, err := NewAddNote(f.repo, nil).Execute(context.Background(), stranger, ap.ID, "hello")
	assertBusiness(t, err, httperr.CodeForbidden)
}

func TestAddNoteRejectsEmptyText(t *testing.T) {
	f := newFixture()
	ap := f.book(t, "2026-09-07", "10:00")

	_, err := NewAddNote(f.repo, nil).Execute(context.Background(), domain.Actor{ID: f.customerID}, ap.ID, "   ")
	assertBusiness(t, err, "empty_note")
}
