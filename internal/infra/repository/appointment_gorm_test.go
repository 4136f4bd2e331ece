package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

// dryRunDB builds SQL against the postgres dialector without touching a
// database.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestLockedOverlapScanAvoidsAggregate(t *testing.T) {
	db := dryRunDB(t)

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	start := date.Add(10 * time.Hour)
	end := date.Add(11 * time.Hour)

	// Same builder chain the create transaction runs: Postgres rejects
	// FOR UPDATE combined with count(*), so the scan must select rows.
	var blockers []models.Appointment
	stmt := overlapScope(db, date, start, end).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Find(&blockers).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "FOR UPDATE")
	assert.NotContains(t, strings.ToLower(sql), "count(")
}

func TestOverlapScopeMatchesHalfOpenWindow(t *testing.T) {
	db := dryRunDB(t)

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	start := date.Add(10 * time.Hour)
	end := date.Add(11 * time.Hour)

	var aps []models.Appointment
	stmt := overlapScope(db, date, start, end).Find(&aps).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "start_time < ")
	assert.Contains(t, sql, "end_time > ")

	// date, two statuses, end, start
	require.Len(t, stmt.Vars, 5)
	assert.Equal(t, "pending", stmt.Vars[1])
	assert.Equal(t, "confirmed", stmt.Vars[2])
	assert.Equal(t, end, stmt.Vars[3])
	assert.Equal(t, start, stmt.Vars[4])
}

func TestRemapCreateErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uniq_appointment_time"}

	// Direct and wrapped, the way the driver surfaces it through gorm.
	assert.True(t, httperr.IsBusiness(remapCreateError(pgErr), httperr.CodeSlotConflict))

	wrapped := fmt.Errorf("create appointment: %w", pgErr)
	assert.True(t, httperr.IsBusiness(remapCreateError(wrapped), httperr.CodeSlotConflict))
}

func TestRemapCreateErrorPassesOtherErrorsThrough(t *testing.T) {
	assert.NoError(t, remapCreateError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, remapCreateError(plain))

	// A different Postgres error keeps its identity.
	deadlock := &pgconn.PgError{Code: "40P01"}
	got := remapCreateError(deadlock)
	assert.False(t, httperr.IsBusiness(got, httperr.CodeSlotConflict))
	assert.Equal(t, error(deadlock), got)

	// The in-transaction rejection already carries the business code.
	preChecked := httperr.ErrBusiness(httperr.CodeSlotConflict)
	assert.True(t, httperr.IsBusiness(remapCreateError(preChecked), httperr.CodeSlotConflict))
}
