package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pawpoint/grooming-scheduler/internal/config"
	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/httperr"
)

// ======================================================
// GET AVAILABLE SLOTS
// ======================================================

type AvailableSlotsInput struct {
	Date      time.Time
	ServiceID uuid.UUID
}

type GetAvailableSlots struct {
	repo  domain.Repository
	sched config.Scheduling
	now   func() time.Time
}

func NewGetAvailableSlots(
	repo domain.Repository,
	sched config.Scheduling,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo:  repo,
		sched: sched,
		now:   func() time.Time { return time.Now().In(sched.Location) },
	}
}

// Execute is a pure read: the same inputs against the same ledger state
// always produce the same slot list.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in AvailableSlotsInput,
) ([]domain.Interval, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if in.Date.Before(today) {
		return nil, httperr.ErrBusiness(httperr.CodePastDate)
	}

	// Holiday takes precedence over an otherwise open weekday.
	onHoliday, err := uc.repo.IsHoliday(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	hours, err := uc.repo.GetBusinessHours(ctx, domain.ISOWeekday(in.Date))
	if err != nil {
		return nil, err
	}

	window, open := domain.ResolveDayWindow(in.Date, hours, onHoliday)
	if !open {
		return []domain.Interval{}, nil
	}

	duration := time.Duration(svc.DurationMin) * time.Minute
	slots := domain.SlotGrid(window, duration, uc.sched.SlotStride)

	booked, err := uc.repo.ListActiveForDay(ctx, in.Date, nil)
	if err != nil {
		return nil, err
	}

	return domain.FilterConflicting(slots, domain.BusyIntervals(booked)), nil
}
