package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pawpoint/grooming-scheduler/internal/cache"
	"github.com/pawpoint/grooming-scheduler/internal/config"
	"github.com/pawpoint/grooming-scheduler/internal/dto"
	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

const statsCacheTTL = 5 * time.Minute

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	sched config.Scheduling
}

func NewDashboardHandler(db *gorm.DB, cache *cache.Cache, sched config.Scheduling) *DashboardHandler {
	return &DashboardHandler{db: db, cache: cache, sched: sched}
}

// ======================================================
// STATISTICS
// ======================================================

type DashboardStats struct {
	TodayTotal     int64 `json:"today_total"`
	TodayCompleted int64 `json:"today_completed"`
	YesterdayTotal int64 `json:"yesterday_total"`
	TodayDelta     int64 `json:"today_delta"`
	PendingCount   int64 `json:"pending_count"`

	TodayRevenue     float64 `json:"today_revenue"`
	YesterdayRevenue float64 `json:"yesterday_revenue"`
	WeekRevenue      float64 `json:"week_revenue"`
	MonthRevenue     float64 `json:"month_revenue"`

	MonthTotal          int64   `json:"month_total"`
	MonthCompleted      int64   `json:"month_completed"`
	MonthCompletionRate float64 `json:"month_completion_rate"`

	TotalCustomers int64 `json:"total_customers"`
	ActiveClients  int64 `json:"active_clients"`
}

// Statistics aggregates the counters shown on the staff dashboard.
// The result is cached for five minutes; slightly stale numbers are
// acceptable here.
func (h *DashboardHandler) Statistics(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now().In(h.sched.Location)
	today := now.Format("2006-01-02")

	cacheKey := "dashboard:stats:" + today
	var stats DashboardStats
	if h.cache.GetJSON(ctx, cacheKey, &stats) {
		c.JSON(http.StatusOK, stats)
		return
	}

	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	weekStart := now.AddDate(0, 0, -int(now.Weekday()-time.Monday))
	if now.Weekday() == time.Sunday {
		weekStart = now.AddDate(0, 0, -6)
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.sched.Location)

	h.db.Model(&models.Appointment{}).
		Where("date = ? AND status <> ?", today, "cancelled").
		Count(&stats.TodayTotal)

	h.db.Model(&models.Appointment{}).
		Where("date = ? AND status = ?", today, "completed").
		Count(&stats.TodayCompleted)

	h.db.Model(&models.Appointment{}).
		Where("date = ? AND status <> ?", yesterday, "cancelled").
		Count(&stats.YesterdayTotal)

	stats.TodayDelta = stats.TodayTotal - stats.YesterdayTotal

	h.db.Model(&models.Appointment{}).
		Where("status = ?", "pending").
		Count(&stats.PendingCount)

	revenue := func(dest *float64, where string, args ...any) {
		h.db.Model(&models.Appointment{}).
			Select("COALESCE(SUM(total_price), 0)").
			Where(where, args...).
			Scan(dest)
	}
	revenue(&stats.TodayRevenue, "status = ? AND date = ?", "completed", today)
	revenue(&stats.YesterdayRevenue, "status = ? AND date = ?", "completed", yesterday)
	revenue(&stats.WeekRevenue, "status = ? AND date >= ?", "completed", weekStart.Format("2006-01-02"))
	revenue(&stats.MonthRevenue, "status = ? AND date >= ?", "completed", monthStart.Format("2006-01-02"))

	h.db.Model(&models.Appointment{}).
		Where("date >= ? AND status <> ?", monthStart.Format("2006-01-02"), "cancelled").
		Count(&stats.MonthTotal)

	h.db.Model(&models.Appointment{}).
		Where("date >= ? AND status = ?", monthStart.Format("2006-01-02"), "completed").
		Count(&stats.MonthCompleted)

	if stats.MonthTotal > 0 {
		stats.MonthCompletionRate = float64(stats.MonthCompleted) / float64(stats.MonthTotal)
	}

	h.db.Model(&models.Customer{}).
		Where("is_staff = ?", false).
		Count(&stats.TotalCustomers)

	h.db.Model(&models.Appointment{}).
		Where("date >= ?", monthStart.Format("2006-01-02")).
		Distinct("customer_id").
		Count(&stats.ActiveClients)

	h.cache.SetJSON(ctx, cacheKey, stats, statsCacheTTL)

	c.JSON(http.StatusOK, stats)
}

// ======================================================
// CHART
// ======================================================

type chartPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Chart returns per-day appointment counts for the trailing week or
// month, zero-filled so the frontend can plot the series directly.
func (h *DashboardHandler) Chart(c *gin.Context) {
	period := c.DefaultQuery("period", "week")

	days := 7
	switch period {
	case "week":
	case "month":
		days = 30
	default:
		httperr.BadRequest(c, "invalid_period", "Period must be week or month.")
		return
	}

	now := time.Now().In(h.sched.Location)
	from := now.AddDate(0, 0, -(days - 1))

	type row struct {
		Date  time.Time
		Count int64
	}
	var rows []row
	h.db.Model(&models.Appointment{}).
		Select("date, COUNT(*) AS count").
		Where("date >= ? AND status <> ?", from.Format("2006-01-02"), "cancelled").
		Group("date").
		Scan(&rows)

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Date.Format("2006-01-02")] = r.Count
	}

	points := make([]chartPoint, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, chartPoint{Date: day, Count: counts[day]})
	}

	c.JSON(http.StatusOK, gin.H{
		"period": period,
		"points": points,
	})
}

// ======================================================
// PENDING
// ======================================================

// Pending lists upcoming pending appointments awaiting staff
// confirmation, soonest first.
func (h *DashboardHandler) Pending(c *gin.Context) {
	now := time.Now().In(h.sched.Location)

	var aps []models.Appointment
	if err := h.db.
		Preload("Pet").
		Preload("Service").
		Where("status = ? AND date >= ?", "pending", now.Format("2006-01-02")).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_pending", "Could not load pending appointments.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.NewAppointmentListDTO(&ap))
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        len(out),
		"appointments": out,
	})
}
