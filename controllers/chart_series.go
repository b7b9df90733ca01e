package controllers

import (
	"fmt"
	"time"

	"github.com/Mohamed-Galdi/myFreelanceV2/models"
	"github.com/shopspring/decimal"
)

// Chart intervals supported by the dashboard.
const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
	IntervalAlltime = "alltime"
)

const (
	dailyWindowDays   = 30
	weeklyWindowWeeks = 12
	monthlyWindowMos  = 12
)

// ChartPayment is the drill-down detail attached to each chart point.
type ChartPayment struct {
	ID              uint            `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	WorkID          uint            `json:"workId"`
	WorkDescription string          `json:"workDescription"`
	WorkStatus      string          `json:"workStatus"`
	ProjectID       uint            `json:"projectId"`
	ProjectTitle    string          `json:"projectTitle"`
	ClientID        uint            `json:"clientId"`
	ClientName      string          `json:"clientName"`
}

// ChartPoint is one calendar bucket of the revenue series.
type ChartPoint struct {
	Period            string          `json:"period"`
	Revenue           decimal.Decimal `json:"revenue"`
	CumulativeRevenue decimal.Decimal `json:"cumulativeRevenue"`
	Payments          []ChartPayment  `json:"payments"`
	PaymentCount      int             `json:"paymentCount"`
}

// ChartWindowStart returns the first date covered by the interval's window,
// relative to now. For alltime it is the earliest payment date, or now when no
// payments exist (which yields a single empty bucket).
func ChartWindowStart(interval string, payments []models.Payment, now time.Time) time.Time {
	switch interval {
	case IntervalDaily:
		return now.AddDate(0, 0, -dailyWindowDays)
	case IntervalWeekly:
		return startOfISOWeek(now).AddDate(0, 0, -weeklyWindowWeeks*7)
	case IntervalMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -monthlyWindowMos, 0)
	default: // alltime
		earliest := now
		for i := range payments {
			if payments[i].PaymentDate.Before(earliest) {
				earliest = payments[i].PaymentDate
			}
		}
		return time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// BuildChartSeries groups payments into calendar buckets for the interval and
// walks every period from the window start to now, inclusive. Periods without
// payments appear with zero revenue so the series never has gaps; the
// cumulative sum is non-decreasing. Bucket boundaries are server-local time.
func BuildChartSeries(interval string, payments []models.Payment, now time.Time) []ChartPoint {
	start := ChartWindowStart(interval, payments, now)

	grouped := make(map[string][]models.Payment)
	for _, p := range payments {
		if p.PaymentDate.Before(start) {
			continue
		}
		key := bucketKey(interval, p.PaymentDate)
		grouped[key] = append(grouped[key], p)
	}

	series := make([]ChartPoint, 0)
	cumulative := decimal.Zero

	for cur := start; !cur.After(now); cur = nextPeriod(interval, cur) {
		bucket := grouped[bucketKey(interval, cur)]

		revenue := decimal.Zero
		details := make([]ChartPayment, 0, len(bucket))
		for _, p := range bucket {
			revenue = revenue.Add(p.Amount)
			details = append(details, paymentDetail(p))
		}
		cumulative = cumulative.Add(revenue)

		series = append(series, ChartPoint{
			Period:            bucketLabel(interval, cur),
			Revenue:           revenue,
			CumulativeRevenue: cumulative,
			Payments:          details,
			PaymentCount:      len(bucket),
		})
	}

	return series
}

func paymentDetail(p models.Payment) ChartPayment {
	d := ChartPayment{
		ID:     p.ID,
		Amount: p.Amount,
		Date:   p.PaymentDate,
		WorkID: p.WorkID,
	}
	if p.Work != nil {
		d.WorkDescription = p.Work.Description
		d.WorkStatus = p.Work.Status
		if p.Work.Project != nil {
			d.ProjectID = p.Work.Project.ID
			d.ProjectTitle = p.Work.Project.Title
			if p.Work.Project.Client != nil {
				d.ClientID = p.Work.Project.Client.ID
				d.ClientName = p.Work.Project.Client.Name
			}
		}
	}
	return d
}

// bucketKey identifies the calendar bucket a date falls into. Weekly keys use
// ISO-8601 week numbering with the ISO year, so series spanning a year
// boundary never collide.
func bucketKey(interval string, t time.Time) string {
	switch interval {
	case IntervalDaily:
		return t.Format("2006-01-02")
	case IntervalWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default: // monthly and alltime
		return t.Format("2006-01")
	}
}

func bucketLabel(interval string, t time.Time) string {
	switch interval {
	case IntervalDaily:
		return t.Format("Jan 02")
	case IntervalWeekly:
		_, week := t.ISOWeek()
		return fmt.Sprintf("Week %d", week)
	default:
		return t.Format("Jan 2006")
	}
}

func nextPeriod(interval string, t time.Time) time.Time {
	switch interval {
	case IntervalDaily:
		return t.AddDate(0, 0, 1)
	case IntervalWeekly:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// startOfISOWeek returns the Monday of t's week at midnight.
func startOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
