package controllers

import (
	"net/http"
	"time"

	"github.com/Mohamed-Galdi/myFreelanceV2/database"
	"github.com/Mohamed-Galdi/myFreelanceV2/models"
	"github.com/Mohamed-Galdi/myFreelanceV2/utils"
	"github.com/shopspring/decimal"
)

// GET /dashboard
//
// Single endpoint feeding the whole dashboard view: totals, work and payment
// stats, the revenue chart for all four intervals, and the activity lists.
// Every figure is computed from the ledger at request time.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	now := time.Now()

	var totalClients, totalProjects, totalWorks, totalPayments int64
	db.Model(&models.Client{}).Count(&totalClients)
	db.Model(&models.Project{}).Count(&totalProjects)
	db.Model(&models.Work{}).Count(&totalWorks)
	db.Model(&models.Payment{}).Count(&totalPayments)

	var ongoingWorks, completedWorks, cancelledWorks int64
	db.Model(&models.Work{}).Where("status = ?", models.WorkStatusOngoing).Count(&ongoingWorks)
	db.Model(&models.Work{}).Where("status = ?", models.WorkStatusCompleted).Count(&completedWorks)
	db.Model(&models.Work{}).Where("status = ?", models.WorkStatusCancelled).Count(&cancelledWorks)

	var moneyReceived decimal.Decimal
	db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&moneyReceived)

	// Pending here is the raw gap between what was priced and what was
	// received, so an overpaid work offsets it. The payments page reports
	// the stricter per-work figure.
	var totalPriced decimal.Decimal
	db.Model(&models.Work{}).
		Select("COALESCE(SUM(price), 0)").
		Scan(&totalPriced)
	moneyPending := totalPriced.Sub(moneyReceived)

	paidWorks := 0
	pendingWorks := 0
	var allWorks []models.Work
	db.Preload("Payments").Find(&allWorks)
	for i := range allWorks {
		if allWorks[i].PaymentStatus() == models.PaymentStatusPaid {
			paidWorks++
		} else {
			pendingWorks++
		}
	}

	chartData := map[string][]ChartPoint{}
	for _, interval := range []string{IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalAlltime} {
		payments, err := chartWindowPayments(interval, now)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to build chart data"})
			return
		}
		chartData[interval] = BuildChartSeries(interval, payments, now)
	}

	var recentProjects []models.Project
	db.Preload("Client").
		Order("created_at DESC").
		Limit(5).
		Find(&recentProjects)

	// Both lists filter on end_date only; a completed or cancelled work with a
	// qualifying deadline still shows up.
	var upcomingWorks []models.Work
	db.Preload("Project").
		Where("end_date >= ?", now.Format(dateFormat)).
		Order("end_date ASC").
		Limit(5).
		Find(&upcomingWorks)

	var overdueWorks []models.Work
	db.Preload("Project").
		Where("end_date < ?", now.Format(dateFormat)).
		Order("end_date ASC").
		Limit(5).
		Find(&overdueWorks)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"clientCount":  totalClients,
			"projectCount": totalProjects,
			"workCount":    totalWorks,
			"paymentCount": totalPayments,
			"workStats": map[string]interface{}{
				"ongoing":   ongoingWorks,
				"completed": completedWorks,
				"cancelled": cancelledWorks,
			},
			"paymentStats": map[string]interface{}{
				"moneyReceived": moneyReceived,
				"moneyPending":  moneyPending,
				"paidWorks":     paidWorks,
				"pendingWorks":  pendingWorks,
			},
			"chartData":      chartData,
			"recentProjects": recentProjects,
			"upcomingWorks":  upcomingWorks,
			"overdueWorks":   overdueWorks,
		},
	})
}

// chartWindowPayments loads the payments the interval's chart needs, with the
// work/project/client chain preloaded for the drill-down details. Alltime
// loads everything; the bounded intervals only fetch their window.
func chartWindowPayments(interval string, now time.Time) ([]models.Payment, error) {
	db := database.DB

	query := db.Preload("Work.Project.Client").Order("payment_date ASC")
	if interval != IntervalAlltime {
		start := ChartWindowStart(interval, nil, now)
		query = query.Where("payment_date >= ?", start.Format(dateFormat))
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
