package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mohamed-Galdi/myFreelanceV2/database"
	"github.com/Mohamed-Galdi/myFreelanceV2/models"
	"github.com/Mohamed-Galdi/myFreelanceV2/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const paymentsPerPage = 10

type revenueRanking struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

type workOption struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Project     string `json:"project"`
}

// GET /payments
func GetPayments(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	page := utils.PageParam(r)

	var total int64
	if err := db.Model(&models.Payment{}).Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to fetch payments"})
		return
	}

	var payments []models.Payment
	if err := db.
		Preload("Work.Project.Client").
		Order("payment_date DESC, id DESC").
		Offset((page - 1) * paymentsPerPage).
		Limit(paymentsPerPage).
		Find(&payments).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to fetch payments"})
		return
	}

	var totalAmount decimal.Decimal
	db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalAmount)

	var lastPayment *models.Payment
	var last models.Payment
	if err := db.Preload("Work.Project").Order("payment_date DESC, id DESC").First(&last).Error; err == nil {
		lastPayment = &last
	}

	// Pending is summed per work so overpaid works cannot offset underpaid
	// ones.
	var totalPending decimal.Decimal
	db.Raw(`
		SELECT COALESCE(SUM(t.pending), 0) FROM (
			SELECT works.price - COALESCE(SUM(payments.amount), 0) AS pending
			FROM works
			LEFT JOIN payments ON payments.work_id = works.id
			GROUP BY works.id, works.price
			HAVING pending > 0
		) t`).Scan(&totalPending)

	var projectsData []revenueRanking
	db.Raw(`
		SELECT projects.id, projects.title AS name, COALESCE(SUM(payments.amount), 0) AS revenue
		FROM projects
		JOIN works ON works.project_id = projects.id
		JOIN payments ON payments.work_id = works.id
		GROUP BY projects.id, projects.title
		ORDER BY revenue DESC
		LIMIT 10`).Scan(&projectsData)

	var clientsData []revenueRanking
	db.Raw(`
		SELECT clients.id, clients.name, COALESCE(SUM(payments.amount), 0) AS revenue
		FROM clients
		JOIN projects ON projects.client_id = clients.id
		JOIN works ON works.project_id = projects.id
		JOIN payments ON payments.work_id = works.id
		GROUP BY clients.id, clients.name
		ORDER BY revenue DESC
		LIMIT 10`).Scan(&clientsData)

	var works []workOption
	db.Raw(`
		SELECT works.id, works.description, projects.title AS project
		FROM works
		JOIN projects ON projects.id = works.project_id
		ORDER BY works.created_at DESC`).Scan(&works)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"payments":     payments,
			"totalAmount":  totalAmount,
			"totalPending": totalPending,
			"lastPayment":  lastPayment,
			"projectsData": projectsData,
			"clientsData":  clientsData,
			"works":        works,
			"pagination":   utils.Paginate(r, total, page, paymentsPerPage),
		},
	})
}

// GET /payments/{id}
func GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid payment ID"})
		return
	}

	db := database.DB
	var payment models.Payment
	err := db.
		Preload("Work.Project.Client").
		Preload("Work.Payments", func(q *gorm.DB) *gorm.DB {
			return q.Order("payment_date DESC")
		}).
		First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Payment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	var totalPaid, remaining decimal.Decimal
	related := []models.Payment{}
	if payment.Work != nil {
		totalPaid = payment.Work.ReceivedAmount()
		remaining = payment.Work.RemainingAmount()
		for _, p := range payment.Work.Payments {
			if p.ID != payment.ID {
				related = append(related, p)
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"payment":         payment,
			"totalPaid":       totalPaid,
			"remainingAmount": remaining,
			"relatedPayments": related,
		},
	})
}

type paymentForm struct {
	WorkID uint
	Amount decimal.Decimal
	Date   string
	Method string
	Note   string
}

func validatePaymentForm(r *http.Request) (paymentForm, map[string]string) {
	errs := map[string]string{}
	var form paymentForm

	workID, err := strconv.ParseUint(strings.TrimSpace(r.FormValue("workId")), 10, 64)
	if err != nil || workID == 0 {
		errs["workId"] = "The work field is required."
	} else {
		var work models.Work
		if dbErr := database.DB.First(&work, uint(workID)).Error; dbErr != nil {
			errs["workId"] = "The selected work does not exist."
		}
		form.WorkID = uint(workID)
	}

	amount, aerr := parseAmount(strings.TrimSpace(r.FormValue("amount")))
	if aerr != nil || !amount.IsPositive() {
		errs["amount"] = "The amount must be a positive number."
	}
	form.Amount = amount

	form.Date = strings.TrimSpace(r.FormValue("paymentDate"))
	if form.Date == "" {
		errs["paymentDate"] = "The payment date field is required."
	} else if _, derr := parseDate(form.Date); derr != nil {
		errs["paymentDate"] = "The payment date must be a valid date."
	}

	form.Method = strings.TrimSpace(r.FormValue("paymentMethod"))
	if !models.ValidPaymentMethod(form.Method) {
		errs["paymentMethod"] = "The payment method is not supported."
	}

	form.Note = strings.TrimSpace(r.FormValue("note"))

	return form, errs
}

// POST /payments
func CreatePayment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form body"})
		return
	}

	form, errs := validatePaymentForm(r)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	date, _ := parseDate(form.Date)
	payment := models.Payment{
		WorkID:        form.WorkID,
		Amount:        form.Amount,
		PaymentDate:   date,
		PaymentMethod: form.Method,
		Note:          optionalString(form.Note),
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create payment"})
		return
	}

	writeEmptySuccess(w)
}

// POST /payments/{id}
func UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid payment ID"})
		return
	}
	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form body"})
		return
	}

	form, errs := validatePaymentForm(r)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	db := database.DB
	var payment models.Payment
	if err := db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Payment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	date, _ := parseDate(form.Date)
	payment.WorkID = form.WorkID
	payment.Amount = form.Amount
	payment.PaymentDate = date
	payment.PaymentMethod = form.Method
	payment.Note = optionalString(form.Note)

	if err := db.Save(&payment).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update payment"})
		return
	}

	writeEmptySuccess(w)
}

// POST /payments/{id}/delete
func DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid payment ID"})
		return
	}

	db := database.DB
	var payment models.Payment
	if err := db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Payment not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	if err := db.Delete(&payment).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete payment"})
		return
	}

	http.Redirect(w, r, "/payments", http.StatusSeeOther)
}
