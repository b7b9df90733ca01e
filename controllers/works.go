package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Mohamed-Galdi/myFreelanceV2/database"
	"github.com/Mohamed-Galdi/myFreelanceV2/models"
	"github.com/Mohamed-Galdi/myFreelanceV2/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const worksPerPage = 9

type workListItem struct {
	models.Work
	ReceivedAmount    decimal.Decimal `json:"received_amount"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	PaymentStatus     string          `json:"payment_status"`
	PaymentPercentage float64         `json:"payment_percentage"`
}

type projectOption struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// GET /works
func GetWorks(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	page := utils.PageParam(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	query := db.Model(&models.Work{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.
			Joins("LEFT JOIN projects ON projects.id = works.project_id").
			Where("LOWER(works.description) LIKE ? OR LOWER(projects.title) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to fetch works"})
		return
	}

	var works []models.Work
	if err := query.
		Preload("Project.Client").
		Preload("Payments").
		Order("works.created_at DESC").
		Offset((page - 1) * worksPerPage).
		Limit(worksPerPage).
		Find(&works).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to fetch works"})
		return
	}

	items := make([]workListItem, 0, len(works))
	for i := range works {
		wk := works[i]
		items = append(items, workListItem{
			Work:              wk,
			ReceivedAmount:    wk.ReceivedAmount(),
			RemainingAmount:   wk.RemainingAmount(),
			PaymentStatus:     wk.PaymentStatus(),
			PaymentPercentage: utils.RoundFloat(wk.PaymentPercentage(), 2),
		})
	}

	// The create/edit forms need every project as a select option.
	var projects []projectOption
	db.Model(&models.Project{}).
		Select("id, title").
		Order("title ASC").
		Scan(&projects)

	var totalWorks int64
	db.Model(&models.Work{}).Count(&totalWorks)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"works":      items,
			"projects":   projects,
			"totalWorks": totalWorks,
			"pagination": utils.Paginate(r, total, page, worksPerPage),
		},
	})
}

// GET /works/{id}
func GetWork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid work ID"})
		return
	}

	db := database.DB
	var work models.Work
	err := db.
		Preload("Project.Client").
		Preload("Payments", func(q *gorm.DB) *gorm.DB {
			return q.Order("payment_date DESC")
		}).
		First(&work, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Work not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	var siblings []models.Work
	db.Preload("Payments").
		Where("project_id = ? AND id <> ?", work.ProjectID, work.ID).
		Order("created_at DESC").
		Find(&siblings)

	siblingItems := make([]workListItem, 0, len(siblings))
	for i := range siblings {
		s := siblings[i]
		siblingItems = append(siblingItems, workListItem{
			Work:              s,
			ReceivedAmount:    s.ReceivedAmount(),
			RemainingAmount:   s.RemainingAmount(),
			PaymentStatus:     s.PaymentStatus(),
			PaymentPercentage: utils.RoundFloat(s.PaymentPercentage(), 2),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"work": workListItem{
				Work:              work,
				ReceivedAmount:    work.ReceivedAmount(),
				RemainingAmount:   work.RemainingAmount(),
				PaymentStatus:     work.PaymentStatus(),
				PaymentPercentage: utils.RoundFloat(work.PaymentPercentage(), 2),
			},
			"worksOfSameProject": siblingItems,
		},
	})
}

type workForm struct {
	ProjectID   uint
	Description string
	Price       decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string
}

func validateWorkForm(r *http.Request) (workForm, map[string]string) {
	errs := map[string]string{}
	var form workForm

	projectID, err := strconv.ParseUint(strings.TrimSpace(r.FormValue("projectId")), 10, 64)
	if err != nil || projectID == 0 {
		errs["projectId"] = "The project field is required."
	} else {
		var project models.Project
		if dbErr := database.DB.First(&project, uint(projectID)).Error; dbErr != nil {
			errs["projectId"] = "The selected project does not exist."
		}
		form.ProjectID = uint(projectID)
	}

	form.Description = strings.TrimSpace(r.FormValue("description"))
	if form.Description == "" {
		errs["description"] = "The description field is required."
	}

	price, perr := parseAmount(r.FormValue("price"))
	if perr != nil || price.IsNegative() {
		errs["price"] = "The price must be a non-negative number."
	}
	form.Price = price

	startRaw := strings.TrimSpace(r.FormValue("startDate"))
	if startRaw == "" {
		errs["startDate"] = "The start date field is required."
	} else if start, derr := parseDate(startRaw); derr != nil {
		errs["startDate"] = "The start date must be a valid date."
	} else {
		form.StartDate = &start
	}
	var derr error
	form.EndDate, derr = parseOptionalDate(strings.TrimSpace(r.FormValue("endDate")))
	if derr != nil {
		errs["endDate"] = "The end date must be a valid date."
	}

	form.Status = strings.ToLower(strings.TrimSpace(r.FormValue("status")))
	if form.Status == "" {
		form.Status = models.WorkStatusOngoing
	} else if !models.ValidWorkStatus(form.Status) {
		errs["status"] = "The status must be ongoing, completed or cancelled."
	}

	return form, errs
}

func applyWorkForm(work *models.Work, form workForm) {
	work.ProjectID = form.ProjectID
	work.Description = form.Description
	work.Price = form.Price
	work.Status = form.Status
	work.StartDate = form.StartDate
	work.EndDate = form.EndDate
}

// POST /works
func CreateWork(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form body"})
		return
	}

	form, errs := validateWorkForm(r)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	var work models.Work
	applyWorkForm(&work, form)
	if err := database.DB.Create(&work).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create work"})
		return
	}

	writeEmptySuccess(w)
}

// POST /works/{id}
func UpdateWork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid work ID"})
		return
	}
	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form body"})
		return
	}

	form, errs := validateWorkForm(r)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	db := database.DB
	var work models.Work
	if err := db.First(&work, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Work not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	applyWorkForm(&work, form)
	if err := db.Save(&work).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update work"})
		return
	}

	writeEmptySuccess(w)
}

// POST /works/{id}/delete
func DeleteWork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid work ID"})
		return
	}

	db := database.DB
	var work models.Work
	if err := db.First(&work, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Work not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	// Payments cascade with the work.
	if err := db.Delete(&work).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete work"})
		return
	}

	http.Redirect(w, r, "/works", http.StatusSeeOther)
}
