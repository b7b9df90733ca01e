package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Mohamed-Galdi/myFreelanceV2/database"
	"github.com/Mohamed-Galdi/myFreelanceV2/models"
	"github.com/Mohamed-Galdi/myFreelanceV2/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const clientsPerPage = 9

type clientListItem struct {
	models.Client
	ProjectsCount int             `json:"projects_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// GET /clients
func GetClients(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	page := utils.PageParam(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	query := db.Model(&models.Client{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(contact) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to fetch clients"})
		return
	}

	var clients []models.Client
	if err := query.
		Preload("Projects.Works.Payments").
		Order("name ASC").
		Offset((page - 1) * clientsPerPage).
		Limit(clientsPerPage).
		Find(&clients).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to fetch clients"})
		return
	}

	items := make([]clientListItem, 0, len(clients))
	for i := range clients {
		c := clients[i]
		item := clientListItem{
			Client:        c,
			ProjectsCount: c.ProjectCount(),
			TotalRevenue:  c.TotalRevenue(),
			PendingAmount: c.PendingAmount(),
		}
		// the nested graph was only loaded for the aggregates
		item.Client.Projects = nil
		items = append(items, item)
	}

	var totalClients int64
	db.Model(&models.Client{}).Count(&totalClients)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"clients":      items,
			"totalClients": totalClients,
			"pagination":   utils.Paginate(r, total, page, clientsPerPage),
		},
	})
}

// GET /clients/{id}
func GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid client ID"})
		return
	}

	db := database.DB
	var client models.Client
	err := db.
		Preload("Projects").
		Preload("Projects.Works", func(q *gorm.DB) *gorm.DB {
			return q.Order("created_at DESC")
		}).
		Preload("Projects.Works.Payments").
		First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Client not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	// Paid/pending splits over the client's works, payment state derived
	// from the ledger.
	totalPaidWorks := 0
	totalPendingWorks := 0
	totalPaidRevenue := decimal.Zero
	totalPendingRevenue := decimal.Zero
	for pi := range client.Projects {
		for wi := range client.Projects[pi].Works {
			work := &client.Projects[pi].Works[wi]
			if work.PaymentStatus() == models.PaymentStatusPaid {
				totalPaidWorks++
				totalPaidRevenue = totalPaidRevenue.Add(work.Price)
			} else {
				totalPendingWorks++
				totalPendingRevenue = totalPendingRevenue.Add(work.Price)
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"client": client,
			"metrics": map[string]interface{}{
				"totalPaidWorks":      totalPaidWorks,
				"totalPendingWorks":   totalPendingWorks,
				"totalPaidRevenue":    totalPaidRevenue,
				"totalPendingRevenue": totalPendingRevenue,
				"projectCount":        client.ProjectCount(),
				"totalRevenue":        client.TotalRevenue(),
				"pendingAmount":       client.PendingAmount(),
			},
		},
	})
}

func validateClientForm(r *http.Request) (name, contact, source string, errs map[string]string) {
	errs = map[string]string{}
	name = strings.TrimSpace(r.FormValue("name"))
	contact = strings.TrimSpace(r.FormValue("contact"))
	source = strings.TrimSpace(r.FormValue("source"))
	if name == "" {
		errs["name"] = "The name field is required."
	}
	return
}

// POST /clients
func CreateClient(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form body"})
		return
	}

	name, contact, source, errs := validateClientForm(r)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	client := models.Client{Name: name, Contact: contact, Source: source}
	if err := database.DB.Create(&client).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create client"})
		return
	}

	writeEmptySuccess(w)
}

// POST /clients/{id}
func UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid client ID"})
		return
	}
	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form body"})
		return
	}

	name, contact, source, errs := validateClientForm(r)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	db := database.DB
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Client not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	client.Name = name
	client.Contact = contact
	client.Source = source
	if err := db.Save(&client).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update client"})
		return
	}

	writeEmptySuccess(w)
}

// POST /clients/{id}/delete
//
// Deleting a client cascades to its projects, works and payments. This is
// irreversible.
func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid client ID"})
		return
	}

	db := database.DB
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Client not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	if err := db.Delete(&client).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete client"})
		return
	}

	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}
