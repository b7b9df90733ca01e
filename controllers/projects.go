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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const projectsPerPage = 9

type projectListItem struct {
	models.Project
	WorkCount    int             `json:"work_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	LogoURL      *string         `json:"logo_url,omitempty"`
}

// logoSignedURLTTL bounds how long a presigned logo link stays valid.
const logoSignedURLTTL = 3600

// logoURL presigns the stored logo object for the response. Nil when the
// project has no logo or object storage is not configured.
func logoURL(logo *string) *string {
	if logo == nil {
		return nil
	}
	signed, err := utils.GenerateSignedURL(*logo, logoSignedURLTTL)
	if err != nil {
		return nil
	}
	return &signed
}

// GET /projects
func GetProjects(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	page := utils.PageParam(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	query := db.Model(&models.Project{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ?", like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to fetch projects"})
		return
	}

	var projects []models.Project
	if err := query.
		Preload("Client").
		Preload("Works.Payments").
		Order("title ASC").
		Offset((page - 1) * projectsPerPage).
		Limit(projectsPerPage).
		Find(&projects).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to fetch projects"})
		return
	}

	items := make([]projectListItem, 0, len(projects))
	for i := range projects {
		p := projects[i]
		item := projectListItem{
			Project:      p,
			WorkCount:    p.WorkCount(),
			TotalRevenue: p.TotalRevenue(),
			LogoURL:      logoURL(p.Logo),
		}
		item.Project.Works = nil
		items = append(items, item)
	}

	var totalProjects int64
	db.Model(&models.Project{}).Count(&totalProjects)

	// Ledger revenue across every project: the literal sum of payments.
	var totalRevenue decimal.Decimal
	db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"projects":      items,
			"totalProjects": totalProjects,
			"totalRevenue":  totalRevenue,
			"pagination":    utils.Paginate(r, total, page, projectsPerPage),
		},
	})
}

// GET /projects/{id}
func GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	db := database.DB
	var project models.Project
	err := db.
		Preload("Client").
		Preload("Works", func(q *gorm.DB) *gorm.DB {
			return q.Order("created_at DESC")
		}).
		Preload("Works.Payments").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	ongoingWorks := 0
	completedWorks := 0
	for i := range project.Works {
		switch project.Works[i].Status {
		case models.WorkStatusOngoing:
			ongoingWorks++
		case models.WorkStatusCompleted:
			completedWorks++
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"project": project,
			"logoUrl": logoURL(project.Logo),
			"stats": map[string]interface{}{
				"ongoingWorks":    ongoingWorks,
				"completedWorks":  completedWorks,
				"pendingPayments": project.PendingAmount(),
				"totalRevenue":    project.TotalRevenue(),
			},
		},
	})
}

type projectForm struct {
	ClientID   uint
	Title      string
	Desc       string
	TechStack  []string
	GithubRepo string
	LiveLink   string
	LogoToken  string
}

func validateProjectForm(r *http.Request) (projectForm, map[string]string) {
	errs := map[string]string{}
	var form projectForm

	clientID, err := strconv.ParseUint(strings.TrimSpace(r.FormValue("clientId")), 10, 64)
	if err != nil || clientID == 0 {
		errs["clientId"] = "The client field is required."
	} else {
		var client models.Client
		if dbErr := database.DB.First(&client, uint(clientID)).Error; dbErr != nil {
			errs["clientId"] = "The selected client does not exist."
		}
		form.ClientID = uint(clientID)
	}

	form.Title = strings.TrimSpace(r.FormValue("title"))
	if form.Title == "" {
		errs["title"] = "The title field is required."
	}

	form.Desc = strings.TrimSpace(r.FormValue("description"))
	for _, tech := range r.Form["techStack[]"] {
		if tech = strings.TrimSpace(tech); tech != "" {
			form.TechStack = append(form.TechStack, tech)
		}
	}
	form.GithubRepo = strings.TrimSpace(r.FormValue("githubRepo"))
	form.LiveLink = strings.TrimSpace(r.FormValue("liveLink"))
	form.LogoToken = strings.TrimSpace(r.FormValue("logo"))

	return form, errs
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// POST /projects
func CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form body"})
		return
	}

	form, errs := validateProjectForm(r)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	project := models.Project{
		ClientID:    form.ClientID,
		Title:       form.Title,
		Description: form.Desc,
		TechStack:   datatypes.NewJSONSlice(form.TechStack),
		GithubRepo:  optionalString(form.GithubRepo),
		LiveLink:    optionalString(form.LiveLink),
	}

	if form.LogoToken != "" {
		logoPath, err := commitTempFile(form.LogoToken, "projects", form.Title)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store project logo"})
			return
		}
		project.Logo = logoPath
	}

	if err := database.DB.Create(&project).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create project"})
		return
	}

	writeEmptySuccess(w)
}

// POST /projects/{id}
func UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}
	if err := r.ParseForm(); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form body"})
		return
	}

	form, errs := validateProjectForm(r)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	db := database.DB
	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	project.ClientID = form.ClientID
	project.Title = form.Title
	project.Description = form.Desc
	project.TechStack = datatypes.NewJSONSlice(form.TechStack)
	project.GithubRepo = optionalString(form.GithubRepo)
	project.LiveLink = optionalString(form.LiveLink)

	if form.LogoToken != "" {
		logoPath, err := commitTempFile(form.LogoToken, "projects", form.Title)
		if err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store project logo"})
			return
		}
		if logoPath != nil {
			if project.Logo != nil {
				// best effort, the old logo is unreachable either way
				_ = utils.DeleteFromS3(*project.Logo)
			}
			project.Logo = logoPath
		}
	}

	if err := db.Save(&project).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update project"})
		return
	}

	writeEmptySuccess(w)
}

// POST /projects/{id}/delete
//
// Deleting a project cascades to its works and payments, and removes the
// stored logo object. This is irreversible.
func DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid project ID"})
		return
	}

	db := database.DB
	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	if err := db.Delete(&project).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete project"})
		return
	}

	if project.Logo != nil {
		_ = utils.DeleteFromS3(*project.Logo)
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}
