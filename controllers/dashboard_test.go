package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mohamed-Galdi/myFreelanceV2/database"
	"github.com/Mohamed-Galdi/myFreelanceV2/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Same sqlite stand-in the model tests use: the MySQL enum/decimal column
// types don't migrate on sqlite, so the tables are created by hand.
const dashboardSchema = `
CREATE TABLE clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	contact TEXT,
	source TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id INTEGER NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT,
	tech_stack TEXT,
	logo TEXT,
	github_repo TEXT,
	live_link TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE works (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	description TEXT NOT NULL,
	price NUMERIC NOT NULL,
	start_date DATE,
	end_date DATE,
	status TEXT NOT NULL DEFAULT 'ongoing',
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE payments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	work_id INTEGER NOT NULL REFERENCES works(id) ON DELETE CASCADE,
	amount NUMERIC NOT NULL,
	payment_date DATE NOT NULL,
	payment_method TEXT NOT NULL,
	note TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
`

// swapTestDB points the package-global handle at an in-memory database for
// the duration of the test.
func swapTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(dashboardSchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func TestDashboardDeadlineListsIgnoreStatus(t *testing.T) {
	db := swapTestDB(t, "dashboard_deadlines")

	client := models.Client{Name: "Acme"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	project := models.Project{ClientID: client.ID, Title: "Storefront"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	now := time.Now()
	date := func(days int) *time.Time {
		d := now.AddDate(0, 0, days)
		return &d
	}

	// One work per status on each side of today. The deadline lists filter on
	// end_date only, so all four must appear.
	works := []models.Work{
		{ProjectID: project.ID, Description: "overdue ongoing", Price: decimal.NewFromInt(100), Status: models.WorkStatusOngoing, EndDate: date(-3)},
		{ProjectID: project.ID, Description: "overdue completed", Price: decimal.NewFromInt(100), Status: models.WorkStatusCompleted, EndDate: date(-2)},
		{ProjectID: project.ID, Description: "upcoming cancelled", Price: decimal.NewFromInt(100), Status: models.WorkStatusCancelled, EndDate: date(2)},
		{ProjectID: project.ID, Description: "upcoming ongoing", Price: decimal.NewFromInt(100), Status: models.WorkStatusOngoing, EndDate: date(3)},
	}
	for i := range works {
		if err := db.Create(&works[i]).Error; err != nil {
			t.Fatalf("create work: %v", err)
		}
	}
	payment := models.Payment{WorkID: works[0].ID, Amount: decimal.NewFromInt(50), PaymentDate: now, PaymentMethod: "PayPal"}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("create payment: %v", err)
	}

	r := httptest.NewRequest("GET", "/v1/dashboard", nil)
	w := httptest.NewRecorder()
	GetDashboard(w, r)

	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			UpcomingWorks []models.Work `json:"upcomingWorks"`
			OverdueWorks  []models.Work `json:"overdueWorks"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Data.OverdueWorks) != 2 {
		t.Fatalf("overdueWorks: got %d entries, want 2", len(resp.Data.OverdueWorks))
	}
	if resp.Data.OverdueWorks[0].Description != "overdue ongoing" ||
		resp.Data.OverdueWorks[1].Description != "overdue completed" {
		t.Errorf("overdueWorks wrong rows/order: %q, %q",
			resp.Data.OverdueWorks[0].Description, resp.Data.OverdueWorks[1].Description)
	}

	if len(resp.Data.UpcomingWorks) != 2 {
		t.Fatalf("upcomingWorks: got %d entries, want 2", len(resp.Data.UpcomingWorks))
	}
	if resp.Data.UpcomingWorks[0].Description != "upcoming cancelled" ||
		resp.Data.UpcomingWorks[1].Description != "upcoming ongoing" {
		t.Errorf("upcomingWorks wrong rows/order: %q, %q",
			resp.Data.UpcomingWorks[0].Description, resp.Data.UpcomingWorks[1].Description)
	}
}
