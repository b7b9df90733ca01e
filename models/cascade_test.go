package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// entitySchema mirrors the MySQL tables in sqlite, foreign keys included.
// The enum and decimal column types are MySQL-only, so the tables are created
// by hand the same way other parts of the suite stub their storage.
const entitySchema = `
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

func newEntityTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	// _foreign_keys=on applies per connection, so every pooled connection
	// enforces the cascades.
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(entitySchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func seedGraph(t *testing.T, db *gorm.DB) (Client, Project, []Work) {
	t.Helper()

	client := Client{Name: "Acme", Contact: "acme@example.com", Source: "referral"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	project := Project{ClientID: client.ID, Title: "Storefront", Description: "redesign"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	works := []Work{
		{ProjectID: project.ID, Description: "landing page", Price: decimal.NewFromInt(800), Status: WorkStatusCompleted},
		{ProjectID: project.ID, Description: "checkout flow", Price: decimal.NewFromInt(1200), Status: WorkStatusOngoing},
	}
	for i := range works {
		if err := db.Create(&works[i]).Error; err != nil {
			t.Fatalf("create work: %v", err)
		}
	}

	payments := []Payment{
		{WorkID: works[0].ID, Amount: decimal.NewFromInt(300), PaymentDate: time.Now(), PaymentMethod: "PayPal"},
		{WorkID: works[0].ID, Amount: decimal.NewFromInt(500), PaymentDate: time.Now(), PaymentMethod: "PayPal"},
		{WorkID: works[1].ID, Amount: decimal.NewFromInt(400), PaymentDate: time.Now(), PaymentMethod: "Bank Transfer"},
	}
	for i := range payments {
		if err := db.Create(&payments[i]).Error; err != nil {
			t.Fatalf("create payment: %v", err)
		}
	}

	return client, project, works
}

func TestProjectDeleteCascadesToWorksAndPayments(t *testing.T) {
	db := newEntityTestDB(t, "project_cascade")
	client, project, _ := seedGraph(t, db)

	// A second project on the same client must survive the delete.
	other := Project{ClientID: client.ID, Title: "Mobile App"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create other project: %v", err)
	}
	otherWork := Work{ProjectID: other.ID, Description: "prototype", Price: decimal.NewFromInt(500), Status: WorkStatusOngoing}
	if err := db.Create(&otherWork).Error; err != nil {
		t.Fatalf("create other work: %v", err)
	}

	if err := db.Delete(&project).Error; err != nil {
		t.Fatalf("delete project: %v", err)
	}

	var workCount, paymentCount int64
	db.Model(&Work{}).Where("project_id = ?", project.ID).Count(&workCount)
	db.Model(&Payment{}).Count(&paymentCount)
	if workCount != 0 {
		t.Errorf("expected works to cascade, %d left", workCount)
	}
	if paymentCount != 0 {
		t.Errorf("expected payments to cascade, %d left", paymentCount)
	}

	var survivors int64
	db.Model(&Work{}).Where("project_id = ?", other.ID).Count(&survivors)
	if survivors != 1 {
		t.Errorf("sibling project lost its work, %d left", survivors)
	}
}

func TestClientDeleteCascadesWholeGraph(t *testing.T) {
	db := newEntityTestDB(t, "client_cascade")
	client, _, _ := seedGraph(t, db)

	if err := db.Delete(&client).Error; err != nil {
		t.Fatalf("delete client: %v", err)
	}

	var projects, works, payments int64
	db.Model(&Project{}).Count(&projects)
	db.Model(&Work{}).Count(&works)
	db.Model(&Payment{}).Count(&payments)
	if projects != 0 || works != 0 || payments != 0 {
		t.Errorf("expected full cascade, got projects=%d works=%d payments=%d", projects, works, payments)
	}
}

func TestWorkDeleteCascadesToPayments(t *testing.T) {
	db := newEntityTestDB(t, "work_cascade")
	_, _, works := seedGraph(t, db)

	if err := db.Delete(&works[0]).Error; err != nil {
		t.Fatalf("delete work: %v", err)
	}

	var orphaned int64
	db.Model(&Payment{}).Where("work_id = ?", works[0].ID).Count(&orphaned)
	if orphaned != 0 {
		t.Errorf("expected payments to cascade, %d left", orphaned)
	}

	var remaining int64
	db.Model(&Payment{}).Where("work_id = ?", works[1].ID).Count(&remaining)
	if remaining != 1 {
		t.Errorf("other work's payment lost, %d left", remaining)
	}
}
