package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Work status values (the project-status axis). Payment status is not stored:
// it is derived from the payment ledger, see PaymentStatus.
const (
	WorkStatusOngoing   = "ongoing"
	WorkStatusCompleted = "completed"
	WorkStatusCancelled = "cancelled"
)

const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

type Work struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProjectID   uint            `gorm:"not null;index" json:"project_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StartDate   *time.Time      `gorm:"type:date" json:"start_date,omitempty"`
	EndDate     *time.Time      `gorm:"type:date" json:"end_date,omitempty"`
	Status      string          `gorm:"type:enum('ongoing','completed','cancelled');default:'ongoing'" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Payments []Payment `gorm:"foreignKey:WorkID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

func (Work) TableName() string {
	return "works"
}

// ReceivedAmount sums the loaded payments. Zero when none exist.
func (w *Work) ReceivedAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range w.Payments {
		total = total.Add(w.Payments[i].Amount)
	}
	return total
}

// RemainingAmount is price minus received. Negative when overpaid; callers
// decide whether to clamp for display.
func (w *Work) RemainingAmount() decimal.Decimal {
	return w.Price.Sub(w.ReceivedAmount())
}

// PaymentPercentage returns received/price as a percentage. A zero-price work
// returns 0 rather than dividing by zero.
func (w *Work) PaymentPercentage() float64 {
	if w.Price.IsZero() {
		return 0
	}
	pct, _ := w.ReceivedAmount().Div(w.Price).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// PaymentStatus derives the payment state from the ledger: a work is paid once
// its payments cover the price. Zero-price works stay pending.
func (w *Work) PaymentStatus() string {
	if w.Price.IsPositive() && w.ReceivedAmount().GreaterThanOrEqual(w.Price) {
		return PaymentStatusPaid
	}
	return PaymentStatusPending
}

// ValidWorkStatus reports whether s is one of the accepted status values.
func ValidWorkStatus(s string) bool {
	switch s {
	case WorkStatusOngoing, WorkStatusCompleted, WorkStatusCancelled:
		return true
	}
	return false
}
