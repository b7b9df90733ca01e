package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethods is the accepted set of payment_method values.
var PaymentMethods = []string{"Western Union", "Bank Transfer", "PayPal", "Cash", "Upwork"}

type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	WorkID        uint            `gorm:"not null;index" json:"work_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"type:date;not null" json:"payment_date"`
	PaymentMethod string          `gorm:"type:varchar(32);not null" json:"payment_method"`
	Note          *string         `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	Work *Work `gorm:"foreignKey:WorkID" json:"work,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	for _, method := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
