package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Project struct {
	ID          uint                         `gorm:"primaryKey" json:"id"`
	ClientID    uint                         `gorm:"not null;index" json:"client_id"`
	Title       string                       `gorm:"type:varchar(191);not null" json:"title"`
	Description string                       `gorm:"type:text" json:"description"`
	TechStack   datatypes.JSONSlice[string]  `json:"tech_stack"`
	Logo        *string                      `gorm:"type:varchar(255)" json:"logo,omitempty"`
	GithubRepo  *string                      `gorm:"type:varchar(255)" json:"github_repo,omitempty"`
	LiveLink    *string                      `gorm:"type:varchar(255)" json:"live_link,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`

	// Relations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Works  []Work  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"works,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// WorkCount returns the number of loaded works.
func (p *Project) WorkCount() int {
	return len(p.Works)
}

// TotalRevenue sums every payment recorded against the project's works.
// Revenue is ledger-based: partial payments count as received.
func (p *Project) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Works {
		total = total.Add(p.Works[i].ReceivedAmount())
	}
	return total
}

// PendingAmount sums the positive remaining amounts of the project's works.
// Overpaid works do not offset underpaid ones.
func (p *Project) PendingAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Works {
		if remaining := p.Works[i].RemainingAmount(); remaining.IsPositive() {
			total = total.Add(remaining)
		}
	}
	return total
}
