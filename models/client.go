package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(191);not null" json:"name"`
	Contact   string    `gorm:"type:varchar(191)" json:"contact"`
	Source    string    `gorm:"type:varchar(64)" json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Projects []Project `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}

// ProjectCount returns the number of loaded projects.
func (c *Client) ProjectCount() int {
	return len(c.Projects)
}

// WorkCount returns the number of works across all loaded projects.
func (c *Client) WorkCount() int {
	count := 0
	for i := range c.Projects {
		count += c.Projects[i].WorkCount()
	}
	return count
}

// TotalRevenue sums every payment recorded against the client's works.
func (c *Client) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Projects {
		total = total.Add(c.Projects[i].TotalRevenue())
	}
	return total
}

// PendingAmount sums the positive remaining amounts of the client's works.
func (c *Client) PendingAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Projects {
		total = total.Add(c.Projects[i].PendingAmount())
	}
	return total
}
