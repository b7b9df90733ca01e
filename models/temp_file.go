package models

import "time"

// TempFile is a staged upload waiting to be committed to its permanent path.
// The folder column is the opaque token handed back to the uploader.
type TempFile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Folder    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"folder"`
	Path      string    `gorm:"type:varchar(255);not null" json:"path"`
	Type      string    `gorm:"type:varchar(128)" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func (TempFile) TableName() string {
	return "temp_files"
}
