package gorm

import "time"

type Dataset struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid"`
	Name         string    `gorm:"column:name"`
	Source       string    `gorm:"column:source"`
	RowsAccepted int       `gorm:"column:rows_accepted"`
	RowsRejected int       `gorm:"column:rows_rejected"`
	Seed         *int64    `gorm:"column:seed"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Dataset) TableName() string {
	return "datasets"
}
