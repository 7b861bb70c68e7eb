package Models

import "gorm.io/gorm"

const (
	TaskStatusPending   = "pending"
	TaskStatusEvaluated = "evaluated"
)

type Task struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	Code        string `json:"code" gorm:"type:text"`
	Status      string `json:"status"`
}
