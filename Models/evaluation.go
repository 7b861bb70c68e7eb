package Models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Evaluation struct {
	gorm.Model
	TaskID uint `json:"task_id" gorm:"index"`
	UserID uint `json:"user_id" gorm:"index"`
	Score  int  `json:"score"`

	Strengths        []string       `json:"strengths" gorm:"-"`
	Improvements     []string       `json:"improvements" gorm:"-"`
	JSONStrengths    datatypes.JSON `json:"-"`
	JSONImprovements datatypes.JSON `json:"-"`

	FullReport string `json:"full_report" gorm:"type:text"`
	IsUnlocked bool   `json:"is_unlocked"`
}

// BeforeSave serializes the slice fields into their JSON columns.
func (e *Evaluation) BeforeSave(tx *gorm.DB) error {
	strengths, err := json.Marshal(e.Strengths)
	if err != nil {
		return err
	}
	improvements, err := json.Marshal(e.Improvements)
	if err != nil {
		return err
	}
	e.JSONStrengths = strengths
	e.JSONImprovements = improvements
	return nil
}

// AfterFind restores the slice fields from their JSON columns.
func (e *Evaluation) AfterFind(tx *gorm.DB) error {
	if len(e.JSONStrengths) > 0 {
		if err := json.Unmarshal(e.JSONStrengths, &e.Strengths); err != nil {
			return err
		}
	}
	if len(e.JSONImprovements) > 0 {
		if err := json.Unmarshal(e.JSONImprovements, &e.Improvements); err != nil {
			return err
		}
	}
	return nil
}

// Gated returns a copy safe to hand to the client: the full report stays
// hidden until a payment has unlocked the evaluation.
func (e Evaluation) Gated() Evaluation {
	if !e.IsUnlocked {
		e.FullReport = ""
	}
	return e
}
