package Models

import "gorm.io/gorm"

// UnlockPrice is the fixed price of unlocking a full report.
const UnlockPrice = 99.00

const PaymentStatusCompleted = "completed"

type Payment struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"index"`
	EvaluationID  uint    `json:"evaluation_id" gorm:"index"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
}
