package Evaluator

import (
	"log"

	"gorm.io/gorm"

	"TaskEval/Models"
)

// UnlockGate turns a payment into report visibility. The two writes are
// independent store operations, payment first; a flip failure leaves a
// paid-but-locked evaluation that Reconcile repairs.
type UnlockGate struct {
	DB *gorm.DB
}

func NewUnlockGate(db *gorm.DB) *UnlockGate {
	return &UnlockGate{DB: db}
}

// Unlock records a payment for the evaluation and sets is_unlocked. Only
// the evaluation's owner can unlock it. The payment instrument is not
// validated (simulated payment); any method is accepted. Repeat calls keep
// the flag true and add another payment row.
func (g *UnlockGate) Unlock(user Models.User, evaluationID uint, method string) (*Models.Payment, error) {
	var evaluation Models.Evaluation
	if err := g.DB.Where("id = ? AND user_id = ?", evaluationID, user.Id).First(&evaluation).Error; err != nil {
		return nil, err
	}

	payment := Models.Payment{
		UserID:        user.Id,
		EvaluationID:  evaluation.ID,
		Amount:        Models.UnlockPrice,
		Status:        Models.PaymentStatusCompleted,
		PaymentMethod: method,
	}
	if err := g.DB.Create(&payment).Error; err != nil {
		return nil, &StorageError{Err: err}
	}

	update := g.DB.Model(&Models.Evaluation{}).
		Where("id = ?", evaluation.ID).
		Update("is_unlocked", true)
	if update.Error != nil {
		log.Printf("Unlock flip failed for evaluation %d: %v", evaluation.ID, update.Error)
		return &payment, ErrUnlockPending
	}

	return &payment, nil
}

// Reconcile flips any evaluation that has a completed payment but is still
// locked. Flag-only and idempotent; it never creates payments.
func (g *UnlockGate) Reconcile() (int64, error) {
	paid := g.DB.Model(&Models.Payment{}).
		Select("evaluation_id").
		Where("status = ?", Models.PaymentStatusCompleted)

	update := g.DB.Model(&Models.Evaluation{}).
		Where("is_unlocked = ? AND id IN (?)", false, paid).
		Update("is_unlocked", true)
	return update.RowsAffected, update.Error
}

// RepairOne applies the reconcile check to a single evaluation, used on
// the read path so a paid-but-locked report recovers on next view.
func (g *UnlockGate) RepairOne(evaluationID uint) (bool, error) {
	var count int64
	err := g.DB.Model(&Models.Payment{}).
		Where("evaluation_id = ? AND status = ?", evaluationID, Models.PaymentStatusCompleted).
		Count(&count).Error
	if err != nil || count == 0 {
		return false, err
	}

	update := g.DB.Model(&Models.Evaluation{}).
		Where("id = ? AND is_unlocked = ?", evaluationID, false).
		Update("is_unlocked", true)
	return update.RowsAffected > 0, update.Error
}
