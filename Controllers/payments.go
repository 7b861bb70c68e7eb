package Controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"TaskEval/Evaluator"
	"TaskEval/Models"
	"TaskEval/email"
	"TaskEval/middleware"
)

// PaymentController handles the unlock flow
type PaymentController struct {
	DB   *gorm.DB
	Gate *Evaluator.UnlockGate
}

func NewPaymentController(db *gorm.DB, gate *Evaluator.UnlockGate) *PaymentController {
	return &PaymentController{DB: db, Gate: gate}
}

type CreatePaymentRequest struct {
	EvaluationID  uint   `json:"evaluationId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// CreatePayment records a simulated payment and unlocks the evaluation.
func (p *PaymentController) CreatePayment(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var input CreatePaymentRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	payment, err := p.Gate.Unlock(user, input.EvaluationID, input.PaymentMethod)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Evaluation not found"})
		}
		if errors.Is(err, Evaluator.ErrUnlockPending) {
			// The payment row exists; tell the user instead of hiding it.
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	if err := email.SendPaymentReceipt(user, payment); err != nil {
		log.Printf("Receipt email failed for payment %d: %v", payment.ID, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// GetPayments lists the caller's payments, newest first.
func (p *PaymentController) GetPayments(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var payments []Models.Payment
	if err := p.DB.Where("user_id = ?", user.Id).Order("created_at desc").Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to retrieve payments"})
	}

	return c.JSON(fiber.Map{"success": true, "data": payments})
}
