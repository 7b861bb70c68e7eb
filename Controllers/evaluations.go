package Controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"TaskEval/Evaluator"
	"TaskEval/Models"
	"TaskEval/middleware"
)

// EvaluationController exposes the evaluation pipeline over HTTP
type EvaluationController struct {
	DB       *gorm.DB
	Pipeline *Evaluator.Pipeline
}

func NewEvaluationController(db *gorm.DB, pipeline *Evaluator.Pipeline) *EvaluationController {
	return &EvaluationController{DB: db, Pipeline: pipeline}
}

type EvaluateRequest struct {
	TaskID      uint   `json:"taskId" validate:"required"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

// Evaluate runs the pipeline for a task. Requires middleware.Verify.
func (e *EvaluationController) Evaluate(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Login required"})
	}
	log.Println("User authenticated:", user.Id)

	var input EvaluateRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	result, err := e.Pipeline.Evaluate(c.Context(), user, input.TaskID, input.Description, input.Code)
	if err != nil {
		log.Println("Evaluation Failed:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	// The submitter sees the report they just generated in full, even
	// though is_unlocked stays false. Later reads go through Gated().
	response := fiber.Map{"success": true, "data": result.Evaluation}
	if result.Warning != "" {
		response["warning"] = result.Warning
	}
	return c.JSON(response)
}

// GetEvaluation returns an evaluation with its task, gated while locked.
// The payment page uses it to show what is being unlocked.
func (e *EvaluationController) GetEvaluation(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid evaluation ID"})
	}

	var evaluation Models.Evaluation
	if result := e.DB.Where("id = ? AND user_id = ?", id, user.Id).First(&evaluation); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Evaluation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to retrieve evaluation"})
	}

	var task Models.Task
	if result := e.DB.First(&task, evaluation.TaskID); result.Error != nil {
		log.Printf("Evaluation %d references missing task %d", evaluation.ID, evaluation.TaskID)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"evaluation": evaluation.Gated(),
			"task":       task,
		},
	})
}
