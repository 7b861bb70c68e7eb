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

// TaskController handles task submission and retrieval
type TaskController struct {
	DB   *gorm.DB
	Gate *Evaluator.UnlockGate
}

func NewTaskController(db *gorm.DB, gate *Evaluator.UnlockGate) *TaskController {
	return &TaskController{DB: db, Gate: gate}
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Code        string `json:"code" validate:"required"`
}

// CreateTask stores a new task with status pending.
func (t *TaskController) CreateTask(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var input CreateTaskRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	task := Models.Task{
		UserID:      user.Id,
		Title:       input.Title,
		Description: input.Description,
		Code:        input.Code,
		Status:      Models.TaskStatusPending,
	}
	if err := t.DB.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create task"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": task})
}

// GetTasks lists the caller's tasks, newest first.
func (t *TaskController) GetTasks(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var tasks []Models.Task
	if err := t.DB.Where("user_id = ?", user.Id).Order("created_at desc").Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to retrieve tasks"})
	}

	return c.JSON(fiber.Map{"success": true, "data": tasks})
}

// GetTask returns a task with its evaluation, full report gated until
// unlocked. A paid-but-locked evaluation is repaired on read.
func (t *TaskController) GetTask(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid task ID"})
	}

	var task Models.Task
	if result := t.DB.Where("id = ? AND user_id = ?", id, user.Id).First(&task); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Task not found"})
	}

	data := fiber.Map{"task": task}

	var evaluation Models.Evaluation
	result := t.DB.Where("task_id = ?", task.ID).First(&evaluation)
	switch {
	case result.Error == nil:
		if !evaluation.IsUnlocked {
			repaired, err := t.Gate.RepairOne(evaluation.ID)
			if err != nil {
				log.Printf("Unlock repair failed for evaluation %d: %v", evaluation.ID, err)
			} else if repaired {
				evaluation.IsUnlocked = true
			}
		}
		data["evaluation"] = evaluation.Gated()
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		// Task not evaluated yet.
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to retrieve evaluation"})
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}
