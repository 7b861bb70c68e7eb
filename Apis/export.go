package Apis

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"TaskEval/Models"
	"TaskEval/middleware"
)

// ExportEvaluations streams the caller's evaluations as an xlsx file.
// Locked reports are exported without the full report text.
func ExportEvaluations(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var evaluations []Models.Evaluation
	if err := Models.DB.Where("user_id = ?", user.Id).Order("created_at desc").Find(&evaluations).Error; err != nil {
		log.Println(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to retrieve evaluations"})
	}

	file := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Evaluation ID", "Task", "Score", "Status", "Unlocked", "Created At", "Full Report"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, header)
	}

	for row, evaluation := range evaluations {
		var task Models.Task
		title := ""
		status := ""
		if err := Models.DB.First(&task, evaluation.TaskID).Error; err == nil {
			title = task.Title
			status = task.Status
		}

		gated := evaluation.Gated()
		values := []interface{}{
			evaluation.ID,
			title,
			evaluation.Score,
			status,
			evaluation.IsUnlocked,
			evaluation.CreatedAt.Format("2006-01-02 15:04"),
			gated.FullReport,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			file.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		log.Println(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to build export"})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=evaluations_%d.xlsx", user.Id))
	return c.Send(buffer.Bytes())
}
