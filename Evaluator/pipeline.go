package Evaluator

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"TaskEval/Models"
)

// CompletionProvider is the single-turn text completion surface the
// pipeline consumes. Groq.Client implements it.
type CompletionProvider interface {
	Configured() bool
	Complete(ctx context.Context, system, user string) (string, error)
}

// Pipeline runs the evaluate workflow: provider check, prompt, completion,
// lenient extraction, persistence, task status transition.
type Pipeline struct {
	DB       *gorm.DB
	Provider CompletionProvider
	Timeout  time.Duration
}

func NewPipeline(db *gorm.DB, provider CompletionProvider) *Pipeline {
	return &Pipeline{
		DB:       db,
		Provider: provider,
		Timeout:  60 * time.Second,
	}
}

// Result is the pipeline outcome. Warning is set on partial success, when
// the evaluation was stored but the task status transition failed.
type Result struct {
	Evaluation *Models.Evaluation
	Fallback   bool
	Warning    string
}

// Evaluate scores a task and stores the evaluation. The caller must
// already be authenticated. The returned evaluation always starts locked.
func (p *Pipeline) Evaluate(ctx context.Context, user Models.User, taskID uint, description, code string) (*Result, error) {
	log.Println("Evaluation started for task:", taskID)

	if p.Provider == nil || !p.Provider.Configured() {
		return nil, ErrProviderNotConfigured
	}

	system, prompt := BuildPrompt(description, code)

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	log.Println("Calling Groq API...")
	responseText, err := p.Provider.Complete(ctx, system, prompt)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	extraction := ExtractEvaluation(responseText)
	if extraction.Fallback {
		log.Println("Structured extraction failed, storing fallback evaluation")
	}

	evaluation := Models.Evaluation{
		TaskID:       taskID,
		UserID:       user.Id,
		Score:        extraction.Score,
		Strengths:    extraction.Strengths,
		Improvements: extraction.Improvements,
		FullReport:   extraction.FullReport,
		IsUnlocked:   false,
	}

	log.Println("Saving evaluation...")
	if err := p.DB.Create(&evaluation).Error; err != nil {
		return nil, &StorageError{Err: err}
	}

	result := &Result{Evaluation: &evaluation, Fallback: extraction.Fallback}

	// Best-effort transition; a miss leaves the task pending with an
	// evaluation attached, which reads repair on the client side.
	update := p.DB.Model(&Models.Task{}).
		Where("id = ?", taskID).
		Update("status", Models.TaskStatusEvaluated)
	if update.Error != nil {
		result.Warning = fmt.Sprintf("task status update failed: %v", update.Error)
	} else if update.RowsAffected == 0 {
		result.Warning = fmt.Sprintf("task status update matched no task with id %d", taskID)
	}
	if result.Warning != "" {
		log.Println("Warning:", result.Warning)
	}

	return result, nil
}
