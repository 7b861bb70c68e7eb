package Evaluator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"TaskEval/Models"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:evaluator_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	return db
}

func newTestTask(t *testing.T, db *gorm.DB, user Models.User) Models.Task {
	t.Helper()
	task := Models.Task{
		UserID:      user.Id,
		Title:       "Binary Search Implementation",
		Description: "Implement binary search over a sorted slice",
		Code:        "func search(xs []int, target int) int { return -1 }",
		Status:      Models.TaskStatusPending,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func newTestUser(t *testing.T, db *gorm.DB) Models.User {
	t.Helper()
	user := Models.User{Name: "Dev", Email: fmt.Sprintf("dev%d@example.com", atomic.AddInt64(&testDBCounter, 1))}
	require.NoError(t, db.Create(&user).Error)
	return user
}

type fakeProvider struct {
	response     string
	err          error
	unconfigured bool
	calls        int
}

func (f *fakeProvider) Configured() bool { return !f.unconfigured }

func (f *fakeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestEvaluateStructuredResponse(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	task := newTestTask(t, db, user)
	provider := &fakeProvider{
		response: `{"score":85,"strengths":["a","b"],"improvements":["c"],"fullReport":"solid work"}`,
	}

	pipeline := NewPipeline(db, provider)
	result, err := pipeline.Evaluate(context.Background(), user, task.ID, task.Description, task.Code)

	require.NoError(t, err)
	require.NotNil(t, result.Evaluation)
	assert.False(t, result.Fallback)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 85, result.Evaluation.Score)
	assert.False(t, result.Evaluation.IsUnlocked)

	var stored Models.Evaluation
	require.NoError(t, db.Where("task_id = ?", task.ID).First(&stored).Error)
	assert.Equal(t, user.Id, stored.UserID)
	assert.Equal(t, []string{"a", "b"}, stored.Strengths)
	assert.Equal(t, "solid work", stored.FullReport)
	assert.False(t, stored.IsUnlocked)

	var updated Models.Task
	require.NoError(t, db.First(&updated, task.ID).Error)
	assert.Equal(t, Models.TaskStatusEvaluated, updated.Status)
}

func TestEvaluateFallbackOnUnparseableResponse(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	task := newTestTask(t, db, user)
	provider := &fakeProvider{response: "I am unable to produce JSON today."}

	pipeline := NewPipeline(db, provider)
	result, err := pipeline.Evaluate(context.Background(), user, task.ID, task.Description, task.Code)

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, 75, result.Evaluation.Score)
	assert.Equal(t, FallbackPreamble+"I am unable to produce JSON today.", result.Evaluation.FullReport)
	assert.False(t, result.Evaluation.IsUnlocked)

	var count int64
	db.Model(&Models.Evaluation{}).Where("task_id = ?", task.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEvaluateProviderNotConfigured(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	task := newTestTask(t, db, user)
	provider := &fakeProvider{unconfigured: true}

	pipeline := NewPipeline(db, provider)
	result, err := pipeline.Evaluate(context.Background(), user, task.ID, task.Description, task.Code)

	require.ErrorIs(t, err, ErrProviderNotConfigured)
	assert.Nil(t, result)
	// No network call and no persistence.
	assert.Zero(t, provider.calls)

	var count int64
	db.Model(&Models.Evaluation{}).Count(&count)
	assert.Zero(t, count)

	var unchanged Models.Task
	require.NoError(t, db.First(&unchanged, task.ID).Error)
	assert.Equal(t, Models.TaskStatusPending, unchanged.Status)
}

func TestEvaluateProviderFailure(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	task := newTestTask(t, db, user)
	provider := &fakeProvider{err: errors.New("connection refused")}

	pipeline := NewPipeline(db, provider)
	result, err := pipeline.Evaluate(context.Background(), user, task.ID, task.Description, task.Code)

	assert.Nil(t, result)
	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Contains(t, err.Error(), "connection refused")

	var count int64
	db.Model(&Models.Evaluation{}).Count(&count)
	assert.Zero(t, count)
}

func TestEvaluatePartialSuccessOnMissingTask(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	provider := &fakeProvider{
		response: `{"score":60,"strengths":["a"],"improvements":["b"],"fullReport":"ok"}`,
	}

	pipeline := NewPipeline(db, provider)
	result, err := pipeline.Evaluate(context.Background(), user, 9999, "desc", "code")

	// The evaluation is stored; the status transition is best-effort and
	// its miss degrades to a warning instead of failing the request.
	require.NoError(t, err)
	require.NotNil(t, result.Evaluation)
	assert.NotEmpty(t, result.Warning)

	var count int64
	db.Model(&Models.Evaluation{}).Where("task_id = ?", 9999).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEvaluateAcceptsDuplicateEvaluations(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	task := newTestTask(t, db, user)
	provider := &fakeProvider{
		response: `{"score":85,"strengths":["a"],"improvements":["b"],"fullReport":"ok"}`,
	}

	pipeline := NewPipeline(db, provider)
	_, err := pipeline.Evaluate(context.Background(), user, task.ID, task.Description, task.Code)
	require.NoError(t, err)
	_, err = pipeline.Evaluate(context.Background(), user, task.ID, task.Description, task.Code)
	require.NoError(t, err)

	// No uniqueness constraint on task_id; both rows land.
	var count int64
	db.Model(&Models.Evaluation{}).Where("task_id = ?", task.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}
