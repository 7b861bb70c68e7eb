package CronJobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"TaskEval/Evaluator"
)

// UnlockReconciler periodically repairs paid-but-locked evaluations left
// behind when the unlock flip failed after the payment write.
type UnlockReconciler struct {
	cronScheduler  *cron.Cron
	gate           *Evaluator.UnlockGate
	runImmediately bool
	jobID          cron.EntryID
}

// NewUnlockReconciler creates a reconciler over the given unlock gate
func NewUnlockReconciler(gate *Evaluator.UnlockGate, runImmediately bool) *UnlockReconciler {
	return &UnlockReconciler{
		cronScheduler:  cron.New(cron.WithSeconds()),
		gate:           gate,
		runImmediately: runImmediately,
	}
}

// Start schedules the reconcile run every five minutes
func (r *UnlockReconciler) Start() error {
	var err error
	r.jobID, err = r.cronScheduler.AddFunc("0 */5 * * * *", func() {
		r.runReconcile()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	r.cronScheduler.Start()
	log.Println("Unlock reconciler started - runs every 5 minutes")

	if r.runImmediately {
		r.runReconcile()
	}
	return nil
}

// Stop terminates the reconciler
func (r *UnlockReconciler) Stop() {
	if r.cronScheduler != nil {
		r.cronScheduler.Stop()
		log.Println("Unlock reconciler stopped")
	}
}

func (r *UnlockReconciler) runReconcile() {
	repaired, err := r.gate.Reconcile()
	if err != nil {
		log.Printf("Error in unlock reconcile: %v\n", err)
		return
	}
	if repaired > 0 {
		log.Printf("Unlock reconcile repaired %d evaluation(s)\n", repaired)
	}
}
