package main

import (
	"log"

	"github.com/joho/godotenv"

	"TaskEval/CronJobs"
	"TaskEval/Evaluator"
	"TaskEval/FiberConfig"
	"TaskEval/Models"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment")
	}

	Models.Connect()

	reconciler := CronJobs.NewUnlockReconciler(Evaluator.NewUnlockGate(Models.DB), true)
	if err := reconciler.Start(); err != nil {
		log.Printf("Failed to start unlock reconciler: %v", err)
	}
	defer reconciler.Stop()

	FiberConfig.FiberConfig()
}
