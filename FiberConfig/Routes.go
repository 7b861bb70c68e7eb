package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"

	"TaskEval/Apis"
	"TaskEval/Controllers"
	"TaskEval/Evaluator"
	"TaskEval/Groq"
	"TaskEval/Models"
	"TaskEval/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Collaborators are constructed once at startup and passed in, not
	// reached through globals.
	provider := Groq.NewClient(os.Getenv("GROQ_API_KEY"))
	pipeline := Evaluator.NewPipeline(db, provider)
	gate := Evaluator.NewUnlockGate(db)

	taskController := Controllers.NewTaskController(db, gate)
	evaluationController := Controllers.NewEvaluationController(db, pipeline)
	paymentController := Controllers.NewPaymentController(db, gate)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{})
	})

	api := app.Group("/api")

	// Auth routes
	api.Post("/Register", Controllers.RegisterUser)
	api.Post("/Login", Controllers.Login)
	api.Post("/Logout", Controllers.Logout)
	api.Get("/validate-token", Controllers.ValidateToken)
	api.Get("/User", middleware.Verify(), Controllers.User)

	// Task routes
	tasks := api.Group("/tasks", middleware.Verify())
	tasks.Post("/", taskController.CreateTask)
	tasks.Get("/", taskController.GetTasks)
	tasks.Get("/:id", taskController.GetTask)

	// Evaluation routes
	api.Post("/evaluate", middleware.Verify(), evaluationController.Evaluate)
	api.Get("/evaluations/:id", middleware.Verify(), evaluationController.GetEvaluation)

	// Payment routes
	payments := api.Group("/payments", middleware.Verify())
	payments.Post("/", paymentController.CreatePayment)
	payments.Get("/", paymentController.GetPayments)

	// Report export
	api.Get("/ExportEvaluations", middleware.Verify(), Apis.ExportEvaluations)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
