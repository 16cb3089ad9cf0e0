package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"caresync/hospital-api/internal/config"
	"caresync/hospital-api/internal/handlers"
	"caresync/hospital-api/internal/middleware"
	"caresync/hospital-api/internal/repositories"
	"caresync/hospital-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	doctorRepo := repositories.NewDoctorRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	pdfRepo := repositories.NewPdfRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfValidator := services.NewPdfValidatorService()

	supabaseClient, err := config.NewSupabaseClient(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Supabase: %v", err)
	}
	cloudStorage := services.NewSupabaseStorage(supabaseClient, cfg.Supabase.Bucket, cfg.Supabase.Folder)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	doctorHandler := handlers.NewDoctorHandler(doctorRepo, cfg.JWT.Secret)
	patientHandler := handlers.NewPatientHandler(patientRepo, cfg.JWT.Secret)
	userHandler := handlers.NewUserHandler(doctorRepo, patientRepo)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentRepo, patientRepo)
	pdfHandler := handlers.NewPdfHandler(pdfRepo, storageService, pdfValidator, cloudStorage)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hospital Management API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	protected := middleware.Protected(cfg.JWT.Secret)

	// Identity routes
	doctor := app.Group("/doctor")
	doctor.Post("/register", doctorHandler.HandleRegister)
	doctor.Post("/login", doctorHandler.HandleLogin)

	patient := app.Group("/patient")
	patient.Post("/register", patientHandler.HandleRegister)
	patient.Post("/login", patientHandler.HandleLogin)

	user := app.Group("/user", protected)
	user.Get("/details", userHandler.HandleDetails)

	// Assignment routes
	assignment := app.Group("/doctoPatient", protected)
	assignment.Post("/assignPatient", assignmentHandler.HandleAssign)
	assignment.Delete("/removePatient", assignmentHandler.HandleUnassign)
	assignment.Get("/unassignedPatients/:page", assignmentHandler.HandleUnassignedPatients)
	assignment.Get("/searchUnassignedPatients", assignmentHandler.HandleSearchUnassigned)
	assignment.Get("/assignedPatients/:page", assignmentHandler.HandleAssignedPatients)
	assignment.Get("/searchassignedPatients", assignmentHandler.HandleSearchAssigned)
	assignment.Get("/assignedDoctor", assignmentHandler.HandleAssignedDoctor)

	// Pdf routes
	pdf := app.Group("/pdf", protected)
	pdf.Post("/upload", pdfHandler.HandleUpload)
	pdf.Get("/upload/:page", pdfHandler.HandleList)
	pdf.Get("/search", pdfHandler.HandleSearch)
	pdf.Get("/page", pdfHandler.HandleTotalPages)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
