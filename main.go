package main

import (
	"log"
	"time"

	"volunect/config"
	"volunect/database"
	"volunect/lifecycle"
	"volunect/renderer"
	applicationRoutes "volunect/routers/applicationRoutes"
	attendanceRoutes "volunect/routers/attendanceRoutes"
	certificateRoutes "volunect/routers/certificateRoutes"
	taskRoutes "volunect/routers/taskRoutes"
	"volunect/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	pdfRenderer := renderer.NewHTTPRenderer(
		config.AppConfig.RenderServiceURL,
		time.Duration(config.AppConfig.RenderTimeoutSeconds)*time.Second,
	)
	docStore := utils.NewFileDocumentStore(config.AppConfig.CertificateDir)
	lifecycle.Init(database.Database.Db, pdfRenderer, docStore)

	// Opt-in storage-level status sweep; engine reads reconcile on the fly
	if spec := config.AppConfig.StatusSweepCron; spec != "" {
		if _, err := utils.StartStatusSweep(spec, lifecycle.Default); err != nil {
			log.Fatalf("Failed to start status sweep: %v", err)
		}
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve rendered certificate documents
	app.Static("/certificates", config.AppConfig.CertificateDir)

	taskRoutes.SetupTaskRoutes(app)
	applicationRoutes.SetupApplicationRoutes(app)
	attendanceRoutes.SetupAttendanceRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
