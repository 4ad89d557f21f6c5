package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Octopus30/health-analysis/internal/awsconf"
	"github.com/Octopus30/health-analysis/internal/db"
	"github.com/Octopus30/health-analysis/internal/llm"
	"github.com/Octopus30/health-analysis/internal/ocr"
	"github.com/Octopus30/health-analysis/internal/report"
	"github.com/Octopus30/health-analysis/internal/router"
	"github.com/Octopus30/health-analysis/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"S3_BUCKET_NAME",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	ctx := context.Background()

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── AWS CLIENTS ─────────────────────────
	awsCfg, err := awsconf.Load(ctx)
	if err != nil {
		log.Fatal("❌ AWS config failed:", err)
	}

	s3Client := storage.NewS3Client(awsCfg)
	ocrService := ocr.NewService(ocr.NewTextractClient(awsCfg))
	llmService := llm.NewService(llm.NewBedrockClient(awsCfg))

	// ───────────────────────── REPORT PIPELINE ─────────────────────────
	reportRepo := report.NewPostgresRepository(pgDB)
	reportService := report.NewService(reportRepo, s3Client, ocrService, llmService)
	reportHandler := report.NewHandler(reportService)

	// ───────────────────────── START ─────────────────────────
	r := router.NewRouter(reportHandler)

	log.Println("🚀 API running at http://localhost:8000")
	if err := r.Run(":8000"); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
