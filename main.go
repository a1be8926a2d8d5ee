package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"taskit-backend/config"
	"taskit-backend/controllers"
	db "taskit-backend/database"
	"taskit-backend/imagehost"
	"taskit-backend/models"
	"taskit-backend/payment"
	"taskit-backend/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	db.InitDB(cfg.MongoURI, cfg.DBName)
	defer db.DisconnectDB()

	imagehost.Init(cfg.GCSBucket, cfg.GCSCredentials)
	defer imagehost.Close()

	controllers.InitAuth(cfg.AuthSecret, cfg.TokenTTL)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	orderController := controllers.NewOrderController(gateway)

	// Sweep payment intents that never progressed past "created".
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@hourly", func() {
		count, err := models.DeleteStaleIntents(24 * time.Hour)
		if err != nil {
			log.Println("stale intent sweep failed:", err)
			return
		}
		if count > 0 {
			log.Printf("Swept %d stale payment intents", count)
		}
	}); err != nil {
		log.Fatal("Failed to schedule intent sweeper:", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	r := gin.Default()
	routes.SetupRoutes(r, cfg, orderController)

	log.Println("Starting server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
