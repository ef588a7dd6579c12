package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/config"
	"github.com/cafesys/cafe-backend/models"
	"github.com/cafesys/cafe-backend/router"
	"github.com/cafesys/cafe-backend/utils"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to connect to database: %v", err)
	}

	autoMigrate(db)

	r := router.SetupRouter(db)
	utils.InfoLogger.Printf("listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.LineItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to migrate schema: %v", err)
	}
	utils.InfoLogger.Println("schema migration completed")
}
