package main

import (
	_ "embed"
	"encoding/json"
	"flag"

	"go.uber.org/zap"

	"github.com/smartrecipe/backend/config"
	"github.com/smartrecipe/backend/internal/database"
	"github.com/smartrecipe/backend/internal/logging"
	"github.com/smartrecipe/backend/internal/model"
)

//go:embed recipes.json
var seedData []byte

func main() {
	force := flag.Bool("force", false, "Seed even when recipes already exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}
	logger := logging.Init(cfg.App.LogLevel, cfg.IsDevelopment())
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	var count int64
	if err := db.Model(&model.Recipe{}).Count(&count).Error; err != nil {
		logger.Fatal("failed to count recipes", zap.Error(err))
	}
	if count > 0 && !*force {
		logger.Info("recipes already present, skipping seed", zap.Int64("count", count))
		return
	}

	var recipes []model.Recipe
	if err := json.Unmarshal(seedData, &recipes); err != nil {
		logger.Fatal("failed to parse seed data", zap.Error(err))
	}

	for i := range recipes {
		if err := db.Create(&recipes[i]).Error; err != nil {
			logger.Fatal("failed to insert recipe",
				zap.String("title", recipes[i].Title), zap.Error(err))
		}
	}

	logger.Info("seed complete", zap.Int("recipes", len(recipes)))
}
