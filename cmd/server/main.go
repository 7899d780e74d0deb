package main

import (
	"context"
	"log"

	"arunika.id/aksipoin/internal/config"
	"arunika.id/aksipoin/internal/model"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/internal/server"
	"arunika.id/aksipoin/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Settings{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := seed(db, cfg); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, notifications are poll-only: %v", err)
			redisClient = nil
		}
	}

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.AdminUser{},
		&model.Activity{},
		&model.Submission{},
		&model.Like{},
		&model.Comment{},
		&model.PointAward{},
		&model.Notification{},
		&model.Badge{},
		&model.UserBadge{},
	)
}

func seed(db *gorm.DB, cfg *config.Config) error {
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.SeedAdmins(ctx, cfg.AdminLineIDs); err != nil {
		return err
	}

	return seedBadges(db)
}

func seedBadges(db *gorm.DB) error {
	defaultBadges := []model.Badge{
		{
			Code:        model.BadgeCodeFirstApproval,
			Name:        "First Approval",
			Description: "Awarded when your first report is approved",
		},
	}

	for _, badge := range defaultBadges {
		var count int64
		if err := db.Model(&model.Badge{}).
			Where("code = ?", badge.Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&badge).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
