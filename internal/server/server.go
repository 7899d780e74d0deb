package server

import (
	"log"
	"strings"
	"time"

	"arunika.id/aksipoin/internal/config"
	"arunika.id/aksipoin/internal/handler"
	"arunika.id/aksipoin/internal/repository"
	"arunika.id/aksipoin/internal/service"
	"arunika.id/aksipoin/pkg/lineauth"
	"arunika.id/aksipoin/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryUploadFolder)
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	var searchSvc service.SearchService
	if cfg.MeiliHost != "" {
		meiliHost := cfg.MeiliHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliAPIKey))
		searchSvc = service.NewMeiliSearchService(meiliClient, userRepo)
	}

	verifier := lineauth.NewVerifier(cfg.LineChannelSecret)

	notificationSvc := service.NewNotificationService(notifRepo, redisClient)
	similarity := service.NewSimilarityChecker(submissionRepo)
	gate := service.NewAdminGate(userRepo)

	userSvc := service.NewUserService(userRepo, badgeRepo, verifier)
	activitySvc := service.NewActivityService(activityRepo)
	submissionSvc := service.NewSubmissionService(userRepo, activityRepo, submissionRepo, engagementRepo, similarity)
	engagementSvc := service.NewEngagementService(db, userRepo, submissionRepo, engagementRepo, notifRepo, notificationSvc)
	moderationSvc := service.NewModerationService(db, userRepo, activityRepo, submissionRepo, notifRepo, badgeRepo, notificationSvc, searchSvc, imageStorage)
	leaderboardSvc := service.NewLeaderboardService(userRepo)
	badgeSvc := service.NewBadgeService(badgeRepo, userRepo)
	statSvc := service.NewStatService(userRepo, activityRepo, submissionRepo)

	userHandler := handler.NewUserHandler(userSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc, engagementSvc)
	adminHandler := handler.NewAdminHandler(gate, moderationSvc, activitySvc, badgeSvc, statSvc)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	badgeHandler := handler.NewBadgeHandler(badgeSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, userRepo, redisClient)
	uploadHandler := handler.NewUploadHandler(imageStorage)
	searchHandler := handler.NewSearchHandler(searchSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	api := router.Group("/api")
	{
		api.POST("/users/register", userHandler.Register)
		api.GET("/users/:lineUserId", userHandler.Profile)

		api.GET("/activities", activityHandler.List)
		api.GET("/activities/:id", activityHandler.Get)

		api.POST("/submissions", submissionHandler.Create)
		api.GET("/submissions", submissionHandler.ListForActivity)
		api.POST("/submissions/like", submissionHandler.ToggleLike)
		api.POST("/submissions/comment", submissionHandler.AddComment)

		api.GET("/leaderboard", leaderboardHandler.Get)
		api.GET("/badges", badgeHandler.List)

		api.GET("/notifications", notificationHandler.List)
		api.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		api.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		api.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		api.GET("/notifications/ws", notificationHandler.Stream)

		api.POST("/upload", uploadHandler.Upload)
		api.GET("/search", searchHandler.Search)

		admin := api.Group("/admin")
		{
			admin.POST("/activities", adminHandler.CreateActivity)
			admin.PUT("/activities/:id", adminHandler.UpdateActivity)
			admin.DELETE("/activities/:id", adminHandler.DeleteActivity)

			admin.GET("/submissions", adminHandler.ListSubmissions)
			admin.POST("/submissions/approve", adminHandler.ApproveSubmission)
			admin.POST("/submissions/reject", adminHandler.RejectSubmission)
			admin.DELETE("/submissions/:id", adminHandler.DeleteSubmission)

			admin.POST("/badges", adminHandler.CreateBadge)
			admin.POST("/badges/award", adminHandler.AwardBadge)

			admin.GET("/stats", adminHandler.Stats)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
