package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pouriamv/art-market-api/internal/config"
	"github.com/pouriamv/art-market-api/internal/handler"
	"github.com/pouriamv/art-market-api/internal/middleware"
	"github.com/pouriamv/art-market-api/internal/repository"
	"github.com/pouriamv/art-market-api/internal/service"
	"github.com/pouriamv/art-market-api/pkg/mailer"
	"github.com/pouriamv/art-market-api/pkg/storage"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	artworkRepo := repository.NewArtworkRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	upvoteRepo := repository.NewUpvoteRepository(db)

	var imageStorage storage.ImageStorage
	if os.Getenv("CLOUDINARY_URL") != "" {
		var err error
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("cloudinary not configured, artwork image uploads disabled")
	}

	searchSvc := service.NewSearchService(cfg.MeiliSearchHost, cfg.MeiliMasterKey)

	authSvc := service.NewAuthService(userRepo, tokenRepo, mailer.NewSendgridMailer(),
		cfg.JWTSecret, cfg.JWTTTL, cfg.ResetTokenTTL)
	authHandler := handler.NewAuthHandler(authSvc)

	artworkSvc := service.NewArtworkService(artworkRepo, taxonomyRepo, upvoteRepo, searchSvc, imageStorage)
	artistHandler := handler.NewArtistHandler(artworkSvc)

	engagementSvc := service.NewEngagementService(upvoteRepo, commentRepo, artworkRepo)
	storeHandler := handler.NewStoreHandler(artworkSvc, engagementSvc)

	router := gin.New()
	setupCORS(router, cfg)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, tokenRepo, cfg.JWTSecret)
	authLimit := middleware.RateLimit(redisClient, "auth", cfg.RateLimitAuth)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authLimit, authHandler.Register)
		auth.POST("/login", authLimit, authHandler.Login)
		auth.POST("/forgot-password", authLimit, authHandler.ForgotPassword)
		auth.PUT("/reset-password", authHandler.ResetPassword)

		auth.GET("/profile", authMiddleware.RequireAuth(), authHandler.Profile)
		auth.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
	}

	artist := router.Group("/artist")
	artist.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole("artist"))
	{
		artist.GET("/dashboard", artistHandler.Dashboard)
		artist.POST("/artwork", artistHandler.CreateArtwork)
		artist.GET("/artwork/:id", artistHandler.GetArtwork)
		artist.PUT("/artwork/:id", artistHandler.UpdateArtwork)
		artist.DELETE("/artwork/:id", artistHandler.DeleteArtwork)
		artist.POST("/artwork/:id/image", artistHandler.UploadArtworkImage)
		artist.GET("/tags", artistHandler.ListTags)
		artist.GET("/categories", artistHandler.ListCategories)
		artist.GET("/currencies", artistHandler.ListCurrencies)
	}

	store := router.Group("/store")
	{
		// Public reads: identity is optional and only used when present.
		store.GET("/artworks", authMiddleware.OptionalAuth(), storeHandler.ListArtworks)
		store.GET("/artworks/:id", authMiddleware.OptionalAuth(), storeHandler.GetArtwork)
		store.GET("/artworks/:id/comments", authMiddleware.OptionalAuth(), storeHandler.ListComments)
		store.GET("/comments/:id", authMiddleware.OptionalAuth(), storeHandler.GetComment)
		store.GET("/upvote/:target_kind/:target_id", authMiddleware.OptionalAuth(), storeHandler.CountUpvotes)

		// Authenticated writes.
		store.POST("/upvote/:target_kind/:target_id", authMiddleware.RequireAuth(), storeHandler.Upvote)
		store.DELETE("/upvote/:target_kind/:target_id", authMiddleware.RequireAuth(), storeHandler.RemoveUpvote)
		store.POST("/artworks/:id/comments", authMiddleware.RequireAuth(), storeHandler.AddComment)
		store.POST("/comments/:id", authMiddleware.RequireAuth(), storeHandler.AddReply)
		store.DELETE("/comments/:id", authMiddleware.RequireAuth(), storeHandler.DeleteComment)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
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
