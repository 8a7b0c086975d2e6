package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/devfolio/backend/internal/config"
	"github.com/devfolio/backend/internal/handler"
	"github.com/devfolio/backend/internal/middleware"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/internal/service"
	"github.com/devfolio/backend/pkg/mailer"
	"github.com/devfolio/backend/pkg/storage"

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
	projectRepo := repository.NewProjectRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	certRepo := repository.NewCertificationRepository(db)
	tagRepo := repository.NewTagRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	// Optional collaborators. A missing credential disables the feature
	// instead of refusing to boot.
	var imageStorage storage.ImageStorage
	if cfg.CloudinaryCloudName != "" || os.Getenv("CLOUDINARY_URL") != "" {
		var err error
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("cloudinary not configured, avatar uploads disabled")
	}

	var searchSvc service.SearchService
	if cfg.MeiliSearchHost != "" && cfg.MeiliMasterKey != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = service.NewSearchService(meiliClient)
	} else {
		log.Println("meilisearch not configured, project search disabled")
	}

	var mail mailer.Mailer
	if cfg.ResendAPIKey != "" {
		var err error
		mail, err = mailer.NewResendMailer()
		if err != nil {
			log.Fatalf("failed to initialize mailer: %v", err)
		}
	} else {
		log.Println("resend not configured, contact form disabled")
	}

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	profileSvc := service.NewProfileService(userRepo, lookupRepo, imageStorage, searchSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)

	resumeSvc := service.NewResumeService(resumeRepo, certRepo)
	resumeHandler := handler.NewResumeHandler(resumeSvc)

	tagSvc := service.NewTagService(tagRepo)

	projectSvc := service.NewProjectService(projectRepo, userRepo, lookupRepo, tagSvc, searchSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)

	portfolioSvc := service.NewPortfolioService(userRepo, projectRepo, searchSvc)
	portfolioHandler := handler.NewPortfolioHandler(portfolioSvc)

	contactSvc := service.NewContactService(mail, redisClient, cfg.RateLimitContact)
	contactHandler := handler.NewContactHandler(contactSvc)

	lookupHandler := handler.NewLookupHandler(lookupRepo)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/lookups", lookupHandler.List)
	api.POST("/contact", contactHandler.Send)

	portfolio := api.Group("/portfolio")
	{
		portfolio.GET("/:username", portfolioHandler.GetProfile)
		portfolio.GET("/:username/projects/:id", portfolioHandler.GetProjectDetail)
		portfolio.GET("/:username/search", portfolioHandler.SearchProjects)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		profile := protected.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.DELETE("", profileHandler.DestroyAccount)

			profile.PUT("/skills/:kind", profileHandler.ReplaceSkillAssociations)
			profile.PUT("/skills", profileHandler.ReplaceNamedSkills)
			profile.PUT("/technologies", profileHandler.ReplaceOtherTechnologies)

			profile.POST("/educations", resumeHandler.CreateEducation)
			profile.PUT("/educations/:id", resumeHandler.UpdateEducation)
			profile.DELETE("/educations/:id", resumeHandler.DeleteEducation)

			profile.POST("/experiences", resumeHandler.CreateExperience)
			profile.PUT("/experiences/:id", resumeHandler.UpdateExperience)
			profile.DELETE("/experiences/:id", resumeHandler.DeleteExperience)

			profile.POST("/certifications", resumeHandler.CreateCertification)
			profile.GET("/certifications", resumeHandler.ListCertifications)
			profile.PUT("/certifications/:id", resumeHandler.UpdateCertification)
			profile.DELETE("/certifications/:id", resumeHandler.DeleteCertification)
			profile.POST("/certifications/:id/pin", resumeHandler.PinCertification)
			profile.DELETE("/certifications/:id/pin", resumeHandler.UnpinCertification)
			profile.PUT("/certifications/:id/pin-order", resumeHandler.SetCertificationPinOrder)
		}

		projects := protected.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.GetDetail)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
			projects.POST("/:id/pin", projectHandler.Pin)
			projects.DELETE("/:id/pin", projectHandler.Unpin)
			projects.PUT("/:id/pin-order", projectHandler.SetPinOrder)
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

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
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
