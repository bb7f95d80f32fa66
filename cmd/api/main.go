package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"crmboard/internal/database"
	"crmboard/internal/middleware"
	"crmboard/internal/modules/auth"
	"crmboard/internal/modules/board"
	"crmboard/internal/modules/campaign"
	"crmboard/internal/modules/chat"
	"crmboard/internal/modules/field"
	"crmboard/internal/modules/lead"
	"crmboard/internal/modules/pipeline"
	"crmboard/internal/modules/prefs"
	"crmboard/internal/modules/realtime"
	"crmboard/internal/modules/token"
	jwtsvc "crmboard/internal/pkg/jwt"
	"crmboard/internal/pkg/webhook"
	"crmboard/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}
	sqlxDB, err := database.Sqlx(db)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	pipelineRepo := repository.NewPipelineRepository(db)
	stageRepo := repository.NewStageRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	fieldRepo := repository.NewCustomFieldRepository(db)
	tokenRepo := repository.NewApiTokenRepository(db)
	chatRepo := repository.NewChatRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	statsRepo := repository.NewStatsRepository(sqlxDB)

	j := jwtsvc.New(secret, 24*time.Hour)
	hub := realtime.NewHub()
	defer hub.Close()

	hooks := webhook.NewClient(os.Getenv("CAMPAIGN_WEBHOOK_URL"), os.Getenv("UPLOAD_WEBHOOK_URL"))

	boardService := board.NewService(stageRepo, leadRepo, statsRepo, hub)
	boardHandler := board.NewHandler(boardService)

	authService := auth.NewService(userRepo, companyRepo, j)
	authHandler := auth.NewHandler(authService)

	pipelineService := pipeline.NewService(pipelineRepo, stageRepo, leadRepo, boardService)
	pipelineHandler := pipeline.NewHandler(pipelineService)

	leadService := lead.NewService(leadRepo, stageRepo, fieldRepo, boardService)
	leadHandler := lead.NewHandler(leadService)

	fieldService := field.NewService(fieldRepo, pipelineRepo)
	fieldHandler := field.NewHandler(fieldService)

	tokenService := token.NewService(tokenRepo)
	tokenHandler := token.NewHandler(tokenService)

	chatService := chat.NewService(chatRepo, leadRepo, campaignRepo, hooks, hub)
	chatHandler := chat.NewHandler(chatService)

	campaignService := campaign.NewService(campaignRepo, hooks)
	campaignHandler := campaign.NewHandler(campaignService)

	prefsService := prefs.NewService(prefRepo)
	prefsHandler := prefs.NewHandler(prefsService)

	realtimeHandler := realtime.NewHandler(hub, j)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// machine ingress (channel connectors)
		ingress := v1.Group("/ingress")
		ingress.Use(middleware.ApiTokenAuth(tokenRepo))
		{
			chatHandler.RegisterIngressRoutes(ingress)
		}

		// authenticated users
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			pipelineHandler.RegisterRoutes(protected)
			boardHandler.RegisterRoutes(protected)
			leadHandler.RegisterRoutes(protected)
			fieldHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			campaignHandler.RegisterRoutes(protected)
			prefsHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
				pipelineHandler.RegisterAdminRoutes(admin)
				fieldHandler.RegisterAdminRoutes(admin)
				tokenHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	realtimeHandler.RegisterRoutes(r.Group("/"))

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
