// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"hostel-portal/internal/config"
	"hostel-portal/internal/db"
	"hostel-portal/internal/domain/portal"
	authHandler "hostel-portal/internal/handlers/auth"
	chatHandler "hostel-portal/internal/handlers/chat"
	complaintHandler "hostel-portal/internal/handlers/complaint"
	feeHandler "hostel-portal/internal/handlers/fee"
	gatelogHandler "hostel-portal/internal/handlers/gatelog"
	leaveHandler "hostel-portal/internal/handlers/leave"
	locationHandler "hostel-portal/internal/handlers/location"
	parentHandler "hostel-portal/internal/handlers/parent"
	studentHandler "hostel-portal/internal/handlers/student"
	wsHandler "hostel-portal/internal/handlers/websocket"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/session"
	"hostel-portal/internal/repository/postgres"
	gatelogUsecase "hostel-portal/internal/service/gatelog"
	locationUsecase "hostel-portal/internal/service/location"
	"hostel-portal/internal/upstream"
	"hostel-portal/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start(ctx context.Context) error {
	// ----- PostgreSQL (scan journal) -----
	pool, err := db.ConnectDB(s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis (session storage) -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Sessions -----
	sessionStorage := session.NewRedisStorage(redisClient, s.cfg.SessionTTL)
	sessionManager := session.NewManager(sessionStorage, logger)

	// ----- Upstream API client -----
	apiClient := upstream.NewClient(s.cfg.UpstreamAPIURL, sessionManager, logger)

	// ----- Repositories -----
	scanLogRepo := postgres.NewScanLogRepository(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub()

	// ----- Services -----
	gatelogService := gatelogUsecase.NewService(scanLogRepo, apiClient, logger)

	tracker := locationUsecase.NewTracker(hub, locationFetcher(apiClient), s.cfg.LocationPollInterval, logger)
	hub.SetSubscriberListener(tracker.OnSubscriberChange)

	go hub.Run(ctx)
	go gatelogService.RunSyncWorker(ctx, s.cfg.GatelogSyncInterval)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(apiClient, sessionManager, gatelogService, hub, logger)
	studentHandlerInst := studentHandler.NewStudentHandler(apiClient, logger)
	parentHandlerInst := parentHandler.NewParentHandler(apiClient, logger)
	complaintHandlerInst := complaintHandler.NewComplaintHandler(apiClient, logger)
	leaveHandlerInst := leaveHandler.NewLeaveHandler(apiClient, logger)
	feeHandlerInst := feeHandler.NewFeeHandler(apiClient, logger)
	chatHandlerInst := chatHandler.NewChatHandler(apiClient, hub, logger)
	locationHandlerInst := locationHandler.NewLocationHandler(apiClient, logger)
	gatelogHandlerInst := gatelogHandler.NewGatelogHandler(gatelogService, logger)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, sessionManager, logger)

	// ----- Middlewares -----
	gate := middleware.NewGateMiddleware(sessionManager, logger)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
		middleware.ClientSession(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:      authHandlerInst,
		StudentHandler:   studentHandlerInst,
		ParentHandler:    parentHandlerInst,
		ComplaintHandler: complaintHandlerInst,
		LeaveHandler:     leaveHandlerInst,
		FeeHandler:       feeHandlerInst,
		ChatHandler:      chatHandlerInst,
		LocationHandler:  locationHandlerInst,
		GatelogHandler:   gatelogHandlerInst,
		WSHandler:        wsHandlerInst,
		Gate:             gate,
	}
	SetupRouter(s.engine, s.cfg, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("portal listening on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// locationFetcher picks the right upstream call per subscriber: parents see
// their child, wardens the whole overview.
func locationFetcher(api *upstream.Client) locationUsecase.FetchFunc {
	return func(ctx context.Context, sub websocket.SubscriberInfo) (interface{}, error) {
		var (
			res *upstream.Result
			err error
		)
		switch sub.Role {
		case portal.RoleParent:
			res, err = api.ChildLocation(ctx, sub.SID)
		default:
			res, err = api.StudentLocations(ctx, sub.SID)
		}
		if err != nil {
			return nil, err
		}
		return res.Data, nil
	}
}
