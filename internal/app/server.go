// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"rentorio-service/internal/config"
	"rentorio-service/internal/db"
	authHandler "rentorio-service/internal/handlers/auth"
	bookingHandler "rentorio-service/internal/handlers/booking"
	userHandler "rentorio-service/internal/handlers/user"
	vehicleHandler "rentorio-service/internal/handlers/vehicle"
	"rentorio-service/internal/middleware"
	"rentorio-service/internal/pkg/limiter"
	"rentorio-service/internal/pkg/token"
	"rentorio-service/internal/repository/postgres"
	authUsecase "rentorio-service/internal/service/auth"
	bookingUsecase "rentorio-service/internal/service/booking"
	userUsecase "rentorio-service/internal/service/user"
	vehicleUsecase "rentorio-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	pool        *pgxpool.Pool
	stopSweeper context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	if err := postgres.InitSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Token Manager -----
	tokenManager, err := token.NewManager(s.cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	bookingStore := postgres.NewBookingStore(pool)

	// ----- Services -----
	loginLimiter := limiter.NewLoginLimiter(redisClient)
	authService := authUsecase.NewAuthService(userRepo, tokenManager, loginLimiter, logger)
	userService := userUsecase.NewUserService(userRepo, logger)
	vehicleService := vehicleUsecase.NewVehicleService(vehicleRepo, logger)
	bookingService := bookingUsecase.NewService(bookingStore, logger)

	// ----- Overdue Sweeper -----
	sweepCtx, cancel := context.WithCancel(ctx)
	s.stopSweeper = cancel
	sweeper := bookingUsecase.NewSweeper(bookingService, s.cfg.SweepInterval, logger)
	go sweeper.Run(sweepCtx)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService)
	userHandlerInst := userHandler.NewUserHandler(userService)
	vehicleHandlerInst := vehicleHandler.NewVehicleHandler(vehicleService)
	bookingHandlerInst := bookingHandler.NewBookingHandler(bookingService)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:    authHandlerInst,
		UserHandler:    userHandlerInst,
		VehicleHandler: vehicleHandlerInst,
		BookingHandler: bookingHandlerInst,
		AuthMiddleware: authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown stops the background sweeper and closes the connection pool.
func (s *Server) Shutdown(ctx context.Context) {
	if s.stopSweeper != nil {
		s.stopSweeper()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	_ = ctx
}
