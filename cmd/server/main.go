package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskloop/backend/api/handler"
	"github.com/taskloop/backend/identity"
	"github.com/taskloop/backend/internal/config"
	"github.com/taskloop/backend/internal/infrastructure/monitor"
	tablesInfra "github.com/taskloop/backend/internal/infrastructure/tables"
	"github.com/taskloop/backend/internal/middleware"
	"github.com/taskloop/backend/internal/router"
	"github.com/taskloop/backend/internal/services/lifecycle"
	"github.com/taskloop/backend/pkg/httpcontext"
	"github.com/taskloop/backend/pkg/logger"
	"github.com/taskloop/backend/repository/tables"
	authUC "github.com/taskloop/backend/usecase/auth"
	taskUC "github.com/taskloop/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	clients, err := tablesInfra.NewClients(appCtx, tablesInfra.Config{
		ConnectionString: cfg.Storage.ConnectionString,
		TasksTable:       cfg.Storage.TasksTable,
		UsersTable:       cfg.Storage.UsersTable,
		AccountsTable:    cfg.Storage.AccountsTable,
	})
	if err != nil {
		zapLogger.Fatal("table storage connection failed", zap.Error(err))
	}

	mon := monitor.New(clients.Service, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := tables.NewUserRepository(clients.Users)
	taskRepo := tables.NewTaskRepository(clients.Tasks)

	provider := identity.NewProvider(clients.Accounts, identity.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		TokenTTL: cfg.JWT.TokenTTL,
	}, zapLogger)

	authUseCase := authUC.New(userRepo, provider, zapLogger)
	taskUseCase := taskUC.New(taskRepo, userRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.BearerAuth(provider, zapLogger)
	r := router.New(handlers, authMiddleware)
	handler := middleware.CORS(cfg.CORS.AllowedOrigins)(r.Handler)

	server := &fasthttp.Server{
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
