package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/billing-dashboard/docs"
	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/controller"
	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/route"
	"github.com/hugohenrick/billing-dashboard/internal/adapter/repository"
	"github.com/hugohenrick/billing-dashboard/internal/adapter/repository/memory"
	"github.com/hugohenrick/billing-dashboard/internal/config"
	"github.com/hugohenrick/billing-dashboard/internal/domain/dashboard"
	"github.com/hugohenrick/billing-dashboard/internal/feed"
	"github.com/hugohenrick/billing-dashboard/internal/infrastructure/database"
	"github.com/hugohenrick/billing-dashboard/pkg/auth"
	"github.com/hugohenrick/billing-dashboard/pkg/logger"
	"github.com/hugohenrick/billing-dashboard/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// App representa a aplicação e suas dependências
type App struct {
	cfg     *config.Config
	log     logger.Logger
	router  *gin.Engine
	pool    *pgxpool.Pool
	hub     *feed.Hub
	metrics *metrics.Metrics
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	gin.SetMode(cfg.GinMode)

	app := &App{
		cfg:     cfg,
		log:     log,
		hub:     feed.NewHub(),
		metrics: metrics.New(),
	}
	app.hub.OnDrop(func(e feed.Event) {
		app.metrics.FeedDropped()
		log.Warn("evento do feed descartado", "collection", e.Collection, "id", e.ID)
	})

	repos, pinger, err := app.setupStore(ctx)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.JWTSecretKey, cfg.JWTExpiration, cfg.JWTIssuer)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("erro ao criar serviço JWT: %w", err)
	}

	dashboardService := dashboard.NewService(repos.Clients, repos.Invoices, repos.Payments, cfg.DashboardMonths, log)

	controllers := route.Controllers{
		Client:    controller.NewClientController(repos.Clients, log, nil),
		Invoice:   controller.NewInvoiceController(repos.Invoices, repos.Clients, repos.Payments, repos.Profile, app.metrics, log, nil),
		Payment:   controller.NewPaymentController(repos.Payments, repos.Invoices, repos.Clients, log, nil),
		Profile:   controller.NewProfileController(repos.Profile, log),
		Dashboard: controller.NewDashboardController(dashboardService, app.metrics, log),
		Feed:      controller.NewFeedController(app.hub, cfg.CORSAllowedOrigins, app.metrics, log),
		Health:    controller.NewHealthController(cfg.StoreDriver, pinger),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(log))
	router.Use(app.metrics.Middleware())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	router.GET("/metrics", gin.WrapH(app.metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	route.SetupRoutes(router, controllers, auth.JWTAuthMiddleware(jwtService))
	app.router = router

	return app, nil
}

// setupStore cria os repositórios conforme STORE_DRIVER
func (a *App) setupStore(ctx context.Context) (repository.Repositories, controller.Pinger, error) {
	if a.cfg.StoreDriver == config.StoreMemory {
		var store *memory.Store
		if a.cfg.StoreSeed {
			store = memory.NewSeededStore(memory.WithPublisher(a.hub))
		} else {
			store = memory.NewStore(memory.WithPublisher(a.hub))
		}
		a.log.Info("usando armazenamento em memória", "seed", a.cfg.StoreSeed)
		return repository.Repositories{
			Clients:  store.Clients(),
			Invoices: store.Invoices(),
			Payments: store.Payments(),
			Profile:  store.Profile(),
		}, nil, nil
	}

	dbURL := a.cfg.PostgresURL()
	if a.cfg.AutoMigrate {
		if err := database.RunMigrations(dbURL, a.cfg.MigrationsPath, database.Up); err != nil {
			return repository.Repositories{}, nil, err
		}
		a.log.Info("migrações aplicadas")
	}

	pool, err := database.NewPostgresDB(ctx, database.PostgresConfig{
		URL:            dbURL,
		MaxConnections: a.cfg.DBMaxConns,
		MinConnections: a.cfg.DBMinConns,
	})
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	a.pool = pool

	listener := database.NewListener(pool, a.hub, a.log)
	go func() {
		if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error("listener de alterações encerrado", "error", err)
		}
	}()

	a.log.Info("usando PostgreSQL", "max_connections", a.cfg.DBMaxConns)
	return repository.NewRepositories(pool), pool, nil
}

// Start inicia o servidor HTTP e bloqueia até o contexto ser cancelado
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + a.cfg.HTTPPort,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("servidor iniciado", "port", a.cfg.HTTPPort, "store", a.cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.ExposeHeaders = []string{"Content-Disposition"}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
