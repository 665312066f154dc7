package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/api/handlers"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/api/middlew"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/config"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/db"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/kafka"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/ledger"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/metrics"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/pricing"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/ratelimit"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/server"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/service"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/storage/postgres"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/pkg/logger"
)

type App struct {
	log     *slog.Logger
	server  *server.Server
	pool    *pgxpool.Pool
	logFile *os.File
	cfg     *config.Config

	verifier      service.TokenVerifier
	limiter       *ratelimit.Limiter
	memoryStore   *ratelimit.MemoryCounterStore
	redisClient   *redis.Client
	kafkaProducer kafka.Producer
	metrics       *metrics.Metrics

	quoteService service.Quoter
	riskService  service.RiskManager
}

func NewApp() (*App, error) {
	loggerWithFile := logger.NewLoggerWithFile("remesas.log")
	log := loggerWithFile.Logger
	log.Info("inicializando la aplicación")

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("error inicializando la configuración: %w", err)
	}
	log.Info("configuración cargada", slog.String("port", cfg.HTTPPort))

	log.Info("ejecutando migraciones de base de datos")
	if err := db.RunMigrations(cfg.DB.MigrationURL(), "migrations"); err != nil {
		return nil, fmt.Errorf("error ejecutando migraciones: %w", err)
	}
	log.Info("migraciones aplicadas")

	poolCfg := db.PoolConfig{
		MaxConns:          200,
		MinConns:          10,
		HealthCheckPeriod: 30 * time.Second,
		PoolTimeout:       5 * time.Second,
		RetryAttempts:     5,
		RetryDelay:        1 * time.Second,
		ApplicationName:   "remesas-engine",
	}

	pool, err := db.NewPool(context.Background(), cfg.DB.DSN(), poolCfg, log)
	if err != nil {
		return nil, fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}

	var kafkaProducer kafka.Producer
	if cfg.Kafka.Enabled {
		log.Info("inicializando kafka producer", slog.Any("brokers", cfg.Kafka.Brokers))
		kafkaProducer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.RiskTopic, cfg.Kafka.RemittanceTopic, log)
		if err != nil {
			return nil, fmt.Errorf("error inicializando kafka: %w", err)
		}
	} else {
		log.Info("kafka deshabilitado en la configuración")
		kafkaProducer = kafka.NewNoOpProducer(log)
	}

	app := &App{
		log:           log,
		pool:          pool,
		logFile:       loggerWithFile.LogFile,
		cfg:           cfg,
		kafkaProducer: kafkaProducer,
		metrics:       metrics.New(),
		verifier:      service.NewJWTVerifier(cfg.JWT.Secret),
	}

	// El limitador usa Redis cuando está disponible; en desarrollo el
	// contador en memoria alcanza.
	if cfg.Redis.Enabled {
		log.Info("inicializando redis", slog.String("addr", cfg.Redis.Addr))
		app.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		app.limiter = ratelimit.NewLimiter(ratelimit.NewRedisCounterStore(app.redisClient))
	} else {
		log.Info("redis deshabilitado, limitador en memoria")
		app.memoryStore = ratelimit.NewMemoryCounterStore()
		app.memoryStore.StartJanitor(time.Minute)
		app.limiter = ratelimit.NewLimiter(app.memoryStore)
	}

	srv := server.NewServer(cfg.HTTPPort)
	log.Info("servidor inicializado", slog.String("port", cfg.HTTPPort))
	srv.Router.Use(middleware.RequestID)
	srv.Router.Use(middlew.WithLogger(log))
	srv.Router.Use(middleware.RealIP)
	srv.Router.Use(middleware.Recoverer)
	srv.RegisterSwagger()
	srv.Router.Handle("/metrics", promhttp.Handler())

	app.server = srv
	return app, nil
}

// BuildQuoteLayer registra la cotización; ruta pública con token opcional.
func (a *App) BuildQuoteLayer() {
	feeRepo := postgres.NewFeeScheduleRepository(a.pool)

	a.quoteService = service.NewQuoteService(feeRepo, pricing.NewEngine(), a.metrics, a.log)
	quoteHandler := handlers.NewQuoteHandler(a.quoteService)

	a.server.Router.Group(func(r chi.Router) {
		r.Use(middlew.OptionalAuth(a.verifier))
		r.Use(middlew.RateLimit(a.limiter, "quote", a.cfg.Limits.QuoteWindow, a.cfg.Limits.QuoteMax, a.metrics))
		r.Post("/api/v1/quote", quoteHandler.CreateQuote)
	})

	a.log.Info("capa 'quote' construida y rutas registradas")
}

func (a *App) BuildRiskLayer() {
	remRepo := postgres.NewRemittanceRepository(a.pool)
	flagRepo := postgres.NewRiskFlagRepository(a.pool)

	a.riskService = service.NewRiskService(
		remRepo,
		flagRepo,
		a.kafkaProducer,
		a.metrics,
		service.RiskConfig{
			MaxDailyTxPerSender:     a.cfg.Risk.MaxDailyTxPerSender,
			MaxDailyAmountDOP:       a.cfg.Risk.MaxDailyAmountDOP,
			MaxMonthlyAmountDOP:     a.cfg.Risk.MaxMonthlyAmountDOP,
			MaxTxPerHourPerSender:   a.cfg.Risk.MaxTxPerHourPerSender,
			MinSpacing:              a.cfg.Risk.MinSpacing,
			MaxPairTxPerDay:         a.cfg.Risk.MaxPairTxPerDay,
			RoundAmountThresholdDOP: a.cfg.Risk.RoundAmountThresholdDOP,
			MaxTxPerHourPerIP:       a.cfg.Risk.MaxTxPerHourPerIP,
		},
		a.log,
	)

	riskHandler := handlers.NewRiskHandler(a.riskService)

	a.server.Router.Group(func(r chi.Router) {
		r.Use(middlew.RequireAuth(a.verifier))
		r.Use(middlew.RequireAdmin)
		r.Use(middlew.CSRFProtect)

		r.Group(func(r chi.Router) {
			r.Use(middlew.RateLimit(a.limiter, "fraud_check", a.cfg.Limits.FraudWindow, a.cfg.Limits.FraudMax, a.metrics))
			r.Post("/api/v1/fraud/check", riskHandler.FraudCheck)
		})

		r.Get("/api/v1/risk/flags", riskHandler.ListFlags)
		r.Post("/api/v1/risk/flags/{flagID}/resolve", riskHandler.ResolveFlag)
	})

	a.log.Info("capa 'risk' construida y rutas registradas")
}

func (a *App) BuildRemittanceLayer() error {
	if a.quoteService == nil {
		err := errors.New("quoteService not initialized, call BuildQuoteLayer first")
		a.log.Error(err.Error())
		return err
	}
	if a.riskService == nil {
		err := errors.New("riskService not initialized, call BuildRiskLayer first")
		a.log.Error(err.Error())
		return err
	}

	txManager := service.NewPgxTxManager(a.pool)
	remRepo := postgres.NewRemittanceRepository(a.pool)
	agentRepo := postgres.NewAgentRepository(a.pool)
	ledgerRepo := postgres.NewLedgerRepository(a.pool)
	poster := ledger.NewPoster(ledgerRepo)

	remittanceService := service.NewRemittanceService(
		remRepo,
		agentRepo,
		a.quoteService,
		a.riskService,
		poster,
		txManager,
		a.kafkaProducer,
		a.metrics,
		a.cfg.LargeRemittanceThresholdDOP,
		a.log,
	)

	remittanceHandler := handlers.NewRemittanceHandler(remittanceService)
	agentHandler := handlers.NewAgentHandler(service.NewAgentService(agentRepo))

	a.server.Router.Group(func(r chi.Router) {
		r.Use(middlew.RequireAuth(a.verifier))
		r.Use(middlew.CSRFProtect)

		r.Group(func(r chi.Router) {
			r.Use(middlew.RateLimit(a.limiter, "create_remittance", a.cfg.Limits.CreateWindow, a.cfg.Limits.CreateMax, a.metrics))
			r.Post("/api/v1/remittances", remittanceHandler.CreateRemittance)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlew.RateLimit(a.limiter, "confirm_remittance", a.cfg.Limits.ConfirmWindow, a.cfg.Limits.ConfirmMax, a.metrics))
			r.Post("/api/v1/remittances/{remittanceID}/confirm", remittanceHandler.ConfirmRemittance)
		})

		r.Post("/api/v1/remittances/{remittanceID}/state", remittanceHandler.AdvanceState)
		r.Get("/api/v1/remittances/{remittanceID}", remittanceHandler.GetRemittance)
		r.Get("/api/v1/agents/{agentID}/float", agentHandler.GetFloat)
	})

	a.log.Info("capa 'remittance' construida y rutas registradas")
	return nil
}

func (a *App) Run() error {
	a.log.Info("arrancando el servidor")

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("error arrancando el servidor: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-shutdownChan:
		a.log.Info("señal de apagado recibida", slog.String("signal", sig.String()))
	}

	a.log.Info("deteniendo la aplicación")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("error deteniendo el servidor http", slog.String("error", err.Error()))
	}

	if a.kafkaProducer != nil {
		a.log.Info("cerrando kafka producer")
		if err := a.kafkaProducer.Close(); err != nil {
			a.log.Error("error cerrando kafka producer", slog.String("error", err.Error()))
		}
	}

	if a.redisClient != nil {
		a.log.Info("cerrando conexión redis")
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("error cerrando redis", slog.String("error", err.Error()))
		}
	}
	if a.memoryStore != nil {
		a.memoryStore.Stop()
	}

	a.log.Info("cerrando conexión con la base de datos")
	a.pool.Close()

	a.log.Info("cerrando archivo de logs")
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			a.log.Error("error cerrando el archivo de logs", slog.String("error", err.Error()))
		}
	}

	a.log.Info("aplicación detenida")
	return nil
}
