package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"

	pkgdb "github.com/Skotchmaster/telco_shop/pkg/db"
	"github.com/Skotchmaster/telco_shop/pkg/es"
	"github.com/Skotchmaster/telco_shop/pkg/logging"
	middleware "github.com/Skotchmaster/telco_shop/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/telco_shop/pkg/middleware/logging"
	"github.com/Skotchmaster/telco_shop/pkg/mykafka"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/config"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/httpserver"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/i18n"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/metrics"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/repo"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/search"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/service"
)

func main() {
	if err := godotenv.Load("services/storefront/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	table, err := config.LoadConsumption(cfg.ConsumptionConfigPath)
	if err != nil {
		log.Fatalf("consumption config: %v", err)
	}
	catalog, err := i18n.Load(cfg.Language)
	if err != nil {
		log.Fatalf("translations: %v", err)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := repo.Migrate(initCtx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	gormRepo := &repo.GormRepo{DB: db}

	var store service.OverrideStore = gormRepo
	var rdb *redis.Client
	if cfg.OverrideStore == config.OverrideStoreRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(initCtx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		store = repo.NewRedisOverrideStore(rdb)
	}

	esClient, err := es.NewClient(initCtx, es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry, cfg.ServiceName)

	notifier := &service.Notifier{Metrics: m}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		notifier.Publisher = producer
	} else {
		logger.Warn("kafka brokers not configured, events are not published")
	}

	consumptionSvc := &service.ConsumptionService{Store: store, Config: table, Notifier: notifier, Metrics: m}
	cartSvc := &service.CartService{
		Repo: gormRepo,
		Premises: &search.TechnicalResourceIndex{
			ES:      esClient,
			Index:   cfg.TechnicalResourcesIndex,
			Timeout: cfg.PremiseValidationTimeout,
		},
		Translator: catalog,
		Notifier:   notifier,
		Metrics:    m,
		Now:        time.Now,
	}
	usageSvc := &service.UsageService{Repo: gormRepo, Translator: catalog}

	identity := middleware.NewIdentity(cfg.JWTAccessSecret)
	identity.Secure = cfg.SecureCookies

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		ConsumptionHandler: &httpserver.ConsumptionHTTP{Svc: consumptionSvc, Cart: cartSvc, Translator: catalog},
		CartHandler:        &httpserver.CartHTTP{Svc: cartSvc, Consumption: consumptionSvc},
		UsageHandler:       &httpserver.UsageHTTP{Svc: usageSvc},
		Identity:           identity,
		Metrics:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Ready: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close", "error", err)
	}

	logger.Info("storefront stopped")
}
