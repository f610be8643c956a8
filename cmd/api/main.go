package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/possxc/ledger/internal/config"
	"github.com/possxc/ledger/internal/handlers"
	"github.com/possxc/ledger/internal/queue"
	"github.com/possxc/ledger/internal/repository"
	"github.com/possxc/ledger/internal/services"
	xhttp "github.com/possxc/ledger/pkg/http"
	"github.com/possxc/ledger/pkg/logger"
	"github.com/possxc/ledger/pkg/prom"
	"github.com/possxc/ledger/pkg/redis"
	"github.com/possxc/ledger/pkg/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	storeDebug := false
	if config.Get().AppEnv == "dev" {
		storeDebug = true
	}
	db, err := store.Open(store.Config{Path: config.Get().StorePath}, storeDebug)
	if err != nil {
		logger.Error("failed opening the store", "error", err)
		return
	}
	if err := db.Migrate(repository.Entities()...); err != nil {
		logger.Error("failed migrating the store", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	reminderQ, err := queue.NewQueue(redisAdap, queue.Config{
		Name:              config.Get().ReminderQueueName,
		ConsumerGroup:     config.Get().ReminderConsumerGroup,
		ConsumerName:      config.Get().ReminderConsumerName,
		MaxRetries:        config.Get().ReminderMaxRetries,
		VisibilityTimeout: config.Get().ReminderVisibilityTimeout,
		PollInterval:      config.Get().ReminderPollInterval,
		BatchSize:         config.Get().ReminderBatchSize,
		MaxLen:            config.Get().ReminderQueueMaxLen,
	})
	if err != nil {
		logger.Error("failed creating reminder queue", "error", err)
		return
	}

	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	grnRepo := repository.NewGRNRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// services
	catalogService := services.NewCatalogService(productRepo, customerRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, paymentRepo, db)
	grnService := services.NewGRNService(grnRepo, productRepo, db)
	paymentService := services.NewPaymentService(paymentRepo, reminderQ)
	reportService := services.NewReportService(reportRepo, orderService)
	healthService := services.NewHealthService(db)

	// v1 handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	grnHandler := handlers.NewGRNHandler(grnService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterCatalogRoutes(g, catalogHandler)
	handlers.RegisterOrderRoutes(g, orderHandler)
	handlers.RegisterGRNRoutes(g, grnHandler)
	handlers.RegisterPaymentRoutes(g, paymentHandler)
	handlers.RegisterReportRoutes(g, reportHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}
	if config.Get().AppDebugMetricsAddr != "" {
		go func() {
			prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}()
	}

	// background sweep that turns overdue settlements into reminders
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	go paymentService.StartDueMonitor(monitorCtx, config.Get().DueScanInterval)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		stopMonitor()
		s.Shutdown()
		if err := db.Close(); err != nil {
			logger.Error("failed closing the store", "error", err)
		}
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
