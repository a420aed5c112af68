package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	bookSlotHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/book_slot"
	bulkScheduleHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/bulk_schedule"
	cancelSlotHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/cancel_slot"
	checkConflictsHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/check_conflicts"
	createBusyBlockHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/create_busy_block"
	createRuleHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/create_rule"
	createSlotHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/create_slot"
	deleteBusyBlockHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/delete_busy_block"
	deleteRuleHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/delete_rule"
	generateSlotsHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/generate_slots"
	getAvailabilityHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/get_availability"
	getRuleHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/get_rule"
	getSlotHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/get_slot"
	getSuggestionsHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/get_suggestions"
	getTeamAvailabilityHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/get_team_availability"
	getWorkingHoursHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/get_working_hours"
	healthHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/health"
	listBusyBlocksHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/list_busy_blocks"
	listRulesHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/list_rules"
	listSlotsHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/list_slots"
	rescheduleSlotHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/reschedule_slot"
	setDefaultRuleHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/set_default_rule"
	setWorkingHoursHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/set_working_hours"
	updateRuleHandler "github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers/update_rule"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-InterviewScheduler/internal/config"
	busyCache "github.com/m04kA/SMC-InterviewScheduler/internal/infra/cache/busy"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/migrations"
	busyBlockRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/busyblock"
	interviewRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/interview"
	ruleRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/rule"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	workingHoursRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/workinghours"
	userServiceClient "github.com/m04kA/SMC-InterviewScheduler/internal/integrations/userservice"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	calendarService "github.com/m04kA/SMC-InterviewScheduler/internal/service/calendar"
	rulesService "github.com/m04kA/SMC-InterviewScheduler/internal/service/rules"
	slotsService "github.com/m04kA/SMC-InterviewScheduler/internal/service/slots"
	bookSlotUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/book_slot"
	bulkScheduleUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/bulk_schedule"
	cancelSlotUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/cancel_slot"
	checkConflictsUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/check_conflicts"
	expireSlotsUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/expire_slots"
	generateSlotsUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/generate_slots"
	getAvailabilityUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_availability"
	getSuggestionsUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_suggestions"
	getTeamAvailabilityUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_team_availability"
	rescheduleSlotUC "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/reschedule_slot"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/logger"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/metrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/tracing"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/txmanager"
)

func serveCmd(configPath *string) *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the slot expiry job",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(*configPath, autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply pending migrations before start")

	return cmd
}

// busyInvalidator сброс кэша занятости: Redis или no-op
type busyInvalidator interface {
	Invalidate(ctx context.Context, tenantID string, userIDs ...string) error
}

// slotEventPublisher публикация событий слотов: Kafka или no-op
type slotEventPublisher interface {
	Publish(ctx context.Context, event events.SlotEvent) error
}

// redisPinger адаптирует redis клиент к health-check
type redisPinger struct {
	rdb redis.UniversalClient
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func serve(configPath string, autoMigrate bool) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-InterviewScheduler %s...", Version)
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Трассировка (при выключенной ставятся только пропагаторы)
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("Failed to flush traces: %v", err)
		}
	}()

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if autoMigrate {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			return err
		}
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	defer close(stopMetricsCh)

	// Кэш занятости в Redis (опционально)
	healthChecks := map[string]healthHandler.Pinger{"postgres": db}
	var (
		invalidator    busyInvalidator = busyCache.NopInvalidator{}
		aggregatorOpts []scheduling.AggregatorOption
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{cfg.Redis.Addr},
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		cache := busyCache.New(rdb, time.Duration(cfg.Redis.BusyCacheTTL)*time.Second, cfg.Redis.BusyCachePrefix)
		invalidator = cache
		aggregatorOpts = append(aggregatorOpts, scheduling.WithCache(cache, metricsCollector))
		healthChecks["redis"] = redisPinger{rdb: rdb}
		log.Info("Busy cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.BusyCacheTTL)
	}

	// Публикация событий слотов в Kafka (опционально)
	var publisher slotEventPublisher = events.NopPublisher{}
	if cfg.Kafka.Brokers != "" {
		kafkaPublisher, err := events.NewKafkaPublisher(events.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: time.Duration(cfg.Kafka.WriteTimeout) * time.Second,
		})
		if err != nil {
			return err
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Slot events are published to %s (topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Справочник пользователей (опционально)
	var directory generateSlotsUC.UserDirectory
	if cfg.UserService.URL != "" {
		directory = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	}

	// Инициализируем репозитории
	slotRepository := slotRepo.NewRepository(wrappedDB)
	interviewRepository := interviewRepo.NewRepository(wrappedDB)
	busyBlockRepository := busyBlockRepo.NewRepository(wrappedDB)
	workingHoursRepository := workingHoursRepo.NewRepository(wrappedDB)
	ruleRepository := ruleRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Ядро планирования
	aggregator := scheduling.NewAggregator(
		workingHoursRepository,
		busyBlockRepository,
		interviewRepository,
		log,
		aggregatorOpts...,
	)
	resolver := scheduling.NewResolver(aggregator)
	ranker := scheduling.NewRanker(cfg.Scheduling.DefaultMaxSuggestions)

	maxPanel := cfg.Scheduling.MaxPanelInterviewers
	defaultTZ := cfg.Scheduling.DefaultTimezone

	// Инициализируем сервисы
	rulesSvc := rulesService.NewService(ruleRepository, txMgr, log)
	calendarSvc := calendarService.NewService(workingHoursRepository, busyBlockRepository, invalidator, log)
	slotsSvc := slotsService.NewService(slotRepository, maxPanel, defaultTZ, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(resolver, maxPanel, defaultTZ, log)
	getTeamAvailabilityUseCase := getTeamAvailabilityUC.NewUseCase(resolver, maxPanel, defaultTZ, log)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		ruleRepository,
		slotRepository,
		resolver,
		directory,
		metricsCollector,
		maxPanel,
		defaultTZ,
		log,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		slotRepository,
		interviewRepository,
		busyBlockRepository,
		aggregator,
		invalidator,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)
	rescheduleSlotUseCase := rescheduleSlotUC.NewUseCase(
		slotRepository,
		interviewRepository,
		busyBlockRepository,
		aggregator,
		invalidator,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)
	cancelSlotUseCase := cancelSlotUC.NewUseCase(
		slotRepository,
		interviewRepository,
		busyBlockRepository,
		invalidator,
		publisher,
		txMgr,
		log,
	)
	checkConflictsUseCase := checkConflictsUC.NewUseCase(aggregator, metricsCollector, maxPanel, defaultTZ, log)
	getSuggestionsUseCase := getSuggestionsUC.NewUseCase(
		resolver,
		ruleRepository,
		interviewRepository,
		ranker,
		maxPanel,
		defaultTZ,
		log,
	)
	bulkScheduleUseCase := bulkScheduleUC.NewUseCase(
		interviewRepository,
		busyBlockRepository,
		aggregator,
		invalidator,
		txMgr,
		maxPanel,
		defaultTZ,
		log,
	)
	expireSlotsUseCase := expireSlotsUC.NewUseCase(
		slotRepository,
		publisher,
		metricsCollector,
		cfg.Scheduling.ExpireBatchSize,
		log,
	)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthHandler.NewHandler(healthChecks, log).Handle).Methods(http.MethodGet)

	// API prefix, все маршруты требуют X-Tenant-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Доступность ---
	api.HandleFunc("/availability", getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/team", getTeamAvailabilityHandler.NewHandler(getTeamAvailabilityUseCase, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/conflicts/check", checkConflictsHandler.NewHandler(checkConflictsUseCase, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/suggestions", getSuggestionsHandler.NewHandler(getSuggestionsUseCase, log).Handle).Methods(http.MethodPost)

	// --- Слоты ---
	api.HandleFunc("/slots/generate", generateSlotsHandler.NewHandler(generateSlotsUseCase, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/slots", listSlotsHandler.NewHandler(slotsSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", createSlotHandler.NewHandler(slotsSvc, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/slots/{slotId}", getSlotHandler.NewHandler(slotsSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}/book", bookSlotHandler.NewHandler(bookSlotUseCase, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/slots/{slotId}/reschedule", rescheduleSlotHandler.NewHandler(rescheduleSlotUseCase, log).Handle).Methods(http.MethodPatch)
	api.HandleFunc("/slots/{slotId}/cancel", cancelSlotHandler.NewHandler(cancelSlotUseCase, log).Handle).Methods(http.MethodPatch)

	// --- Массовое планирование ---
	api.HandleFunc("/interviews/bulk", bulkScheduleHandler.NewHandler(bulkScheduleUseCase, log).Handle).Methods(http.MethodPost)

	// --- Правила планирования ---
	api.HandleFunc("/scheduling-rules", listRulesHandler.NewHandler(rulesSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/scheduling-rules", createRuleHandler.NewHandler(rulesSvc, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/scheduling-rules/{ruleId}", getRuleHandler.NewHandler(rulesSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/scheduling-rules/{ruleId}", updateRuleHandler.NewHandler(rulesSvc, log).Handle).Methods(http.MethodPut)
	api.HandleFunc("/scheduling-rules/{ruleId}", deleteRuleHandler.NewHandler(rulesSvc, log).Handle).Methods(http.MethodDelete)
	api.HandleFunc("/scheduling-rules/{ruleId}/default", setDefaultRuleHandler.NewHandler(rulesSvc, log).Handle).Methods(http.MethodPut)

	// --- Календарь пользователя ---
	api.HandleFunc("/users/{userId}/working-hours", getWorkingHoursHandler.NewHandler(calendarSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/working-hours", setWorkingHoursHandler.NewHandler(calendarSvc, log).Handle).Methods(http.MethodPut)
	api.HandleFunc("/users/{userId}/busy-blocks", listBusyBlocksHandler.NewHandler(calendarSvc, log).Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/busy-blocks", createBusyBlockHandler.NewHandler(calendarSvc, log).Handle).Methods(http.MethodPost)
	api.HandleFunc("/busy-blocks/{blockId}", deleteBusyBlockHandler.NewHandler(calendarSvc, log).Handle).Methods(http.MethodDelete)

	// Фоновое истечение слотов
	jobCtx, cancelJob := context.WithCancel(ctx)
	jobDone := make(chan struct{})
	go func() {
		defer close(jobDone)
		expireSlotsUseCase.Run(jobCtx, cfg.Scheduling.ExpireInterval())
	}()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		cancelJob()
		<-jobDone
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	cancelJob()
	<-jobDone

	log.Info("Server stopped gracefully")
	return nil
}
