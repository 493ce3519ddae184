package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	cancelReservationHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/get_reservation"
	getRestaurantReservationsHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/get_restaurant_reservations"
	getUserReservationsHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/get_user_reservations"
	modifyReservationHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/modify_reservation"
	runNotificationSweepHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/run_notification_sweep"
	updateReservationStatusHandler "github.com/m04kA/TB-ReservationService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/TB-ReservationService/internal/api/middleware"
	"github.com/m04kA/TB-ReservationService/internal/config"
	"github.com/m04kA/TB-ReservationService/internal/domain"
	notificationRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/notification"
	reservationRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/TB-ReservationService/internal/infra/storage/restaurant"
	"github.com/m04kA/TB-ReservationService/internal/integrations/mailerservice"
	reservationsService "github.com/m04kA/TB-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/TB-ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/TB-ReservationService/internal/usecase/get_available_slots"
	modifyReservationUC "github.com/m04kA/TB-ReservationService/internal/usecase/modify_reservation"
	notificationSweepUC "github.com/m04kA/TB-ReservationService/internal/usecase/notification_sweep"
	"github.com/m04kA/TB-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/TB-ReservationService/pkg/logger"
	"github.com/m04kA/TB-ReservationService/pkg/metrics"
	"github.com/m04kA/TB-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/TB-ReservationService/pkg/txmanager"
)

func main() {
	// Подхватываем .env, если он есть (локальная разработка)
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TB-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := runMigrations(db, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем клиента почтового сервиса
	mailerClient := mailerservice.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer client initialized (url=%s, timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository  *reservationRepo.Repository
		restaurantRepository   *restaurantRepo.Repository
		notificationRepository *notificationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		restaurantRepository = restaurantRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		restaurantRepository = restaurantRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		restaurantRepository,
		mailerClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		restaurantRepository,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		restaurantRepository,
		mailerClient,
		txMgr,
		log,
	)

	modifyReservationUseCase := modifyReservationUC.NewUseCase(
		reservationRepository,
		restaurantRepository,
		mailerClient,
		txMgr,
		log,
	)

	notificationSweepUseCase := notificationSweepUC.NewUseCase(
		reservationRepository,
		restaurantRepository,
		notificationRepository,
		mailerClient,
		metricsOrNoop(metricsCollector),
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	modifyReservation := modifyReservationHandler.NewHandler(modifyReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getRestaurantReservations := getRestaurantReservationsHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	runNotificationSweep := runNotificationSweepHandler.NewHandler(notificationSweepUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Внутренний эндпоинт для внешних планировщиков свипа
	r.HandleFunc("/internal/notification-sweeps", runNotificationSweep.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов на дату
	api.HandleFunc("/restaurants/{restaurantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Изменение бронирования
	protected.HandleFunc("/reservations/{reservationId}", modifyReservation.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// Смена статуса персоналом
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление рестораном (для персонала) ---
	// Список бронирований ресторана
	protected.HandleFunc("/restaurants/{restaurantId}/reservations", getRestaurantReservations.Handle).Methods(http.MethodGet)

	// Планировщик свипа уведомлений внутри процесса
	var sweepCron *cron.Cron
	if cfg.Sweep.Enabled {
		sweepCron = cron.New()

		runSweep := func(kind domain.NotificationKind) func() {
			return func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				defer cancel()

				if _, err := notificationSweepUseCase.Execute(ctx, &notificationSweepUC.Request{Kind: kind}); err != nil {
					log.Error("Scheduled sweep %s failed: %v", kind, err)
				}
			}
		}

		if _, err := sweepCron.AddFunc(cfg.Sweep.ReminderSchedule, runSweep(domain.KindReminder24h)); err != nil {
			log.Fatal("Invalid reminder sweep schedule %q: %v", cfg.Sweep.ReminderSchedule, err)
		}
		if _, err := sweepCron.AddFunc(cfg.Sweep.ReviewSchedule, runSweep(domain.KindReviewRequest)); err != nil {
			log.Fatal("Invalid review sweep schedule %q: %v", cfg.Sweep.ReviewSchedule, err)
		}

		sweepCron.Start()
		log.Info("Notification sweep scheduler started (reminder=%q, review=%q)",
			cfg.Sweep.ReminderSchedule, cfg.Sweep.ReviewSchedule)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем планировщик свипа
	if sweepCron != nil {
		cronCtx := sweepCron.Stop()
		<-cronCtx.Done()
		log.Info("Notification sweep scheduler stopped")
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// noopMetrics заглушка метрик уведомлений, когда метрики выключены
type noopMetrics struct{}

func (noopMetrics) IncNotificationSent(kind, status string) {}

// metricsOrNoop возвращает реальный сборщик метрик или заглушку
func metricsOrNoop(m *metrics.Metrics) notificationSweepUC.Metrics {
	if m != nil {
		return m
	}
	return noopMetrics{}
}

// runMigrations применяет миграции из каталога migrationsPath
func runMigrations(db *sql.DB, migrationsPath string) error {
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrations: create driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrations: up: %w", err)
	}

	return nil
}
