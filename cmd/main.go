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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	autoConfirmHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/auto_confirm"
	cancelBookingHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/cancel_booking"
	confirmPendingHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/confirm_pending"
	createBookingHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/get_booking"
	getShopBookingsHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/get_shop_bookings"
	getShopConfigHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/get_shop_config"
	getShopStatsHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/get_shop_stats"
	getUserBookingsHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/get_user_bookings"
	payBookingHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/pay_booking"
	slotAvailabilityHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/slot_availability"
	submitFeedbackHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/submit_feedback"
	updateBookingStatusHandler "github.com/m04kA/SMC-CarWash/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-CarWash/internal/api/middleware"
	"github.com/m04kA/SMC-CarWash/internal/config"
	"github.com/m04kA/SMC-CarWash/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWash/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarWash/internal/infra/storage/memory"
	shopServiceClient "github.com/m04kA/SMC-CarWash/internal/integrations/shopservice"
	userServiceClient "github.com/m04kA/SMC-CarWash/internal/integrations/userservice"
	"github.com/m04kA/SMC-CarWash/internal/scheduler"
	adminService "github.com/m04kA/SMC-CarWash/internal/service/admin"
	availabilityService "github.com/m04kA/SMC-CarWash/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CarWash/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-CarWash/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CarWash/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CarWash/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWash/pkg/logger"
	"github.com/m04kA/SMC-CarWash/pkg/metrics"
	"github.com/m04kA/SMC-CarWash/pkg/txmanager"
)

const configPath = "config.toml"

// bookingStore хранилище бронирований: Postgres или память
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error)
	GetPendingByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	LockShopDay(ctx context.Context, shopID string, date time.Time) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type shopProvider interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
}

type vehicleProvider interface {
	GetVehicle(ctx context.Context, userID int64, fallback domain.VehicleSnapshot) domain.VehicleSnapshot
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.With(map[string]interface{}{
		"storage":   cfg.Storage.Driver,
		"http_port": cfg.Server.HTTPPort,
		"timezone":  cfg.Booking.Timezone,
	}).Info("Starting SMC-CarWash...")
	log.Info("Configuration loaded from %s", configPath)

	policy, err := cfg.Booking.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище бронирований
	var (
		bookings bookingStore
		txMgr    txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		bookings = store
		txMgr = memory.NewTxManager(store)
		log.Warn("Using in-memory booking storage, data will be lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		bookings = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Источник данных о мойках
	var shops shopProvider
	if cfg.ShopService.Enabled() {
		shops = shopServiceClient.NewClient(
			cfg.ShopService.URL,
			time.Duration(cfg.ShopService.Timeout)*time.Second,
			log,
		)
		log.Info("ShopService client initialized (url=%s, timeout=%ds)", cfg.ShopService.URL, cfg.ShopService.Timeout)
	} else {
		catalog := make([]domain.Shop, 0, len(cfg.Shops))
		for _, s := range cfg.Shops {
			catalog = append(catalog, s.ToDomain())
		}
		shops = memory.NewShopCatalog(catalog)
		log.Info("Using local shop catalog from config (%d shops)", len(catalog))
	}

	// Данные автомобиля: UserService или то, что прислал клиент
	var vehicles vehicleProvider = userServiceClient.RequestVehicle{}
	if cfg.UserService.Enabled() {
		vehicles = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(shops, bookings, log)
	bookingSvc := bookingsService.NewService(bookings, txMgr, policy, metricsCollector, log)
	adminSvc := adminService.NewService(bookings, txMgr, bookingSvc, shops, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookings,
		availabilitySvc,
		shops,
		vehicles,
		txMgr,
		policy,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(shops, availabilitySvc, policy, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	slotAvailability := slotAvailabilityHandler.NewHandler(availabilitySvc, log)
	getShopConfig := getShopConfigHandler.NewHandler(shops, policy, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	payBooking := payBookingHandler.NewHandler(bookingSvc, log)
	submitFeedback := submitFeedbackHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(adminSvc, log)
	getShopStats := getShopStatsHandler.NewHandler(adminSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(adminSvc, log)
	confirmPending := confirmPendingHandler.NewHandler(adminSvc, log)
	autoConfirm := autoConfirmHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/shops/{shopId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/slot-availability", slotAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/config", getShopConfig.Handle).Methods(http.MethodGet)

	// Внешний триггер автоподтверждения (cron), только с внутренним токеном
	internalRoutes := api.PathPrefix("/internal").Subrouter()
	internalRoutes.Use(middleware.InternalToken(cfg.Scheduler.TriggerToken))
	internalRoutes.HandleFunc("/auto-confirm", autoConfirm.Handle).Methods(http.MethodPost)
	if cfg.Scheduler.TriggerToken == "" {
		log.Warn("Auto-confirm trigger token is not set, external trigger is disabled")
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования клиента ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", payBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/feedback", submitFeedback.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление мойкой (для администраторов) ---
	adminRoutes := protected.PathPrefix("/shops/{shopId}/bookings").Subrouter()
	adminRoutes.Use(middleware.AdminOnly)
	adminRoutes.HandleFunc("", getShopBookings.Handle).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/stats", getShopStats.Handle).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/confirm-pending", confirmPending.Handle).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Планировщик автоподтверждения
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	sched := scheduler.New(bookingSvc, time.Duration(cfg.Scheduler.AutoConfirmInterval)*time.Second, log)
	go sched.Start(schedCtx)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopScheduler()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
