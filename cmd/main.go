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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/create_booking"
	deleteShopConfigHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/delete_shop_config"
	getAvailableSlotsHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/get_client_bookings"
	getShopAgendaHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/get_shop_agenda"
	getShopConfigHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/get_shop_config"
	listShopConfigsHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/list_shop_configs"
	rescheduleBookingHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/reschedule_booking"
	resolveDropHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/resolve_drop"
	updateBookingStatusHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/update_booking_status"
	updateShopConfigHandler "github.com/strizhka/barbershop-booking/internal/api/handlers/update_shop_config"
	"github.com/strizhka/barbershop-booking/internal/api/middleware"
	"github.com/strizhka/barbershop-booking/internal/config"
	bookingRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/booking"
	configRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/config"
	staffServiceClient "github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	bookingsService "github.com/strizhka/barbershop-booking/internal/service/bookings"
	configService "github.com/strizhka/barbershop-booking/internal/service/config"
	createBookingUC "github.com/strizhka/barbershop-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/strizhka/barbershop-booking/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/strizhka/barbershop-booking/internal/usecase/reschedule_booking"
	resolveDropUC "github.com/strizhka/barbershop-booking/internal/usecase/resolve_drop"
	"github.com/strizhka/barbershop-booking/pkg/dbmetrics"
	"github.com/strizhka/barbershop-booking/pkg/logger"
	"github.com/strizhka/barbershop-booking/pkg/metrics"
	"github.com/strizhka/barbershop-booking/pkg/simpletxmanager"
	"github.com/strizhka/barbershop-booking/pkg/txmanager"
)

func main() {
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

	log.Info("Starting barbershop-booking service...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент StaffService: барбершопы, барберы, услуги и расписания
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("StaffService client initialized (url=%s, timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		configRepository  *configRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB, log)
		configRepository = configRepo.NewRepository(wrappedDB, log)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db, log)
		configRepository = configRepo.NewRepository(db, log)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		configRepository,
		staffClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		configRepository,
		staffClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		configRepository,
		staffClient,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		configRepository,
		staffClient,
		txMgr,
		log,
	)
	resolveDropUseCase := resolveDropUC.NewUseCase(
		bookingRepository,
		configRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getShopAgenda := getShopAgendaHandler.NewHandler(bookingSvc, log)
	resolveDrop := resolveDropHandler.NewHandler(resolveDropUseCase, log)
	getShopConfig := getShopConfigHandler.NewHandler(configSvc, log)
	listShopConfigs := listShopConfigsHandler.NewHandler(configSvc, log)
	updateShopConfig := updateShopConfigHandler.NewHandler(configSvc, log)
	deleteShopConfig := deleteShopConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты барбера для услуги на дату
	api.HandleFunc("/shops/{shopId}/barbers/{barberId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Эффективная конфигурация слотов барбершопа
	api.HandleFunc("/shops/{shopId}/slots-config",
		getShopConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// --- Дневная сетка барбершопа (для менеджеров) ---
	protected.HandleFunc("/shops/{shopId}/agenda", getShopAgenda.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/agenda/resolve-drop", resolveDrop.Handle).Methods(http.MethodPost)

	// --- Управление конфигурацией слотов (для менеджеров) ---
	protected.HandleFunc("/shops/{shopId}/slots-configs", listShopConfigs.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/slots-config", updateShopConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/shops/{shopId}/slots-configs/{configId}", deleteShopConfig.Handle).Methods(http.MethodDelete)

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
