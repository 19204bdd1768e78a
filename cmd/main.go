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

	createAttendanceHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/create_attendance"
	createCourseSlotsHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/create_course_slots"
	deleteAttendanceHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/delete_attendance"
	deleteCourseSlotHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/delete_course_slot"
	getCourseConvocationHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/get_course_convocation"
	listAttendancesHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/list_attendances"
	listCourseHistoryHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/list_course_history"
	listCourseSlotsHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/list_course_slots"
	listUnsubscribedHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/list_unsubscribed_attendances"
	updateCourseSlotHandler "github.com/m04kA/SMC-CourseService/internal/api/handlers/update_course_slot"
	"github.com/m04kA/SMC-CourseService/internal/api/middleware"
	"github.com/m04kA/SMC-CourseService/internal/config"
	attendanceRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/attendance"
	courseRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/course"
	courseHistoryRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/coursehistory"
	courseSlotRepo "github.com/m04kA/SMC-CourseService/internal/infra/storage/courseslot"
	userServiceClient "github.com/m04kA/SMC-CourseService/internal/integrations/userservice"
	attendancesService "github.com/m04kA/SMC-CourseService/internal/service/attendances"
	conflictsService "github.com/m04kA/SMC-CourseService/internal/service/conflicts"
	convocationsService "github.com/m04kA/SMC-CourseService/internal/service/convocations"
	slotsService "github.com/m04kA/SMC-CourseService/internal/service/slots"
	createCourseSlotsUC "github.com/m04kA/SMC-CourseService/internal/usecase/create_course_slots"
	updateCourseSlotUC "github.com/m04kA/SMC-CourseService/internal/usecase/update_course_slot"
	"github.com/m04kA/SMC-CourseService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourseService/pkg/logger"
	"github.com/m04kA/SMC-CourseService/pkg/metrics"
	"github.com/m04kA/SMC-CourseService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CourseService/pkg/txmanager"
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

	log.Info("Starting SMC-CourseService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочий часовой пояс для планирования на весь день
	businessTZ, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Failed to load scheduling timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", cfg.Scheduling.Timezone)

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

	// Инициализируем интеграционного клиента
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository       *courseSlotRepo.Repository
		historyRepository    *courseHistoryRepo.Repository
		attendanceRepository *attendanceRepo.Repository
		courseRepository     *courseRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = courseSlotRepo.NewRepository(wrappedDB)
		historyRepository = courseHistoryRepo.NewRepository(wrappedDB)
		attendanceRepository = attendanceRepo.NewRepository(wrappedDB)
		courseRepository = courseRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = courseSlotRepo.NewRepository(db)
		historyRepository = courseHistoryRepo.NewRepository(db)
		attendanceRepository = attendanceRepo.NewRepository(db)
		courseRepository = courseRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	conflictChecker := conflictsService.NewChecker(slotRepository, log)
	slotSvc := slotsService.NewService(
		slotRepository,
		historyRepository,
		courseRepository,
		txMgr,
		log,
	)
	attendanceSvc := attendancesService.NewService(
		attendanceRepository,
		slotRepository,
		courseRepository,
		userClient,
		log,
	)
	convocationSvc := convocationsService.NewService(
		slotRepository,
		courseRepository,
		log,
	)

	// Инициализируем use cases
	createCourseSlotsUseCase := createCourseSlotsUC.NewUseCase(
		slotRepository,
		courseRepository,
		historyRepository,
		txMgr,
		log,
	)

	updateCourseSlotUseCase := updateCourseSlotUC.NewUseCase(
		slotRepository,
		courseRepository,
		historyRepository,
		conflictChecker,
		txMgr,
		log,
		businessTZ,
	)

	// Инициализируем handlers
	createCourseSlots := createCourseSlotsHandler.NewHandler(createCourseSlotsUseCase, log)
	updateCourseSlot := updateCourseSlotHandler.NewHandler(updateCourseSlotUseCase, log)
	deleteCourseSlot := deleteCourseSlotHandler.NewHandler(slotSvc, log)
	listCourseSlots := listCourseSlotsHandler.NewHandler(slotSvc, log)
	listCourseHistory := listCourseHistoryHandler.NewHandler(slotSvc, log)
	listAttendances := listAttendancesHandler.NewHandler(attendanceSvc, log)
	createAttendance := createAttendanceHandler.NewHandler(attendanceSvc, log)
	deleteAttendance := deleteAttendanceHandler.NewHandler(attendanceSvc, log)
	listUnsubscribed := listUnsubscribedHandler.NewHandler(attendanceSvc, log)
	getCourseConvocation := getCourseConvocationHandler.NewHandler(convocationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Курсы ---
	// Слоты курса
	protected.HandleFunc("/courses/{courseId}/slots", listCourseSlots.Handle).Methods(http.MethodGet)

	// Содержимое приглашения на курс
	protected.HandleFunc("/courses/{courseId}/convocation", getCourseConvocation.Handle).Methods(http.MethodGet)

	// --- Слоты ---
	// Пакетное создание незапланированных слотов
	protected.HandleFunc("/course-slots", createCourseSlots.Handle).Methods(http.MethodPost)

	// Планирование, перенос, снятие с расписания, ограничение стажеров
	protected.HandleFunc("/course-slots/{slotId}", updateCourseSlot.Handle).Methods(http.MethodPut)

	// Удаление слота
	protected.HandleFunc("/course-slots/{slotId}", deleteCourseSlot.Handle).Methods(http.MethodDelete)

	// Журнал изменений расписания курса
	protected.HandleFunc("/courses/{courseId}/history", listCourseHistory.Handle).Methods(http.MethodGet)

	// --- Посещаемость ---
	// Список посещаемости по курсу или слоту
	protected.HandleFunc("/attendances", listAttendances.Handle).Methods(http.MethodGet)

	// Отметка посещения (одного стажера или всего состава)
	protected.HandleFunc("/attendances", createAttendance.Handle).Methods(http.MethodPost)

	// Снятие отметки посещения
	protected.HandleFunc("/attendances", deleteAttendance.Handle).Methods(http.MethodDelete)

	// Посещения стажеров вне состава курса
	protected.HandleFunc("/attendances/unsubscribed", listUnsubscribed.Handle).Methods(http.MethodGet)

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
