package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/barberia-real/catalog-backend/internal/cfg"
	v1Http "github.com/barberia-real/catalog-backend/internal/delivery/v1/http"
	"github.com/barberia-real/catalog-backend/internal/infrastructure/kafka"
	"github.com/barberia-real/catalog-backend/internal/infrastructure/media"
	s3Repo "github.com/barberia-real/catalog-backend/internal/repository/minio"
	"github.com/barberia-real/catalog-backend/internal/repository/pgdb"
	pgdbConv "github.com/barberia-real/catalog-backend/internal/repository/pgdb/converter/generated"
	"github.com/barberia-real/catalog-backend/internal/repository/redis"
	redisConv "github.com/barberia-real/catalog-backend/internal/repository/redis/converter/generated"
	"github.com/barberia-real/catalog-backend/internal/usecase"
	"github.com/barberia-real/catalog-backend/pkg/clients"
	"github.com/barberia-real/catalog-backend/pkg/closer"
	"github.com/barberia-real/catalog-backend/pkg/e"
	"github.com/barberia-real/catalog-backend/pkg/logger"
	"github.com/barberia-real/catalog-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает конфигурацию, инфраструктуру и слои приложения.
type App struct {
	cfg    *config.Config
	logger logger.Logger
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	return &App{cfg: cfg, logger: logger}, nil
}

// Run поднимает зависимости, запускает HTTP-сервер и outbox worker
// и блокируется до сигнала завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	cfg := a.cfg
	log := a.logger

	// Контекст фоновых компенсаций: живёт дольше запросов,
	// отменяется последним при завершении приложения.
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	defer shutdownCancel()

	cl := closer.NewCloser(2 * time.Second)

	db, err := a.initPGDB()
	if err != nil {
		log.Errorf(err, "failed to initialize database")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	prConv := pgdbConv.NewProductConverterImpl()
	catConv := pgdbConv.NewCategoryConverterImpl()
	varConv := pgdbConv.NewVariationConverterImpl()
	imgConv := pgdbConv.NewImageConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	cacheConv := redisConv.NewProductConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv)
	variationRepo := pgdb.NewVariationRepo(db.Pool, varConv)
	imageRepo := pgdb.NewImageRepo(db.Pool, imgConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return err
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		log.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}
	minioCancel()

	mediaRepo := s3Repo.NewMediaRepo(minioClient, cfg.Minio)
	mediaInfra := media.NewMediaInfrastructure(mediaRepo, cfg.Minio, log, shutdownCtx)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, cacheConv, cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return err
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	workerCtx, workerCancel := context.WithCancel(context.Background())
	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	worker.Start(workerCtx)
	cl.Add(func(ctx context.Context) error {
		workerCancel()
		worker.Stop()
		return nil
	})

	productUC := usecase.NewProductUC(
		productRepo,
		variationRepo,
		imageRepo,
		outboxRepo,
		db.Pool,
		mediaInfra,
		cacheRepo,
		log,
	)
	categoryUC := usecase.NewCategoryUC(categoryRepo, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(productUC, categoryUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		log.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := httpSrv.Stop(stopCtx); err != nil {
		log.Errorf(err, "HTTP server shutdown error")
	} else {
		log.Infof("HTTP server stopped")
	}

	// Даём фоновым компенсациям дозавершиться перед закрытием клиентов.
	if err := mediaInfra.WaitForCleanup(stopCtx); err != nil {
		log.Warnf("Media cleanup error: %v", err)
	} else {
		log.Infof("Media cleanup completed")
	}

	if err := cl.Close(stopCtx); err != nil {
		log.Warnf("Close error: %v", err)
	}

	log.Infof("Application shutdown complete")
	return appErr
}

func (a *App) initPGDB() (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(a.cfg.Db)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(a.logger); err != nil {
		a.logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		a.logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
