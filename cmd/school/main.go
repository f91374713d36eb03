package main

import (
	"context"
	"errors"
	"hogwarts-school/cockroachdb/migrations"
	"hogwarts-school/internal/config"
	delivery "hogwarts-school/internal/delivery/http"
	"hogwarts-school/internal/delivery/http/utils"
	"hogwarts-school/internal/repo"
	"hogwarts-school/internal/repo/cockroach"
	"hogwarts-school/internal/repo/disk"
	"hogwarts-school/internal/repo/kafka"
	"hogwarts-school/internal/repo/objectstore"
	"hogwarts-school/internal/usecase/service"
	"hogwarts-school/pkg/connector"
	"hogwarts-school/pkg/goosehelper"
	"hogwarts-school/pkg/retry"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка в конфигурации: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cockroach
	var DBConn *sqlx.DB
	err = retry.Retry(ctx, func() error {
		DBConn, err = connector.GetCockroachConnector(ctx, cfg.DBConnectDSN)
		return err
	})
	if err != nil {
		log.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer func() {
		if err := DBConn.Close(); err != nil {
			log.Errorf("Ошибка при закрытии соединения с базой данных: %v", err)
		}
	}()
	var migrationsFS fs.FS = migrations.Migrations
	if cfg.MigrationsDir != "" {
		migrationsFS = os.DirFS(cfg.MigrationsDir)
	}
	if err = goosehelper.MigrateUp(ctx, DBConn.DB, migrationsFS, "."); err != nil {
		log.Fatalf("Ошибка при применении миграций: %v", err)
	}

	// хранилище файлов аватаров
	var blobRepo repo.Blob
	switch cfg.AvatarStorage {
	case config.StorageMinio:
		minioClient, err := connector.GetMinioConnector(ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.Fatalf("Ошибка при подключении к MinIO: %v", err)
		}
		blobRepo, err = objectstore.NewBlob(ctx, minioClient, cfg.Minio.Bucket)
		if err != nil {
			log.Fatalf("Ошибка при создании хранилища MinIO: %v", err)
		}
	default:
		blobRepo = disk.NewBlob()
	}

	// kafka необязательна: без брокеров события загрузки не публикуются
	var eventRepo repo.AvatarEventRepository
	if len(cfg.KafkaBrokers) > 0 {
		kafkaRepo, err := kafka.NewAvatarEventKafkaRepository(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("Ошибка при подключении к Kafka: %v", err)
		}
		defer func() {
			if err := kafkaRepo.Close(); err != nil {
				log.Errorf("Ошибка при закрытии соединения с Kafka: %v", err)
			}
		}()
		eventRepo = kafkaRepo
	} else {
		log.Info("KAFKA_BROKERS не задан, события аватаров отключены")
	}

	// запускаем сервисы репозиториев (подключение к базе данных)
	studentRepo := cockroach.NewStudent(DBConn)
	facultyRepo := cockroach.NewFaculty(DBConn)
	avatarRepo := cockroach.NewAvatar(DBConn)

	// запускаем сервисы usecase (бизнес-логика)
	studentUseCase := service.NewStudent(studentRepo, facultyRepo)
	facultyUseCase := service.NewFaculty(facultyRepo, studentRepo)
	avatarUseCase := service.NewAvatar(cfg.AvatarsDir, studentRepo, avatarRepo, blobRepo, eventRepo)

	// запускаем сервисы delivery (обработка запросов)
	studentDelivery := delivery.NewStudent(studentUseCase)
	facultyDelivery := delivery.NewFaculty(facultyUseCase)
	avatarDelivery := delivery.NewAvatar(avatarUseCase)

	// REST API
	echoServer := echo.New()
	echoServer.Logger.SetLevel(cfg.LogLevel)
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.BodyLimit(cfg.BodyLimit))
	// gzip на прием
	echoServer.Use(middleware.Decompress())
	// gzip на отдачу; поток событий не сжимаем, иначе он буферизуется
	echoServer.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/avatar/events"
		},
	}))
	echoServer.Use(middleware.RequestID())
	echoServer.Use(utils.CORS(cfg.CORSOrigin))

	// Endpoints
	students := echoServer.Group("/student")
	studentDelivery.Configure(students)
	avatarDelivery.ConfigureStudent(students)
	faculties := echoServer.Group("/faculty")
	facultyDelivery.Configure(faculties)
	avatars := echoServer.Group("/avatar")
	avatarDelivery.Configure(avatars)

	go func(server *echo.Echo) {
		if err := server.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Logger.Fatalf("Сервер завершил свою работу по причине: %v", err)
		}
	}(echoServer)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := echoServer.Shutdown(shutdownCtx); err != nil {
		echoServer.Logger.Errorf("Во время выключения сервера возникла ошибка: %v", err)
	}
}
