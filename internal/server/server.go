package server

import (
	"backend-geolog/internal/archive"
	"backend-geolog/internal/auth"
	"backend-geolog/internal/config"
	"backend-geolog/internal/kv"
	"backend-geolog/internal/location"
	"backend-geolog/internal/recorder"
	"backend-geolog/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func archiveStore(s *Server) kv.Store {
	if s.Cfg.ArchiveBackend == "postgres" && s.DB != nil {
		return kv.NewPostgresStore(s.DB)
	}
	return kv.NewRedisStore(s.Redis)
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	archiveSvc := archive.NewService(archiveStore(s), s.Cfg.ArchiveKey)
	provider := location.NewHTTPProvider(s.Cfg.LocationURL)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.Cfg.DeviceKeyHash))
	recorder.RegisterRoutes(s.App.Group("/recorder"), recorder.NewService(provider, archiveSvc, s.Stream), jwtMiddleware)
	archive.RegisterRoutes(s.App.Group("/archive"), archiveSvc, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
