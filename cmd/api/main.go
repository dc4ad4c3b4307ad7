package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/Despachos-api/docs"
	"github.com/jhoicas/Despachos-api/internal/application/auth"
	"github.com/jhoicas/Despachos-api/internal/application/catalog"
	"github.com/jhoicas/Despachos-api/internal/application/outbound"
	"github.com/jhoicas/Despachos-api/internal/domain/loadplan"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
	"github.com/jhoicas/Despachos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Despachos-api/internal/infrastructure/messaging/rabbitmq"
	infrapdf "github.com/jhoicas/Despachos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Despachos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Despachos-api/internal/interfaces/http"
	"github.com/jhoicas/Despachos-api/pkg/config"
	"github.com/jhoicas/Despachos-api/pkg/logger"
	"github.com/jhoicas/Despachos-api/pkg/tracing"
)

// @title                       Despachos API
// @version                     1.0
// @description                 Órdenes de salida de bodega con plan de carga por camión.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Float64("capacidad_kg", cfg.Planner.VehicleCapacityKg).
		Msg("iniciando aplicación")

	ctx := context.Background()

	_, shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Endpoint:    cfg.OTel.Endpoint,
		SampleRatio: cfg.OTel.SampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	productRepo := postgres.NewProductRepository(pool)
	var products repository.ProductRepository = productRepo
	var catalogCache catalog.Invalidator
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, el catálogo consultará PostgreSQL")
		}
		cached := cache.NewProductCatalog(rdb, productRepo, cfg.Redis.TTL, log)
		products = cached
		catalogCache = cached
	}

	var publisher outbound.EventPublisher
	if cfg.AMQP.URL != "" {
		conn, ch, err := rabbitmq.SetupConn(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer conn.Close()
		defer ch.Close()
		publisher = rabbitmq.NewPublisher(ch, cfg.AMQP.Exchange)
	}

	stockRepo := postgres.NewStockRepository(pool)
	orderRepo := postgres.NewOutboundOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	outboundUC := outbound.NewUseCase(
		outbound.NewOrderValidator(products, stockRepo),
		loadplan.NewPlanner(cfg.Planner.VehicleCapacityKg),
		txRunner,
		orderRepo,
		publisher,
		infrapdf.NewManifestGenerator(cfg.App.Name),
		log,
	)
	catalogUC := catalog.NewUseCase(products, productRepo, stockRepo, catalogCache, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestMiddleware(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Despachos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OutboundUC: outboundUC,
		CatalogUC:  catalogUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
