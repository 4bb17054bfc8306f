package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/davicafu/hexaplaces/internal/config"
	placeApp "github.com/davicafu/hexaplaces/internal/place/application"
	placeDomain "github.com/davicafu/hexaplaces/internal/place/domain"
	placeHttp "github.com/davicafu/hexaplaces/internal/place/infra/inbound/http"
	placeRepo "github.com/davicafu/hexaplaces/internal/place/infra/outbound/db/mongodb"
	sharedEvents "github.com/davicafu/hexaplaces/internal/shared/events"
	infraEvents "github.com/davicafu/hexaplaces/internal/shared/infra/events"
	sharedBus "github.com/davicafu/hexaplaces/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexaplaces/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexaplaces/internal/shared/infra/platform/db/sqlstore"
	"github.com/davicafu/hexaplaces/internal/shared/infra/storage/filesystem"
	"github.com/davicafu/hexaplaces/internal/shared/infra/web"
	userApp "github.com/davicafu/hexaplaces/internal/user/application"
	userDomain "github.com/davicafu/hexaplaces/internal/user/domain"
	userHttp "github.com/davicafu/hexaplaces/internal/user/infra/inbound/http"
	userRepo "github.com/davicafu/hexaplaces/internal/user/infra/outbound/db/sqlstore"
	"github.com/davicafu/hexaplaces/pkg/logger"
)

const uploadsPath = "/uploads"

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv) // inicializa zap
	log := logger.Logger()
	defer log.Sync() // flush buffers al salir

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------- MongoDB (places) ----------------
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	placeRepoMongo, err := placeRepo.NewPlaceRepoMongoDB(ctx, mongoClient, cfg.MongoDBName)
	if err != nil {
		log.Fatal("failed to init place repository", zap.Error(err))
	}
	if err := placeRepoMongo.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to create place indexes", zap.Error(err))
	}

	// ---------------- SQL (users) ----------------
	db, dialect, err := sqlstore.Open(ctx, cfg.SQLDriver, cfg.SQLDSN)
	if err != nil {
		log.Fatal("failed to open SQL database", zap.Error(err))
	}
	defer db.Close()

	userRepoSQL := userRepo.NewUserRepoSQL(db, dialect)
	if err := userRepoSQL.InitSchema(ctx); err != nil {
		log.Fatal("failed to initialize users schema", zap.Error(err))
	}

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb, err := sharedCache.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		log.Warn("Redis no disponible, cache en memoria", zap.Error(err))
		memCache := sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
		defer memCache.Stop()
		cacheInstance = memCache
	} else {
		defer rdb.Close()
		cacheInstance = sharedCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("Redis conectado, cache habilitado", zap.String("addr", cfg.RedisAddr))
	}

	// ---------------- Imágenes ----------------
	images, err := filesystem.NewImageStorage(cfg.UploadDir, uploadsPath, cfg.UploadMaxSize)
	if err != nil {
		log.Fatal("failed to init image storage", zap.Error(err))
	}

	// ---------------- Events ---------------
	registry := sharedEvents.Merge(placeDomain.NewEventRegistry(), userDomain.NewEventRegistry())
	invalidator := infraEvents.NewCacheInvalidator(cacheInstance, registry, log)

	var eventBus sharedBus.EventBus
	if cfg.UseKafka {
		log.Info("Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))

		writer := infraEvents.NewKafkaWriter(cfg.KafkaBrokers)
		defer writer.Close()
		eventBus = infraEvents.NewKafkaPublisher(writer, registry, log)

		for _, topic := range registry.Topics() {
			// El adapter cierra el reader al cancelar ctx.
			reader := infraEvents.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaGroupID, topic)
			infraEvents.NewConsumerAdapter(reader, invalidator, log).Start(ctx)
		}
	} else {
		log.Info("Usando bus de eventos en memoria (canales de Go)")

		bus := infraEvents.NewInMemoryEventBus()
		eventBus = bus
		infraEvents.BackgroundConsumerChan(ctx, bus.Subscribe(100), invalidator, log)
	}

	// --------------- Servicios --------------
	placeService := placeApp.NewPlaceService(placeRepoMongo, cacheInstance, eventBus, images, cfg.CacheTTL, log)
	userService := userApp.NewUserService(userRepoSQL, cacheInstance, eventBus, images, cfg.CacheTTL, log)

	// ---------------- HTTP ----------------
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), web.RequestLogger(log))
	router.MaxMultipartMemory = cfg.UploadMaxSize
	router.Static(uploadsPath, images.Dir())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/hello-world", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World!"})
	})
	placeHttp.RegisterPlaceRoutes(api, placeHttp.NewPlaceHandler(placeService, cfg.MaxItemsPage))
	userHttp.RegisterUserRoutes(api, userHttp.NewUserHandler(userService, cfg.MaxItemsPage))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}
