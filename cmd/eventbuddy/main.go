package main

import (
	"context"
	"database/sql"
	"time"

	assistantApp "github.com/annaclara1997/event-buddy-project/internal/assistant/application"
	assistantHttp "github.com/annaclara1997/event-buddy-project/internal/assistant/infra/inbound/http"
	catalogApp "github.com/annaclara1997/event-buddy-project/internal/catalog/application"
	catalogHttp "github.com/annaclara1997/event-buddy-project/internal/catalog/infra/inbound/http"
	config "github.com/annaclara1997/event-buddy-project/internal/config"
	membershipApp "github.com/annaclara1997/event-buddy-project/internal/membership/application"
	membershipDomain "github.com/annaclara1997/event-buddy-project/internal/membership/domain"
	membershipHttp "github.com/annaclara1997/event-buddy-project/internal/membership/infra/inbound/http"
	"github.com/annaclara1997/event-buddy-project/internal/membership/infra/outbound/analytics/clickhouse"
	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"
	sharedEvents "github.com/annaclara1997/event-buddy-project/internal/shared/events"
	sharedCacheInfra "github.com/annaclara1997/event-buddy-project/internal/shared/infra/cache"
	"github.com/annaclara1997/event-buddy-project/internal/shared/infra/db/mongodb"
	"github.com/annaclara1997/event-buddy-project/internal/shared/infra/db/postgres"
	"github.com/annaclara1997/event-buddy-project/internal/shared/infra/db/sqlite"
	infraEvents "github.com/annaclara1997/event-buddy-project/internal/shared/infra/events"
	sharedBus "github.com/annaclara1997/event-buddy-project/internal/shared/infra/platform/bus"
	sharedCache "github.com/annaclara1997/event-buddy-project/internal/shared/infra/platform/cache"

	"github.com/annaclara1997/event-buddy-project/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// ---------------- Main ----------------
func main() {
	logger.Init()          // inicializa zap
	log := logger.Logger() // logger estruturado
	defer log.Sync()       // flush dos buffers à saída

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	// ---------------- Store ----------------
	var store sharedDomain.Store

	if cfg.LocalDeployment {
		log.Info("⚡️ Deployment local: documentos em SQLite", zap.String("path", cfg.SQLitePath))

		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			log.Fatal("failed to open SQLite", zap.Error(err))
		}
		defer db.Close()

		if err := sqlite.InitSQLite(db); err != nil {
			log.Fatal("failed to initialize SQLite", zap.Error(err))
		}

		store = sqlite.NewDocStoreSQLite(db)
	} else if cfg.PostgresDSN != "" {
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Fatal("failed to open PostgreSQL", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.InitPostgres(ctx, db); err != nil {
			log.Fatal("failed to initialize PostgreSQL", zap.Error(err))
		}
		log.Info("✅ PostgreSQL conectado, documentos em JSONB")

		store = postgres.NewDocStorePostgres(db)
	} else {
		ctxConn, cancelConn := context.WithTimeout(ctx, 10*time.Second)
		defer cancelConn()

		client, err := mongo.Connect(ctxConn, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(context.Background())

		mongoStore, err := mongodb.NewDocStoreMongo(ctxConn, client, cfg.MongoDBName)
		if err != nil {
			log.Fatal("failed to ping MongoDB", zap.Error(err))
		}
		log.Info("✅ MongoDB conectado", zap.String("db", cfg.MongoDBName))
		store = mongoStore
	}

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis não disponível, cache em memória:", zap.Error(err))
		cacheInstance = sharedCacheInfra.NewInMemoryCache(cfg.SnapshotTTL, 3*cfg.SnapshotTTL)
	} else {
		cacheInstance = sharedCacheInfra.NewRedisCache(rdb, cfg.SnapshotTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Events ---------------
	var toggledPublisher sharedBus.EventBus

	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos")

		toggledWriter := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   sharedEvents.MembershipToggledType,
		})
		defer toggledWriter.Close()

		toggledPublisher = infraEvents.NewKafkaPublisher(toggledWriter, log)
	} else {
		log.Info("⚡️ Usando bus de eventos em memória (canais de Go)")

		inMemoryBus := infraEvents.NewInMemoryEventBus(sharedEvents.MembershipToggledType)
		toggledPublisher = inMemoryBus

		// listener local: só regista os toggles no log
		toggledChannel := inMemoryBus.Subscribe(10)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case evt := <-toggledChannel:
					log.Debug("🎧 membership.toggled recebido", zap.Any("event", evt))
				}
			}
		}()
	}

	// ---------------- Audit ----------------
	var auditor membershipDomain.ToggleAuditor
	var partialRates membershipHttp.PartialRater
	if cfg.AuditEnabled {
		auditRepo, err := clickhouse.NewToggleAuditRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse não disponível, audit de toggles desligado", zap.Error(err))
		} else {
			log.Info("✅ ClickHouse conectado, audit de toggles ligado")
			auditor = auditRepo
			partialRates = auditRepo
		}
	}

	// --------------- Serviços --------------
	snapshotService := catalogApp.NewSnapshotService(store, cacheInstance, cfg.SnapshotTTL, log)
	membershipService := membershipApp.NewMembershipService(store, toggledPublisher, auditor, log)
	assistantService := assistantApp.NewAssistantService(cfg.ThinkingDelay, log)

	// ------------- Reconciler --------------
	reconciler := membershipApp.NewReconciler(store, cfg.ReconcileInterval, log)
	reconciler.Start(ctx)

	// ---------------- HTTP ----------------
	catalogHandler := catalogHttp.NewCatalogHandler(snapshotService)
	membershipHandler := membershipHttp.NewMembershipHandler(membershipService, snapshotService, partialRates)
	assistantHandler := assistantHttp.NewAssistantHandler(assistantService, snapshotService)

	router := gin.Default()
	catalogHttp.RegisterCatalogRoutes(router, catalogHandler)
	membershipHttp.RegisterMembershipRoutes(router, membershipHandler)
	assistantHttp.RegisterAssistantRoutes(router, assistantHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
