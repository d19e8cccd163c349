package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"campaign_go/internal/campaign"
	"campaign_go/internal/middleware"
	"campaign_go/internal/post"
	"campaign_go/pkg/analytics"
	"campaign_go/pkg/config"
	"campaign_go/pkg/logging"
	"campaign_go/pkg/monitoring"
	"campaign_go/pkg/redis"
	"campaign_go/pkg/snapshot"
	"campaign_go/pkg/storage"
	"campaign_go/pkg/telegram"
)

func main() {
	exportCampaign := flag.Int("export-campaign", 0, "записать аналитику кампании в JSON и выйти")
	exportPath := flag.String("out", "campaign_report.json", "путь файла для -export-campaign")
	flag.Parse()

	logger := logging.NewLogger()
	cfg, err := config.Load(logger)
	logger.SetLevel(config.GetLogLevel())
	log := logging.Component(logger, "main")
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	// Инициализация подключения к БД
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer dbConn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Проверка подключения
	if err := dbConn.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("Database ping failed")
	}

	db := storage.NewDB(dbConn, logger)
	if err := db.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("Schema migration failed")
	}

	if *exportCampaign > 0 {
		if err := runExport(ctx, db, logger, *exportCampaign, *exportPath); err != nil {
			log.WithError(err).Fatal("Export failed")
		}
		log.WithField("path", *exportPath).Info("Отчёт сохранён")
		return
	}

	metrics := monitoring.NewMetrics("campaign_go")
	refresher := snapshot.NewRefresher(
		db,
		telegram.NewFetcher(dbConn, logger),
		newThrottle(ctx, cfg, logger),
		metrics,
		snapshot.Options{TTL: cfg.SnapshotRefreshTTL, Delay: cfg.SnapshotDelay},
		logger,
	)

	snapshot.NewScheduler(db, refresher, cfg.SnapshotSchedule, logger).Start(ctx)

	gin.SetMode(cfg.GinMode)
	r := setupRouter(cfg, db, refresher, metrics, logger)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.WithField("port", cfg.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}

// newThrottle подключает Redis, если он задан; иначе троттлинг живёт в памяти процесса
func newThrottle(ctx context.Context, cfg *config.Config, logger logging.Logger) redis.Throttle {
	log := logging.Component(logger, "redis")
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL не задан, троттлинг обновлений в памяти")
		return redis.NewMemoryThrottle()
	}
	client, err := redis.NewClientFromURL(ctx, cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Redis недоступен, троттлинг обновлений в памяти")
		return redis.NewMemoryThrottle()
	}
	return redis.NewRedisThrottle(client, "snapshot:post:")
}

// runExport строит аналитику кампании и сохраняет её в файл
func runExport(ctx context.Context, db *storage.DB, logger logging.Logger, campaignID int, path string) error {
	if _, err := db.GetCampaignByID(ctx, campaignID); err != nil {
		return fmt.Errorf("кампания %d: %w", campaignID, err)
	}
	posts, err := db.GetPostsByCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	data := analytics.NewAggregator(logger).Build(campaignID, posts)
	return analytics.SaveToFile(data, path)
}

// Настройка маршрутов
func setupRouter(cfg *config.Config, db *storage.DB, refresher campaign.Refresher, metrics *monitoring.Metrics, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())

	// Health check и метрики доступны без токена
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/", middleware.AuthRequired(cfg.APIToken))

	campaign.SetupRoutes(api.Group("/campaign"), campaign.NewHandler(db, refresher, metrics, logger))
	post.SetupRoutes(api.Group("/post"), post.NewHandler(db, logger))

	if cfg.APIToken == "" {
		logging.Component(logger, "router").Warn("API_TOKEN не задан, проверка токена отключена")
	}
	logging.Component(logger, "router").WithField("routes", len(r.Routes())).Info("Routes initialized")
	return r
}
