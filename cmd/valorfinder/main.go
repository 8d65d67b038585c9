package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/hetulpatel/valorfinder/internal/cache"
	"github.com/hetulpatel/valorfinder/internal/config"
	kafkautil "github.com/hetulpatel/valorfinder/internal/kafka"
	"github.com/hetulpatel/valorfinder/internal/ledger"
	"github.com/hetulpatel/valorfinder/internal/llm"
	"github.com/hetulpatel/valorfinder/internal/logging"
	"github.com/hetulpatel/valorfinder/internal/matches"
	"github.com/hetulpatel/valorfinder/internal/queue"
	"github.com/hetulpatel/valorfinder/internal/server"
	"github.com/hetulpatel/valorfinder/internal/source"
	sqlstore "github.com/hetulpatel/valorfinder/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logging.InitFromEnv()
	cfg := config.Load()

	llmClient, err := llm.New(llm.Config{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
	})
	if err != nil {
		logging.Fatalf("[valorfinder] llm client: %v", err)
	}
	src, err := source.NewClient(llmClient)
	if err != nil {
		logging.Fatalf("[valorfinder] match source: %v", err)
	}

	store := openCacheStore(cfg)
	defer store.Close()
	fresh := cache.NewFreshness(store, cfg.CacheWindow)

	betStore, err := sqlstore.Open(cfg.SQLitePath)
	if err != nil {
		logging.Fatalf("[valorfinder] open sqlite: %v", err)
	}
	defer betStore.Close()

	betLedger, err := ledger.Open(ctx, betStore)
	if err != nil {
		logging.Fatalf("[valorfinder] open ledger: %v", err)
	}

	publisher := setupPublisher(ctx)
	defer publisher.Close()

	feed := matches.NewService(src, fresh, publisher)
	srv := server.New(feed, betLedger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Router(cfg.AllowedOrigins),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logging.Infof("[valorfinder] listening on %s", cfg.HTTPAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatalf("[valorfinder] serve: %v", err)
	}
}

func openCacheStore(cfg config.Config) cache.Store {
	if cfg.RedisAddr == "" {
		logging.Infof("[valorfinder] REDIS_ADDR not set, using in-memory cache")
		return cache.NewMemoryStore()
	}
	store, err := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logging.Fatalf("[valorfinder] redis cache: %v", err)
	}
	return store
}

func setupPublisher(ctx context.Context) *queue.PickPublisher {
	brokers := kafkautil.Brokers()
	if len(brokers) == 0 {
		return queue.NewPickPublisher(nil)
	}
	topic := kafkautil.TopicFromEnv("PICKS_KAFKA_TOPIC", kafkautil.DefaultPicksTopic)

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()
	if err := kafkautil.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Errorf("[valorfinder] kafka unavailable, publishing disabled: %v", err)
		return queue.NewPickPublisher(nil)
	}

	ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
	defer cancelEnsure()
	if err := kafkautil.EnsureTopic(ensureCtx, brokers, topic); err != nil {
		logging.Errorf("[valorfinder] ensure topic warning: %v", err)
	}

	logging.Infof("[valorfinder] publishing picks to %s", topic)
	return queue.NewPickPublisher(kafkautil.NewWriter(brokers, topic))
}
