package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/hetulpatel/valorfinder/internal/config"
	kafkautil "github.com/hetulpatel/valorfinder/internal/kafka"
	"github.com/hetulpatel/valorfinder/internal/logging"
	"github.com/hetulpatel/valorfinder/internal/models"
	"github.com/hetulpatel/valorfinder/internal/workers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	brokers := kafkautil.Brokers()
	if len(brokers) == 0 {
		logging.Fatalf("[picks-worker] KAFKA_BROKERS is required")
	}
	topic := kafkautil.TopicFromEnv("PICKS_KAFKA_TOPIC", kafkautil.DefaultPicksTopic)
	group := config.EnvString("PICKS_WORKER_GROUP", "picks-worker")
	workerCount := config.EnvInt("PICKS_WORKER_COUNT", 1)

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	if err := kafkautil.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Fatalf("[picks-worker] wait for broker: %v", err)
	}
	cancel()

	logging.Infof("[picks-worker] consuming %s with group %s (%d workers)", topic, group, workerCount)
	workers.Run(ctx, brokers, topic, group, workerCount, handlePick)
}

func handlePick(_ context.Context, pick *models.Pick) error {
	if pick == nil || len(pick.Match.Markets) == 0 {
		return nil
	}
	best := pick.Match.Markets[0]
	logging.Infof("[picks-worker] %s: %s vs %s (%s) market=%q ev=%.2f%% odds=%.2f conf=%d",
		pick.Date, pick.Match.HomeTeam, pick.Match.AwayTeam, pick.Match.League,
		best.Market, best.EVPercentage, best.BookmakerOdds, best.ConfidenceScore)
	return nil
}
