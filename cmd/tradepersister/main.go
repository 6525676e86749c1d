// Command tradepersister consumes executed-trades events and writes each
// one to Postgres, replacing the teacher's executed-trades service — same
// consumer-group-plus-insert shape, generalized from protobuf
// ExecutedTradeEvent messages to the JSON model.ExecutedTrade this pipeline
// publishes.
package main

import (
	"log/slog"
	"os"

	"github.com/marketpulse-systems/itchbook/common"
	"github.com/marketpulse-systems/itchbook/common/database"
	"github.com/marketpulse-systems/itchbook/common/kafka"
)

const (
	defaultExecutedTopic = "executed-trades"
	defaultGroupID       = "tradepersister"
)

func main() {
	common.LoadDotEnv()
	common.InitServiceLogging("tradepersister")

	executedTopic, _ := common.GetEnv("EXECUTED_TRADES_TOPIC", defaultExecutedTopic)
	groupID, _ := common.GetEnv("CONSUMER_GROUP_ID", defaultGroupID)

	dbCfg := database.GetConfigFromEnv()
	db, err := database.ConnectWithRetries(dbCfg)
	if err != nil {
		slog.Error("critical error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureTableExists(db); err != nil {
		slog.Error("critical error ensuring trades table exists", "error", err)
		os.Exit(1)
	}

	handler := &tradeHandler{store: &sqlStore{db: db}}
	kafka.RunConsumerGroup(groupID, []string{executedTopic}, handler)
}
