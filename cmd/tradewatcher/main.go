// Command tradewatcher tails executed-trades and logs each fill, replacing
// the teacher's executed-consumer service — same tail-and-log shape,
// generalized from protobuf ExecutedTradeEvent to the JSON
// model.ExecutedTrade this pipeline publishes, and from log.Printf to
// structured slog the way every other service in this pipeline logs.
package main

import (
	"log/slog"

	"github.com/marketpulse-systems/itchbook/common"
	"github.com/marketpulse-systems/itchbook/common/kafka"
)

const (
	defaultExecutedTopic = "executed-trades"
	defaultGroupID       = "tradewatcher"
)

func main() {
	common.LoadDotEnv()
	common.InitServiceLogging("tradewatcher")

	executedTopic, _ := common.GetEnv("EXECUTED_TRADES_TOPIC", defaultExecutedTopic)
	groupID, _ := common.GetEnv("CONSUMER_GROUP_ID", defaultGroupID)

	slog.Info("starting trade watcher", "topic", executedTopic, "group_id", groupID)
	kafka.RunConsumerGroup(groupID, []string{executedTopic}, &watchHandler{})
}
