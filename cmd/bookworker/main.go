// Command bookworker is the heart of the pipeline: it consumes raw ITCH
// bytes from Kafka, decodes and matches them per symbol with internal/itch
// and internal/book via internal/engine, and republishes the results.
// Replaces the teacher's worker service; same consumer-group-plus-producer
// shape, generalized from a single synthetic order book to one book per
// instrument and from protobuf TradeEvents to raw ITCH message bytes.
package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/marketpulse-systems/itchbook/common"
	cfgpkg "github.com/marketpulse-systems/itchbook/common/config"
	rediscache "github.com/marketpulse-systems/itchbook/common/cache/redis"
	"github.com/marketpulse-systems/itchbook/common/grpcutil"
	"github.com/marketpulse-systems/itchbook/common/kafka"
	"github.com/marketpulse-systems/itchbook/internal/engine"
	"github.com/marketpulse-systems/itchbook/internal/streaming"
)

const (
	defaultRawTopic       = "itch-raw"
	defaultExecutedTopic  = "executed-trades"
	defaultSnapshotTopic  = "book-snapshots"
	defaultConsumerGroup  = "bookworker"
)

func main() {
	common.LoadDotEnv()
	common.InitServiceLogging("bookworker")

	rawTopic, _ := common.GetEnv("ITCH_RAW_TOPIC", defaultRawTopic)
	executedTopic, _ := common.GetEnv("EXECUTED_TRADES_TOPIC", defaultExecutedTopic)
	snapshotTopic, _ := common.GetEnv("BOOK_SNAPSHOTS_TOPIC", defaultSnapshotTopic)
	groupID, _ := common.GetEnv("CONSUMER_GROUP_ID", defaultConsumerGroup)
	httpPort, _ := common.GetEnv("HTTP_PORT", uint16(8081))
	grpcPort, _ := common.GetEnv("GRPC_PORT", uint16(50052))
	configPath, _ := common.GetEnv("BOOKWORKER_CONFIG", "")

	cfg, err := cfgpkg.Load(configPath)
	if err != nil {
		slog.Error("failed to load bookworker config", "error", err)
		os.Exit(1)
	}

	rdb, err := rediscache.ConnectWithRetries(cfg.RedisAddr)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	cache := rediscache.NewSnapshotCache(rdb)

	executedProducer, err := kafka.NewJSONProducerWithLexicographicalPartitioner()
	if err != nil {
		slog.Error("failed to create executed-trades producer", "error", err)
		os.Exit(1)
	}
	defer executedProducer.Close()

	snapshotProducer, err := kafka.NewJSONProducerWithLexicographicalPartitioner()
	if err != nil {
		slog.Error("failed to create book-snapshots producer", "error", err)
		os.Exit(1)
	}
	defer snapshotProducer.Close()

	hub := streaming.NewHub()
	go hub.Run()

	pub := &publisher{
		executedTopic: executedTopic,
		snapshotTopic: snapshotTopic,
		executed:      executedProducer,
		snapshots:     snapshotProducer,
		cache:         cache,
		hub:           hub,
	}

	eng := engine.New(engine.Config{OrdersPerSymbol: cfg.Book.OrdersPerSymbol}, pub.PublishFill, nil)

	snapper := newSnapshotter(eng, pub, cfg.SnapshotInterval.Duration, cfg.Book.SnapshotThreshold)
	snapper.Start()
	defer snapper.Stop()

	handler := newConsumerHandler(eng, snapper)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	mux.HandleFunc("GET /v1/book/{symbol}", newBookHandler(eng))
	mux.HandleFunc("GET /v1/stream", hub.ServeWS)

	grpcServer, _ := grpcutil.NewHealthServer()
	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		slog.Error("failed to listen for grpc", "error", err)
		os.Exit(1)
	}

	var g errgroup.Group
	g.Go(func() error {
		slog.Info("http api listening", "port", httpPort)
		return http.ListenAndServe(fmt.Sprintf(":%d", httpPort), mux)
	})
	g.Go(func() error {
		slog.Info("grpc health service listening", "addr", grpcLis.Addr())
		return grpcServer.Serve(grpcLis)
	})
	g.Go(func() error {
		kafka.RunConsumerGroup(groupID, []string{rawTopic}, handler)
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("bookworker exited", "error", err)
		os.Exit(1)
	}
}
