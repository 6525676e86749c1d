// Command feedgateway accepts raw ITCH 5.0 message batches over HTTP and
// republishes each message onto Kafka, keyed by stock locate, for
// bookworker to decode and match. It replaces the teacher's afe service:
// same "thin intake in front of Kafka" role, HTTP instead of gRPC because
// posting a byte batch doesn't need protobuf's schema machinery.
package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/marketpulse-systems/itchbook/common"
	"github.com/marketpulse-systems/itchbook/common/grpcutil"
	"github.com/marketpulse-systems/itchbook/common/kafka"
)

const defaultRawTopic = "itch-raw"

func main() {
	common.LoadDotEnv()
	common.InitServiceLogging("feedgateway")

	rawTopic, _ := common.GetEnv("ITCH_RAW_TOPIC", defaultRawTopic)
	httpPort, _ := common.GetEnv("HTTP_PORT", uint16(8080))
	grpcPort, _ := common.GetEnv("GRPC_PORT", uint16(50051))

	producer, err := kafka.NewRawProducerWithLexicographicalPartitioner()
	if err != nil {
		slog.Error("failed to create raw producer", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	gw := newGateway(rawTopic, producer)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/itch/batch", gw.handleBatch)
	mux.HandleFunc("GET /healthz", handleHealthz)

	grpcServer, _ := grpcutil.NewHealthServer()
	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		slog.Error("failed to listen for grpc", "error", err)
		os.Exit(1)
	}

	var g errgroup.Group
	g.Go(func() error {
		slog.Info("http intake listening", "port", httpPort)
		return http.ListenAndServe(fmt.Sprintf(":%d", httpPort), mux)
	})
	g.Go(func() error {
		slog.Info("grpc health service listening", "addr", grpcLis.Addr())
		return grpcServer.Serve(grpcLis)
	})

	if err := g.Wait(); err != nil {
		slog.Error("feedgateway exited", "error", err)
		os.Exit(1)
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
