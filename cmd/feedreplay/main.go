// Command feedreplay posts a captured (or synthesized) ITCH message stream
// to a running feedgateway instance, batch by batch. Replaces the teacher's
// client, a flag-driven, log.Printf-based CLI hitting one gRPC endpoint;
// feedreplay keeps that shape — flags, a single HTTP call per invocation
// unit, log.Printf-style text output via common.InitCLILogging — aimed at
// feedgateway's HTTP intake instead of AFE's gRPC SubmitTrade.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/marketpulse-systems/itchbook/common"
)

var (
	gatewayAddr = flag.String("gateway", "http://localhost:8080", "feedgateway base URL")
	inputFile   = flag.String("file", "", "path to a captured ITCH message stream; if empty, a synthetic stream is generated")
	symbols     = flag.String("symbols", "AAPL,MSFT,GOOG", "comma-separated symbols to synthesize orders for")
	count       = flag.Int("count", 1000, "number of synthetic messages to generate when -file is empty")
	batchSize   = flag.Int("batch", 200, "messages per HTTP batch")
)

func main() {
	flag.Parse()
	common.InitCLILogging()

	var stream []byte
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			slog.Error("failed to read itch file", "path", *inputFile, "error", err)
			os.Exit(1)
		}
		stream = data
	} else {
		stream = synthesize(splitSymbols(*symbols), *count)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	sent, failed := 0, 0

	for offset := 0; offset < len(stream); {
		end := offset + *batchSize*messageSize
		if end > len(stream) {
			end = len(stream)
		}
		batch := stream[offset:end]

		resp, err := postBatch(client, *gatewayAddr, batch)
		if err != nil {
			slog.Error("batch post failed", "error", err, "offset", offset)
			failed++
			offset = end
			continue
		}

		sent += resp.MessagesAccepted
		slog.Info("batch accepted",
			"messages", resp.MessagesAccepted,
			"bytes", resp.BytesAccepted,
			"remainder", resp.RemainderBytes,
		)
		offset += resp.BytesAccepted
		if resp.BytesAccepted == 0 {
			slog.Error("gateway made no progress on batch, aborting", "offset", offset)
			break
		}
	}

	slog.Info("replay complete", "messages_sent", sent, "batches_failed", failed)
}

type batchResponse struct {
	MessagesAccepted int    `json:"messagesAccepted"`
	BytesAccepted    int    `json:"bytesAccepted"`
	RemainderBytes   int    `json:"remainderBytes"`
	Error            string `json:"error,omitempty"`
}

func postBatch(client *http.Client, gateway string, batch []byte) (batchResponse, error) {
	resp, err := client.Post(gateway+"/v1/itch/batch", "application/octet-stream", bytes.NewReader(batch))
	if err != nil {
		return batchResponse{}, err
	}
	defer resp.Body.Close()

	var out batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return batchResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, out.Error)
	}
	return out, nil
}
