package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ystepanoff/pulsecast/driver/stub"
	"github.com/ystepanoff/pulsecast/edge"
	"github.com/ystepanoff/pulsecast/node"
	proto "github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/telemetry"
)

func TestMetricsMux(t *testing.T) {
	telemetry.SkippedTicks.WithLabelValues("nodesim-test").Inc()
	srv := httptest.NewServer(metricsMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pulsecast_skipped_ticks_total{node="nodesim-test"} 1`)
}

func TestPress(t *testing.T) {
	counter := edge.NewCounter()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- press(ctx, edge.NewHandler(counter, nil), time.Millisecond) }()

	assert.Eventually(t, func() bool { return counter.Value() >= 3 }, 2*time.Second, time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestNewSimNode_LogsCarryAddress(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	addr := proto.Address{0x24, 0x0A, 0xC4, 0x5E, 0x00, 0x01}

	n, counter, err := newSimNode(stub.NewMedium(), addr, proto.DefaultChannel, node.DefaultConfig(), zap.New(core))
	require.NoError(t, err)
	counter.RecordEdge()
	n.Step(time.Now())

	started := logs.FilterMessage("node started").All()
	require.Len(t, started, 1)
	assert.Equal(t, addr.String(), started[0].ContextMap()["addr"])

	display := logs.FilterMessage("local rolling sum").All()
	require.Len(t, display, 1)
	assert.Equal(t, "display", display[0].LoggerName)
	assert.Equal(t, addr.String(), display[0].ContextMap()["addr"])
	assert.EqualValues(t, 1, display[0].ContextMap()["sum"])

	_, _, err = newSimNode(stub.NewMedium(), addr, 126, node.DefaultConfig(), zap.New(core))
	assert.ErrorIs(t, err, proto.ErrInvalidChannel)
}
