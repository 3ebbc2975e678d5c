// Command nodesim runs several counting nodes in one process on a shared
// in-memory radio medium, pressing their buttons on a schedule.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ystepanoff/pulsecast/driver/stub"
	"github.com/ystepanoff/pulsecast/edge"
	"github.com/ystepanoff/pulsecast/internal/config"
	"github.com/ystepanoff/pulsecast/internal/logging"
	"github.com/ystepanoff/pulsecast/node"
	proto "github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/telemetry"
	"github.com/ystepanoff/pulsecast/transport"
)

var (
	configPath = flag.String("config", "pulsecast.yaml", "Path to configuration file")
	logLevel   = flag.String("log-level", "", "Log level (overrides config)")
	duration   = flag.Duration("duration", 0, "Stop after this long (0 runs until interrupted)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "nodesim:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	nodeCfg, err := cfg.NodeConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			log.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	medium := stub.NewMedium()
	for _, nc := range cfg.Nodes {
		nc := nc
		n, counter, err := newSimNode(medium, nc.Address, cfg.Channel, nodeCfg, log)
		if err != nil {
			return err
		}

		g.Go(func() error {
			if err := n.Run(ctx); !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
		if nc.PressInterval > 0 {
			handler := edge.NewHandler(counter, edge.DebounceMinInterval(cfg.Debounce))
			g.Go(func() error { return press(ctx, handler, nc.PressInterval) })
		}
	}

	log.Info("simulation started", zap.Int("nodes", len(cfg.Nodes)), zap.Duration("tick", cfg.TickInterval))
	err = g.Wait()
	log.Info("simulation stopped")
	return err
}

// newSimNode attaches a node to the medium. Its own logs and its display
// lines both carry the node address.
func newSimNode(medium *stub.Medium, addr proto.Address, channel uint8, cfg node.Config, log *zap.Logger) (*node.Node, *edge.Counter, error) {
	link := transport.NewLinkWithDriver(addr, medium.Attach())
	if err := link.SetChannel(channel); err != nil {
		return nil, nil, fmt.Errorf("node %s: %w", addr, err)
	}
	counter := edge.NewCounter()
	n, err := node.New(link, counter, cfg,
		node.WithLogger(log),
		node.WithSink(node.LogSink{Log: log.Named("display").With(zap.Stringer("addr", addr))}))
	if err != nil {
		return nil, nil, fmt.Errorf("node %s: %w", addr, err)
	}
	return n, counter, nil
}

// press fires the button handler every interval until ctx is done.
func press(ctx context.Context, h *edge.Handler, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			h.OnFallingEdge(now)
		}
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.MetricsHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
