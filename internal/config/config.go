// Package config loads the node simulator configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/ystepanoff/pulsecast/node"
	"github.com/ystepanoff/pulsecast/peers"
	proto "github.com/ystepanoff/pulsecast/protocol"
)

// NodeConfig describes one simulated node on the shared medium.
type NodeConfig struct {
	Address proto.Address `yaml:"address"`
	// PressInterval is the spacing of simulated button presses; zero means
	// the button is never pressed.
	PressInterval time.Duration `yaml:"press_interval"`
}

type Config struct {
	Nodes          []NodeConfig  `yaml:"nodes"`
	Channel        uint8         `yaml:"channel"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	WindowSize     int           `yaml:"window_size"`
	PeerCapacity   int           `yaml:"peer_capacity"`
	OverflowPolicy string        `yaml:"overflow_policy"`
	Debounce       time.Duration `yaml:"debounce"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	LogLevel       string        `yaml:"log_level"`
	MetricsAddr    string        `yaml:"metrics_addr"`
}

// Default returns a two-node setup using the firmware parameters.
func Default() *Config {
	return &Config{
		Nodes: []NodeConfig{
			{Address: proto.Address{0x24, 0x0A, 0xC4, 0x00, 0x00, 0x01}, PressInterval: 700 * time.Millisecond},
			{Address: proto.Address{0x24, 0x0A, 0xC4, 0x00, 0x00, 0x02}, PressInterval: 1300 * time.Millisecond},
		},
		Channel:        proto.DefaultChannel,
		TickInterval:   proto.TickInterval,
		WindowSize:     proto.WindowSize,
		PeerCapacity:   proto.PeerCapacity,
		OverflowPolicy: peers.DropNew.String(),
		Debounce:       proto.DebounceInterval,
		PollInterval:   proto.PollInterval,
		LogLevel:       "info",
		MetricsAddr:    ":9105",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var err error
	if len(c.Nodes) == 0 {
		err = multierr.Append(err, errors.New("nodes: at least one node is required"))
	}
	seen := make(map[proto.Address]bool, len(c.Nodes))
	for i, n := range c.Nodes {
		switch {
		case n.Address.IsBroadcast():
			err = multierr.Append(err, fmt.Errorf("nodes[%d]: %w", i, proto.ErrBroadcastPeer))
		case seen[n.Address]:
			err = multierr.Append(err, fmt.Errorf("nodes[%d]: duplicate address %s", i, n.Address))
		}
		seen[n.Address] = true
		if n.PressInterval < 0 {
			err = multierr.Append(err, fmt.Errorf("nodes[%d]: press_interval must not be negative", i))
		}
	}
	if c.Channel > 125 {
		err = multierr.Append(err, fmt.Errorf("channel %d: %w", c.Channel, proto.ErrInvalidChannel))
	}
	if c.TickInterval <= 0 {
		err = multierr.Append(err, errors.New("tick_interval must be positive"))
	}
	if c.WindowSize <= 0 {
		err = multierr.Append(err, errors.New("window_size must be positive"))
	}
	if c.PeerCapacity <= 0 {
		err = multierr.Append(err, errors.New("peer_capacity must be positive"))
	}
	if _, perr := peers.ParseOverflowPolicy(c.OverflowPolicy); perr != nil {
		err = multierr.Append(err, perr)
	}
	if c.Debounce < 0 {
		err = multierr.Append(err, errors.New("debounce must not be negative"))
	}
	if c.PollInterval <= 0 {
		err = multierr.Append(err, errors.New("poll_interval must be positive"))
	}
	return err
}

// NodeConfig converts the shared parameters into a node.Config.
func (c *Config) NodeConfig() (node.Config, error) {
	policy, err := peers.ParseOverflowPolicy(c.OverflowPolicy)
	if err != nil {
		return node.Config{}, err
	}
	return node.Config{
		TickInterval: c.TickInterval,
		WindowSize:   c.WindowSize,
		PeerCapacity: c.PeerCapacity,
		Overflow:     policy,
		PollInterval: c.PollInterval,
	}, nil
}
