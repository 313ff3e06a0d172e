package config

import (
	"time"

	"github.com/ykhdr/hash-bruteforce/common/config"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/alphabet"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/partition"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack/worker"
)

type SearchConfig struct {
	Algorithm        string        `kdl:"algorithm"`
	Charset          string        `kdl:"charset"`
	Symbols          string        `kdl:"symbols"`
	MaxLength        int           `kdl:"max-length"`
	Workers          int           `kdl:"workers"`
	Strategy         string        `kdl:"strategy"`
	FlushInterval    int           `kdl:"flush-interval"`
	MaxRetries       int           `kdl:"max-retries"`
	ProgressInterval time.Duration `kdl:"progress-interval"`
}

type ServerConfig struct {
	Address          string        `kdl:"address"`
	RequestQueueSize int           `kdl:"request-queue-size"`
	Concurrency      int           `kdl:"concurrency"`
	DispatchTimeout  time.Duration `kdl:"dispatch-timeout"`
	RequestTimeout   time.Duration `kdl:"request-timeout"`
}

type Config struct {
	config.LogConfig
	Search *SearchConfig `kdl:"search"`
	Server *ServerConfig `kdl:"server"`
}

func DefaultConfig() *Config {
	return &Config{
		LogConfig: config.LogConfig{LogLevel: "info"},
		Search: &SearchConfig{
			Algorithm:     "md5",
			Charset:       alphabet.Special,
			MaxLength:     3,
			Workers:       1,
			Strategy:      partition.DefaultStrategyStr(),
			FlushInterval: worker.DefaultFlushInterval,
			MaxRetries:    1,
		},
		Server: &ServerConfig{
			Address:          "127.0.0.1:8080",
			RequestQueueSize: 1024,
			Concurrency:      1,
			DispatchTimeout:  5 * time.Second,
			RequestTimeout:   10 * time.Minute,
		},
	}
}

func InitializeConfig(path string) (*Config, error) {
	cfg, err := config.InitializeConfig[Config](path, *DefaultConfig())
	if err != nil {
		return nil, err
	}
	cfg.fillZero(DefaultConfig())
	return cfg, nil
}

// fillZero restores defaults for sections or fields a config file left
// empty. Workers is kept as is, 0 means every CPU.
func (c *Config) fillZero(def *Config) {
	if c.Search == nil {
		c.Search = def.Search
	}
	if c.Server == nil {
		c.Server = def.Server
	}
	s, ds := c.Search, def.Search
	if s.Algorithm == "" {
		s.Algorithm = ds.Algorithm
	}
	if s.Charset == "" {
		s.Charset = ds.Charset
	}
	if s.MaxLength == 0 {
		s.MaxLength = ds.MaxLength
	}
	if s.Strategy == "" {
		s.Strategy = ds.Strategy
	}
	if s.FlushInterval == 0 {
		s.FlushInterval = ds.FlushInterval
	}
	v, dv := c.Server, def.Server
	if v.Address == "" {
		v.Address = dv.Address
	}
	if v.RequestQueueSize == 0 {
		v.RequestQueueSize = dv.RequestQueueSize
	}
	if v.Concurrency == 0 {
		v.Concurrency = dv.Concurrency
	}
	if v.DispatchTimeout == 0 {
		v.DispatchTimeout = dv.DispatchTimeout
	}
}

func (c *SearchConfig) CoordinatorConfig() hashcrack.Config {
	return hashcrack.Config{
		FlushInterval:    c.FlushInterval,
		MaxRetries:       c.MaxRetries,
		ProgressInterval: c.ProgressInterval,
	}
}

// Request returns a search request prefilled with the configured defaults;
// the caller supplies the target.
func (c *SearchConfig) Request() hashcrack.Request {
	return hashcrack.Request{
		Algorithm: c.Algorithm,
		MaxLength: c.MaxLength,
		Charset:   c.Charset,
		Symbols:   c.Symbols,
		Workers:   c.Workers,
		Strategy:  c.Strategy,
	}
}

// FillDefaults sets every zero field of req from the configured defaults.
func (c *SearchConfig) FillDefaults(req *hashcrack.Request) {
	if req.Algorithm == "" {
		req.Algorithm = c.Algorithm
	}
	if req.MaxLength == 0 {
		req.MaxLength = c.MaxLength
	}
	if req.Charset == "" && req.Symbols == "" {
		req.Charset = c.Charset
		req.Symbols = c.Symbols
	}
	if req.Workers == 0 {
		req.Workers = c.Workers
	}
	if req.Strategy == "" {
		req.Strategy = c.Strategy
	}
}
