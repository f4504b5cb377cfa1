package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/machinetwin/internal/machine"
)

const (
	DefaultInitialTemp    = 70.0
	DefaultMaxTemp        = 100.0
	DefaultOptimalTemp    = 75.0
	DefaultProductionRate = 10.0
	DefaultPower          = 50.0
	DefaultFrames         = 200
	DefaultIntervalMs     = 100
)

type Config struct {
	InitialTemp     float64 `yaml:"initial_temp"`
	MaxTemp         float64 `yaml:"max_temp"`
	OptimalTemp     float64 `yaml:"optimal_temp"`
	ProductionRate  float64 `yaml:"production_rate"`
	Power           float64 `yaml:"power"`
	Frames          int     `yaml:"frames"`
	IntervalMs      int     `yaml:"interval_ms"`
	Seed            int64   `yaml:"seed"`
	HistoryCapacity int     `yaml:"history_capacity"`
}

func DefaultConfig() *Config {
	return &Config{
		InitialTemp:    DefaultInitialTemp,
		MaxTemp:        DefaultMaxTemp,
		OptimalTemp:    DefaultOptimalTemp,
		ProductionRate: DefaultProductionRate,
		Power:          DefaultPower,
		Frames:         DefaultFrames,
		IntervalMs:     DefaultIntervalMs,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) MachineParams() machine.Params {
	return machine.Params{
		InitialTemp:    c.InitialTemp,
		MaxTemp:        c.MaxTemp,
		OptimalTemp:    c.OptimalTemp,
		ProductionRate: c.ProductionRate,
		Power:          c.Power,
	}
}
