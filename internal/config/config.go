package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel    = "schrodinger_1d"
	DefaultLength   = 20.0
	DefaultSamples  = 512
	DefaultDuration = 5.0
	DefaultDt       = 0.01
)

// Config is the experiment record supplied by the orchestration layer. Keys
// follow its wire names.
type Config struct {
	Model        string  `yaml:"modelo" json:"modelo"`
	L            float64 `yaml:"L" json:"L"`
	N            int     `yaml:"N" json:"N"`
	T            float64 `yaml:"T" json:"T"`
	Dt           float64 `yaml:"dt" json:"dt"`
	Integrator   string  `yaml:"integrador,omitempty" json:"integrador,omitempty"`
	Potential    *Spec   `yaml:"potencial,omitempty" json:"potencial,omitempty"`
	InitialState *Spec   `yaml:"estado_inicial,omitempty" json:"estado_inicial,omitempty"`
	Metric       *Spec   `yaml:"metrica,omitempty" json:"metrica,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: DefaultModel,
		L:     DefaultLength,
		N:     DefaultSamples,
		T:     DefaultDuration,
		Dt:    DefaultDt,
	}
}

// Parse overlays a YAML or JSON document on DefaultConfig.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Potential = c.Potential.Clone()
	cp.InitialState = c.InitialState.Clone()
	cp.Metric = c.Metric.Clone()
	return &cp
}
