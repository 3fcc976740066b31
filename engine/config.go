package engine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/ugen/rtalloc"
)

// DefaultQueueCapacity is the per-direction command queue size.
const DefaultQueueCapacity = 1024

// DefaultReportInterval is how often Run logs new drops and allocator
// failures.
const DefaultReportInterval = time.Second

// ErrConfig is returned for an unusable Config.
var ErrConfig = errors.New("engine: invalid config")

// Config is the file-level engine configuration.
//
//	sample_rate: 48000
//	block_size: 64
//	queue_capacity: 1024
//	allocator:
//	  min_size: 16
//	  max_size: 8192
//	  per_class: 32
//	report_interval: 1s
//	log_level: info
type Config struct {
	core.ProcessorConfig `yaml:",inline"`

	QueueCapacity  int            `yaml:"queue_capacity"`
	Allocator      rtalloc.Config `yaml:"allocator"`
	ReportInterval time.Duration  `yaml:"report_interval"`
	LogLevel       string         `yaml:"log_level"`
}

// DefaultConfig returns the processor defaults plus engine defaults.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		QueueCapacity:   DefaultQueueCapacity,
		Allocator:       rtalloc.DefaultConfig(),
		ReportInterval:  DefaultReportInterval,
	}
}

// Validate checks every field that New depends on.
func (c Config) Validate() error {
	if err := c.ProcessorConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if c.QueueCapacity <= 0 {
		return fmt.Errorf("%w: queue capacity must be > 0: %d", ErrConfig, c.QueueCapacity)
	}

	if c.ReportInterval <= 0 {
		return fmt.Errorf("%w: report interval must be > 0: %s", ErrConfig, c.ReportInterval)
	}

	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML config data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
