package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/rtalloc"
)

// Notifier is the transport that receives unit notifications. It is called
// on the non-real-time context.
type Notifier interface {
	Notify(n ugen.Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n ugen.Notification) error

// Notify calls f(n).
func (f NotifierFunc) Notify(n ugen.Notification) error {
	return f(n)
}

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	cfg      Config
	logger   logrus.FieldLogger
	notifier Notifier
}

// WithConfig replaces the whole configuration. Options after it still
// apply.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithSampleRate sets the sample rate reported to units.
func WithSampleRate(sampleRate float64) Option {
	return func(s *settings) {
		core.WithSampleRate(sampleRate)(&s.cfg.ProcessorConfig)
	}
}

// WithBlockSize sets the maximum frames per Process call.
func WithBlockSize(blockSize int) Option {
	return func(s *settings) {
		core.WithBlockSize(blockSize)(&s.cfg.ProcessorConfig)
	}
}

// WithQueueCapacity sizes both command queues.
func WithQueueCapacity(capacity int) Option {
	return func(s *settings) {
		if capacity > 0 {
			s.cfg.QueueCapacity = capacity
		}
	}
}

// WithAllocator sizes the real-time allocator.
func WithAllocator(cfg rtalloc.Config) Option {
	return func(s *settings) {
		s.cfg.Allocator = cfg
	}
}

// WithReportInterval sets how often Run reports drops and allocator
// failures.
func WithReportInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.cfg.ReportInterval = d
		}
	}
}

// WithLogger sets the logger. Without it the engine builds a logrus logger
// from the config level or DebugEnv.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithNotifier sets the notification transport. Without it notifications
// are logged at debug level.
func WithNotifier(n Notifier) Option {
	return func(s *settings) {
		s.notifier = n
	}
}
