// Package engine is a reference host for unit generators.
//
// An Engine owns a unit registry, a real-time allocator and a deferred
// command channel. Instantiate, Connect, Process, Destroy, Flush and Close
// belong to the audio goroutine and must not be called concurrently with
// each other. Run is the non-real-time worker and may run on any other
// goroutine; Stats is safe from anywhere.
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/args"
	"github.com/cwbudde/algo-ugen/ugen/command"
	"github.com/cwbudde/algo-ugen/ugen/rtalloc"
)

var (
	// ErrUnknownUnit is returned by Instantiate for names not in the
	// registry.
	ErrUnknownUnit = errors.New("engine: unknown unit")
	// ErrPortIndex is returned by Connect for an index outside the
	// synth's ports.
	ErrPortIndex = errors.New("engine: port index out of range")
	// ErrBufferTooShort is returned by Connect when a buffer cannot hold a
	// full block.
	ErrBufferTooShort = errors.New("engine: buffer too short")
	// ErrDestroyed is returned for operations on a destroyed synth.
	ErrDestroyed = errors.New("engine: synth destroyed")
	// ErrNotReady is returned by Process when a live synth was skipped
	// because some of its ports are unbound.
	ErrNotReady = errors.New("engine: synth not ready")
	// ErrFrameCount is returned by Process for frames outside
	// [1, BlockSize].
	ErrFrameCount = errors.New("engine: invalid frame count")
	// ErrRunning is returned by Run when a worker is already active, and
	// by Close while Run has not returned.
	ErrRunning = errors.New("engine: already running")
	// ErrClosed is returned by Instantiate after Close.
	ErrClosed = errors.New("engine: closed")
)

// Stats combines the command channel and allocator counters.
type Stats struct {
	Commands command.Stats
	Alloc    rtalloc.Stats
}

// Engine hosts unit instances and implements both ugen.World and
// ugen.Host.
type Engine struct {
	cfg      Config
	reg      *ugen.Registry
	alloc    *rtalloc.Allocator
	ch       *command.Channel
	log      logrus.FieldLogger
	notifier Notifier

	synths  []*Synth
	closed  bool
	running atomic.Bool
}

// New builds an Engine for the units in reg.
func New(reg *ugen.Registry, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrConfig)
	}

	s := settings{cfg: DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	if s.logger == nil {
		l, err := newLogger(s.cfg.LogLevel)
		if err != nil {
			return nil, err
		}

		s.logger = l
	}

	alloc, err := rtalloc.New(s.cfg.Allocator)
	if err != nil {
		return nil, fmt.Errorf("engine: allocator: %w", err)
	}

	ch, err := command.New(s.cfg.QueueCapacity)
	if err != nil {
		return nil, fmt.Errorf("engine: commands: %w", err)
	}

	e := &Engine{
		cfg:      s.cfg,
		reg:      reg,
		alloc:    alloc,
		ch:       ch,
		log:      s.logger,
		notifier: s.notifier,
	}

	if e.notifier == nil {
		e.notifier = NotifierFunc(e.logNotification)
	}

	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// SampleRate implements ugen.World.
func (e *Engine) SampleRate() float64 { return e.cfg.SampleRate }

// BlockSize implements ugen.World.
func (e *Engine) BlockSize() int { return e.cfg.BlockSize }

// Alloc implements ugen.World.
func (e *Engine) Alloc(n int) []float64 { return e.alloc.Alloc(n) }

// MaxAlloc implements ugen.World.
func (e *Engine) MaxAlloc() int { return e.alloc.MaxSize() }

// Free implements ugen.World.
func (e *Engine) Free(buf []float64) bool { return e.alloc.Free(buf) }

// Perform implements ugen.World.
func (e *Engine) Perform(cmd ugen.Command) bool { return e.ch.Perform(cmd) }

// PerformWorld implements ugen.Host. A full world queue defers cmd; a
// rejected command is logged.
func (e *Engine) PerformWorld(cmd ugen.WorldCommand) bool {
	if !e.ch.PerformWorld(cmd) {
		e.log.Warn("engine: world command rejected")

		return false
	}

	return true
}

// Notify implements ugen.Host by forwarding n to the notifier.
func (e *Engine) Notify(n ugen.Notification) error {
	if err := e.notifier.Notify(n); err != nil {
		e.log.WithError(err).WithField("address", n.Address).Warn("engine: notification failed")

		return fmt.Errorf("engine: notify %s: %w", n.Address, err)
	}

	return nil
}

func (e *Engine) logNotification(n ugen.Notification) error {
	e.log.WithFields(logrus.Fields{
		"address": n.Address,
		"values":  len(n.Values),
	}).Debug("engine: notification")

	return nil
}

// Instantiate configures, enumerates and constructs a unit. The synth is
// Constructed, or Ready when the unit has no ports.
func (e *Engine) Instantiate(name string, a *args.Stream) (*Synth, error) {
	if e.closed {
		return nil, ErrClosed
	}

	def, ok := e.reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}

	var (
		opts ugen.Options
		err  error
	)

	if def.Configure != nil {
		opts, err = def.Configure(a)
		if err != nil {
			return nil, fmt.Errorf("engine: configure %s: %w", name, err)
		}
	}

	ports, err := ugen.Ports(def, opts)
	if err != nil {
		return nil, fmt.Errorf("engine: ports %s: %w", name, err)
	}

	unit, err := def.Construct(e, opts)
	if err != nil {
		return nil, fmt.Errorf("engine: construct %s: %w", name, err)
	}

	s := &Synth{
		id:      xid.New(),
		name:    name,
		unit:    unit,
		ports:   ports,
		bound:   make([]bool, len(ports)),
		unbound: len(ports),
	}

	if s.unbound == 0 {
		s.setState(Ready)
	} else {
		s.setState(Constructed)
	}

	e.synths = append(e.synths, s)

	e.log.WithFields(logrus.Fields{
		"synth": s.ID(),
		"unit":  name,
		"ports": len(ports),
	}).Debug("engine: instantiated")

	return s, nil
}

// Connect binds buf to a port of s after checking the index and length.
func (e *Engine) Connect(s *Synth, index int, buf []float64) error {
	if s.State() == Destroyed {
		return fmt.Errorf("%w: %s", ErrDestroyed, s)
	}

	if index < 0 || index >= len(s.ports) {
		return fmt.Errorf("%w: %s has %d ports, got %d", ErrPortIndex, s, len(s.ports), index)
	}

	p := s.ports[index]
	if want := p.MinLen(e.cfg.BlockSize); len(buf) < want {
		return fmt.Errorf("%w: %s port %v needs %d samples, got %d", ErrBufferTooShort, s, p, want, len(buf))
	}

	s.unit.Connect(index, buf)

	if !s.bound[index] {
		s.bound[index] = true
		s.unbound--

		if s.unbound == 0 {
			s.setState(Ready)
		}
	}

	return nil
}

// Process runs one block. It frees payloads returned by the worker,
// processes every Ready synth in instantiation order and wakes the worker.
// It returns ErrNotReady, after processing the rest, when a synth with
// unbound ports was skipped.
func (e *Engine) Process(frames int) error {
	if frames <= 0 || frames > e.cfg.BlockSize {
		return ErrFrameCount
	}

	e.ch.DrainWorld(e)

	var err error

	for _, s := range e.synths {
		if s.State() != Ready {
			err = ErrNotReady

			continue
		}

		s.unit.Process(e, frames)
	}

	e.ch.Wake()

	return err
}

// Destroy removes s from the engine and calls its Destroy hook once.
func (e *Engine) Destroy(s *Synth) error {
	if s.State() == Destroyed {
		return fmt.Errorf("%w: %s", ErrDestroyed, s)
	}

	i := slices.Index(e.synths, s)
	if i < 0 {
		return fmt.Errorf("%w: %s is not owned by this engine", ErrDestroyed, s)
	}

	e.synths = slices.Delete(e.synths, i, i+1)
	s.setState(Destroyed)

	if d, ok := s.unit.(ugen.Destroyer); ok {
		d.Destroy(e)
	}

	return nil
}

// Synths returns the live synths in processing order.
func (e *Engine) Synths() []*Synth {
	return slices.Clone(e.synths)
}

// Flush runs queued worker commands on the calling goroutine, unless Run
// is active, then frees the payloads they returned. It repeats until a pass
// executes nothing and returns the number of commands executed.
func (e *Engine) Flush() int {
	n := 0

	for {
		k := 0
		if !e.running.Load() {
			k += e.ch.DrainHost(e)
		}

		k += e.ch.DrainWorld(e)
		if k == 0 {
			return n
		}

		n += k
	}
}

// Run is the non-real-time worker. It executes deferred commands and
// periodically logs dropped commands and allocator failures until ctx is
// done.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer e.running.Store(false)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.ch.RunHost(ctx, e) })
	g.Go(func() error { return e.report(ctx) })

	return g.Wait()
}

func (e *Engine) report(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.ReportInterval)
	defer ticker.Stop()

	var prev Stats

	for {
		select {
		case <-ctx.Done():
			e.reportDelta(prev)

			return nil
		case <-ticker.C:
			prev = e.reportDelta(prev)
		}
	}
}

// reportDelta logs counters that grew since prev and returns the current
// snapshot.
func (e *Engine) reportDelta(prev Stats) Stats {
	cur := e.Stats()

	dropped := (cur.Commands.HostDropped - prev.Commands.HostDropped) +
		(cur.Commands.WorldDropped - prev.Commands.WorldDropped)
	failures := cur.Alloc.Failures - prev.Alloc.Failures
	deferred := cur.Commands.WorldDeferred - prev.Commands.WorldDeferred

	if dropped > 0 || failures > 0 || deferred > 0 {
		e.log.WithFields(logrus.Fields{
			"dropped":        dropped,
			"alloc_failures": failures,
			"world_deferred": deferred,
		}).Warn("engine: real-time resources exhausted")
	}

	return cur
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{Commands: e.ch.Stats(), Alloc: e.alloc.Stats()}
}

// Close destroys every remaining synth in reverse order and frees
// returned payloads. It returns ErrRunning, and does nothing, while Run is
// active; cancel Run and wait for it first. Later calls are no-ops.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}

	if e.running.Load() {
		return ErrRunning
	}

	e.closed = true

	var errs []error

	for i := len(e.synths) - 1; i >= 0; i-- {
		s := e.synths[i]
		if err := e.Destroy(s); err != nil {
			errs = append(errs, err)
		}
	}

	e.Flush()

	e.log.WithField("stats", e.Stats()).Debug("engine: closed")

	return errors.Join(errs...)
}
