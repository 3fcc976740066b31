package units

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/args"
	"github.com/cwbudde/algo-ugen/ugen/command"
	"github.com/cwbudde/algo-ugen/ugen/rtalloc"
)

const (
	testRate  = 48000.0
	testBlock = 64
)

// testWorld runs units offline: deferred commands are drained by flush on
// the calling goroutine.
type testWorld struct {
	alloc *rtalloc.Allocator
	ch    *command.Channel
	notes []ugen.Notification
}

func newTestWorld(t *testing.T, cfg rtalloc.Config) *testWorld {
	t.Helper()

	alloc, err := rtalloc.New(cfg)
	require.NoError(t, err)

	ch, err := command.New(256)
	require.NoError(t, err)

	return &testWorld{alloc: alloc, ch: ch}
}

func (w *testWorld) SampleRate() float64           { return testRate }
func (w *testWorld) BlockSize() int                { return testBlock }
func (w *testWorld) Alloc(n int) []float64         { return w.alloc.Alloc(n) }
func (w *testWorld) MaxAlloc() int                 { return w.alloc.MaxSize() }
func (w *testWorld) Free(buf []float64) bool       { return w.alloc.Free(buf) }
func (w *testWorld) Perform(cmd ugen.Command) bool { return w.ch.Perform(cmd) }

func (w *testWorld) Notify(n ugen.Notification) error {
	w.notes = append(w.notes, n)

	return nil
}

func (w *testWorld) PerformWorld(cmd ugen.WorldCommand) bool { return w.ch.PerformWorld(cmd) }

func (w *testWorld) flush() {
	w.ch.DrainHost(w)
	w.ch.DrainWorld(w)
}

// instance is a constructed unit with one buffer bound to every port.
type instance struct {
	unit  ugen.Unit
	ports []ugen.Port
	bufs  [][]float64
}

func instantiate(t *testing.T, w ugen.World, def ugen.Def, fields ...string) *instance {
	t.Helper()

	stream, err := args.Parse(fields)
	require.NoError(t, err)

	var opts ugen.Options
	if def.Configure != nil {
		opts, err = def.Configure(stream)
		require.NoError(t, err)
	}

	ports, err := ugen.Ports(def, opts)
	require.NoError(t, err)

	unit, err := def.Construct(w, opts)
	require.NoError(t, err)

	inst := &instance{unit: unit, ports: ports, bufs: make([][]float64, len(ports))}
	for i, p := range ports {
		inst.bufs[i] = make([]float64, p.MinLen(w.BlockSize()))
		unit.Connect(i, inst.bufs[i])
	}

	return inst
}

func (in *instance) set(index int, v float64) {
	in.bufs[index][0] = v
}

// run feeds signal through audio input port inPort block by block and
// returns what appears on outPort.
func (in *instance) run(w ugen.World, inPort, outPort int, signal []float64) []float64 {
	out := make([]float64, 0, len(signal))

	for off := 0; off < len(signal); off += w.BlockSize() {
		n := min(w.BlockSize(), len(signal)-off)
		if inPort >= 0 {
			copy(in.bufs[inPort], signal[off:off+n])
		}

		in.unit.Process(w, n)
		out = append(out, in.bufs[outPort][:n]...)
	}

	return out
}
