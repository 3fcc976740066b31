package ugen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopUnit struct{}

func (nopUnit) Connect(int, []float64) {}
func (nopUnit) Process(World, int)     {}

func nopConstruct(World, Options) (Unit, error) { return nopUnit{}, nil }

func TestFixedPorts(t *testing.T) {
	port := Fixed(ControlIn, AudioIn, AudioOut)

	p, ok := port(nil, 2)
	require.True(t, ok)
	assert.Equal(t, Port{Index: 2, Kind: AudioPort, Direction: Output}, p)

	_, ok = port(nil, 3)
	assert.False(t, ok)

	_, ok = port(nil, -1)
	assert.False(t, ok)
}

func TestPortsEnumeration(t *testing.T) {
	def := Def{Name: "x", Port: Fixed(ControlIn, AudioOut), Construct: nopConstruct}

	ports, err := Ports(def, nil)
	require.NoError(t, err)
	require.Len(t, ports, 2)
	assert.Equal(t, "0:control-in", ports[0].String())
	assert.Equal(t, "1:audio-out", ports[1].String())
	assert.Equal(t, 1, ports[0].MinLen(64))
	assert.Equal(t, 64, ports[1].MinLen(64))
}

func TestPortsRejectsBadDescriptors(t *testing.T) {
	calls := 0

	for name, fn := range map[string]PortFunc{
		"sparse": func(_ Options, i int) (Port, bool) {
			return Port{Index: i * 2}, i < 2
		},
		"bad kind": func(_ Options, i int) (Port, bool) {
			return Port{Index: i, Kind: PortKind(7)}, i < 1
		},
		"bad direction": func(_ Options, i int) (Port, bool) {
			return Port{Index: i, Direction: Direction(-1)}, i < 1
		},
		"endless": func(_ Options, i int) (Port, bool) {
			return Port{Index: i}, true
		},
		"unstable": func(_ Options, i int) (Port, bool) {
			if i == 0 {
				calls++
			}

			return Port{Index: i}, i < calls
		},
	} {
		_, err := Ports(Def{Name: name, Port: fn}, nil)
		require.ErrorIs(t, err, ErrInvalidPorts, name)
	}

	_, err := Ports(Def{Name: "none"}, nil)
	require.ErrorIs(t, err, ErrInvalidPorts)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(Def{Name: "b", Port: Fixed(), Construct: nopConstruct}))
	require.NoError(t, r.Register(Def{Name: "a", Port: Fixed(), Construct: nopConstruct}))

	err := r.Register(Def{Name: "a", Port: Fixed(), Construct: nopConstruct})
	require.ErrorIs(t, err, errDuplicateUnit)

	require.ErrorIs(t, r.Register(Def{Port: Fixed(), Construct: nopConstruct}), errIncompleteDef)
	require.ErrorIs(t, r.Register(Def{Name: "c"}), errIncompleteDef)

	assert.Equal(t, []string{"a", "b"}, r.Names())

	_, ok := r.Lookup("a")
	assert.True(t, ok)

	_, ok = r.Lookup("zzz")
	assert.False(t, ok)

	assert.Panics(t, func() {
		r.MustRegister(Def{Name: "b", Port: Fixed(), Construct: nopConstruct})
	})
}

type recordingHost struct {
	notes []Notification
	world []WorldCommand
}

func (h *recordingHost) Notify(n Notification) error {
	h.notes = append(h.notes, n)

	return nil
}

func (h *recordingHost) PerformWorld(cmd WorldCommand) bool {
	h.world = append(h.world, cmd)

	return true
}

type freeWorld struct {
	freed [][]float64
}

func (w *freeWorld) SampleRate() float64   { return 48000 }
func (w *freeWorld) BlockSize() int        { return 64 }
func (w *freeWorld) Alloc(n int) []float64 { return make([]float64, n) }
func (w *freeWorld) MaxAlloc() int         { return 1 << 20 }
func (w *freeWorld) Perform(Command) bool  { return true }
func (w *freeWorld) Free(buf []float64) bool {
	w.freed = append(w.freed, buf)

	return true
}

func TestNotifierCopiesAndSchedulesFree(t *testing.T) {
	h := &recordingHost{}
	payload := []float64{1, 2, 3}

	Notifier("/amplitude")(h, payload)

	require.Len(t, h.notes, 1)
	assert.Equal(t, "/amplitude", h.notes[0].Address)
	assert.Equal(t, []float64{1, 2, 3}, h.notes[0].Values)

	payload[0] = 99
	assert.Equal(t, 1.0, h.notes[0].Values[0], "notification must not alias the payload")

	require.Len(t, h.world, 1)

	w := &freeWorld{}
	h.world[0].Fn(w, h.world[0].Payload)
	require.Len(t, w.freed, 1)
	assert.Equal(t, 99.0, w.freed[0][0])
}

func TestKindAndDirectionStrings(t *testing.T) {
	assert.Equal(t, "PortKind(9)", PortKind(9).String())
	assert.Equal(t, "Direction(5)", Direction(5).String())
}
