package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-ugen/engine"
	"github.com/cwbudde/algo-ugen/internal/render"
	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/args"
)

const wavBitDepth = 16

type renderJob struct {
	unit   string
	args   []string
	sets   []string
	input  string
	blocks int
	out    string
	cfg    engine.Config
	table  bool
}

// control is a parsed -set value.
type control struct {
	index int
	value float64
}

func parseControl(s string) (control, error) {
	idx, val, ok := strings.Cut(s, "=")
	if !ok {
		return control{}, fmt.Errorf("set %q: want index=value", s)
	}

	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return control{}, fmt.Errorf("set %q: %w", s, err)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return control{}, fmt.Errorf("set %q: %w", s, err)
	}

	return control{index: i, value: v}, nil
}

// renderUnit runs job offline and prints the notifications it produced.
func renderUnit(w io.Writer, reg *ugen.Registry, job renderJob) (err error) {
	if job.blocks <= 0 {
		return fmt.Errorf("blocks must be > 0: %d", job.blocks)
	}

	var pending []ugen.Notification

	e, err := engine.New(reg,
		engine.WithConfig(job.cfg),
		engine.WithNotifier(engine.NotifierFunc(func(n ugen.Notification) error {
			pending = append(pending, n)

			return nil
		})),
	)
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, e.Close()) }()

	stream, err := args.Parse(job.args)
	if err != nil {
		return err
	}

	s, err := e.Instantiate(job.unit, stream)
	if err != nil {
		return err
	}

	src, err := parseSource(job.input, e.SampleRate())
	if err != nil {
		return err
	}

	ports := s.Ports()
	bufs := make([][]float64, len(ports))

	var inputs, outputs []int

	for i, p := range ports {
		bufs[i] = make([]float64, p.MinLen(e.BlockSize()))
		if err := e.Connect(s, i, bufs[i]); err != nil {
			return err
		}

		if p.Kind == ugen.AudioPort {
			if p.Direction == ugen.Input {
				inputs = append(inputs, i)
			} else {
				outputs = append(outputs, i)
			}
		}
	}

	for _, field := range job.sets {
		c, err := parseControl(field)
		if err != nil {
			return err
		}

		if c.index < 0 || c.index >= len(ports) {
			return fmt.Errorf("set %q: %s has %d ports", field, job.unit, len(ports))
		}

		if p := ports[c.index]; p.Kind != ugen.ControlPort || p.Direction != ugen.Input {
			return fmt.Errorf("set %q: port %v is not a control input", field, p)
		}

		bufs[c.index][0] = c.value
	}

	pr := newPrinter(w, job.table)
	rendered := make([][]float64, len(outputs))
	bs := e.BlockSize()

	for block := range job.blocks {
		if len(inputs) > 0 {
			src.fill(bufs[inputs[0]])

			for _, i := range inputs[1:] {
				copy(bufs[i], bufs[inputs[0]])
			}
		}

		if err := e.Process(bs); err != nil {
			return err
		}

		e.Flush()

		for _, n := range pending {
			if err := pr.print(block, n); err != nil {
				return err
			}
		}

		pending = pending[:0]

		for j, i := range outputs {
			rendered[j] = append(rendered[j], bufs[i][:bs]...)
		}
	}

	if err := pr.flush(); err != nil {
		return err
	}

	if job.out == "" {
		return nil
	}

	if len(rendered) == 0 {
		return fmt.Errorf("%s has no audio outputs to write", job.unit)
	}

	return render.WriteFile(job.out, int(e.SampleRate()), wavBitDepth, rendered...)
}

// printer writes notifications as a summary table or one line each.
type printer struct {
	w     io.Writer
	tw    *tabwriter.Writer
	table bool
	rows  int
}

func newPrinter(w io.Writer, table bool) *printer {
	p := &printer{w: w, table: table}
	if table {
		p.tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	}

	return p
}

func (p *printer) print(block int, n ugen.Notification) error {
	if !p.table {
		parts := make([]string, 0, len(n.Values)+2)
		parts = append(parts, strconv.Itoa(block), n.Address)

		for _, v := range n.Values {
			parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
		}

		_, err := fmt.Fprintln(p.w, strings.Join(parts, " "))

		return err
	}

	if p.rows == 0 {
		if _, err := fmt.Fprintf(p.tw, "Block\tAddress\tValues\tPeak\tPeak Index\n-----\t-------\t------\t----\t----------\n"); err != nil {
			return err
		}
	}

	p.rows++

	peak, peakValue := -1, 0.0

	for i, v := range n.Values {
		if peak < 0 || v > peakValue {
			peak, peakValue = i, v
		}
	}

	_, err := fmt.Fprintf(p.tw, "%d\t%s\t%d\t%.6f\t%d\n", block, n.Address, len(n.Values), peakValue, peak)

	return err
}

func (p *printer) flush() error {
	if p.tw == nil {
		return nil
	}

	return p.tw.Flush()
}
