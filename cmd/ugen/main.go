// Command ugen lists, describes and renders the unit generators of the
// default catalog.
//
// Usage:
//
//	ugen -list
//	ugen -windows [-size N] [-periodic] [window-name ...]
//	ugen -ports <unit> [-arg tag:value ...]
//	ugen -render <unit> [-arg tag:value ...] [-blocks N] [-in source]
//	     [-set index=value ...] [-out file.wav] [-config engine.yaml]
//
// Examples:
//
//	ugen -list
//	ugen -windows -periodic hann blackman
//	ugen -ports mix -arg i:2 -arg i:2
//	ugen -render fft -arg i:512 -in sine:1000 -blocks 16
//	ugen -render lpf -in noise -set 0=800 -set 1=0.7 -out lpf.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/cwbudde/algo-ugen/engine"
	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/args"
	"github.com/cwbudde/algo-ugen/units"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)

	return nil
}

func main() {
	list := flag.Bool("list", false, "list unit types")
	windows := flag.Bool("windows", false, "print analysis window properties for the named windows (default all)")
	size := flag.Int("size", 1024, "window length in samples for -windows")
	periodic := flag.Bool("periodic", false, "use the periodic (FFT) window form for -windows")
	ports := flag.String("ports", "", "describe the ports of `unit`")
	unit := flag.String("render", "", "render `unit` offline")
	blocks := flag.Int("blocks", 100, "number of blocks to render")
	input := flag.String("in", "sine:440", "audio input: sine:<hz>, noise, impulse or silence")
	out := flag.String("out", "", "write the audio outputs to a 16-bit WAV `file`")
	cfgPath := flag.String("config", "", "engine YAML config `file`")

	var fields, sets multiFlag

	flag.Var(&fields, "arg", "instantiation argument tag:value, repeatable (i:512, f:0.5)")
	flag.Var(&sets, "set", "control port value index=value, repeatable")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ugen -list | -windows [names] | -ports <unit> | -render <unit> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Lists, describes and renders unit generators.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ugen -list\n")
		fmt.Fprintf(os.Stderr, "  ugen -windows -periodic hann blackman\n")
		fmt.Fprintf(os.Stderr, "  ugen -ports mix -arg i:2 -arg i:2\n")
		fmt.Fprintf(os.Stderr, "  ugen -render fft -arg i:512 -in sine:1000 -blocks 16\n")
		fmt.Fprintf(os.Stderr, "  ugen -render lpf -in noise -set 0=800 -set 1=0.7 -out lpf.wav\n")
	}
	flag.Parse()

	reg := units.DefaultRegistry()

	var err error

	switch {
	case *list:
		err = printList(os.Stdout, reg)
	case *windows:
		err = printWindows(os.Stdout, flag.Args(), *size, *periodic)
	case *ports != "":
		err = printPorts(os.Stdout, reg, *ports, fields)
	case *unit != "":
		job := renderJob{
			unit:   *unit,
			args:   fields,
			sets:   sets,
			input:  *input,
			blocks: *blocks,
			out:    *out,
			cfg:    engine.DefaultConfig(),
			table:  term.IsTerminal(int(os.Stdout.Fd())),
		}

		if *cfgPath != "" {
			job.cfg, err = engine.LoadConfig(*cfgPath)
		}

		if err == nil {
			err = renderUnit(os.Stdout, reg, job)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer, reg *ugen.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, name := range reg.Names() {
		def, _ := reg.Lookup(name)
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", name, def.Summary); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printPorts(w io.Writer, reg *ugen.Registry, name string, fields []string) error {
	def, ok := reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q (use -list to see available)", engine.ErrUnknownUnit, name)
	}

	stream, err := args.Parse(fields)
	if err != nil {
		return err
	}

	var opts ugen.Options
	if def.Configure != nil {
		if opts, err = def.Configure(stream); err != nil {
			return fmt.Errorf("configure %s: %w", name, err)
		}
	}

	ports, err := ugen.Ports(def, opts)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", def.Name, def.Summary); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Index\tKind\tDirection\n-----\t----\t---------\n"); err != nil {
		return err
	}

	for _, p := range ports {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\n", p.Index, p.Kind, p.Direction); err != nil {
			return err
		}
	}

	return tw.Flush()
}
