package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/rofi-mode/abi"
	"github.com/wippyai/rofi-mode/internal/lines"
	"github.com/wippyai/rofi-mode/launcher"
	"github.com/wippyai/rofi-mode/memory"
	"github.com/wippyai/rofi-mode/mode"
	"github.com/wippyai/rofi-mode/pattern"
)

func main() {
	var (
		file        = flag.String("file", "", "Read entries from file (default stdin)")
		name        = flag.String("name", "modetest", "Mode name")
		query       = flag.String("query", "", "Filter entries")
		method      = flag.String("method", "normal", "Matching method (normal, regex, glob, fuzzy, prefix)")
		caseMode    = flag.String("case", "insensitive", "Case handling (insensitive, smart, sensitive)")
		iconSize    = flag.Uint("icons", 0, "Resolve icons at this size (0 disables)")
		selectLine  = flag.Int("select", -1, "Accept this line after filtering")
		verbose     = flag.Bool("v", false, "Log adapter events to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = log.Sync() }()
		mode.SetLogger(log.Named("mode"))
		memory.SetLogger(log.Named("memory"))
		launcher.SetLogger(log.Named("launcher"))
	}

	opts, err := matchOptions(*method, *caseMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	entries, err := readEntries(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Usage: modetest -i requires a terminal on stdout")
			os.Exit(1)
		}
		if err := runInteractive(*name, entries, opts, uint32(*iconSize)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, *name, entries, opts, *query, uint32(*iconSize), *selectLine); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func matchOptions(method, caseMode string) (pattern.Options, error) {
	m, err := pattern.ParseMethod(method)
	if err != nil {
		return pattern.Options{}, err
	}
	opts := pattern.Options{Method: m}
	switch caseMode {
	case "insensitive":
		opts.Case = pattern.CaseInsensitive
	case "smart":
		opts.Case = pattern.CaseSmart
	case "sensitive":
		opts.Case = pattern.CaseSensitive
	default:
		return opts, fmt.Errorf("unknown case mode %q", caseMode)
	}
	return opts, nil
}

func readEntries(file string) ([]lines.Entry, error) {
	if file == "" {
		return lines.Read(os.Stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open entries: %w", err)
	}
	defer f.Close()
	return lines.Read(f)
}

func openMode(ctx context.Context, name string, entries []lines.Entry, opts pattern.Options) (*launcher.Launcher, error) {
	table, err := mode.Build(lines.Descriptor(name, entries), mode.WithCallGuard(true))
	if err != nil {
		return nil, fmt.Errorf("build mode: %w", err)
	}
	l, err := launcher.Open(ctx, table, launcher.WithMatchOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("open mode: %w", err)
	}
	return l, nil
}

func run(w io.Writer, name string, entries []lines.Entry, opts pattern.Options, query string, iconSize uint32, selectLine int) error {
	ctx := context.Background()

	l, err := openMode(ctx, name, entries, opts)
	if err != nil {
		return err
	}
	defer l.Close(ctx)

	t := l.Table()
	fmt.Fprintf(w, "Mode: %s (%s, abi %d)\n", t.Name, t.Type, t.ABIVersion)
	fmt.Fprintf(w, "Display name: %s\n", t.DisplayName)
	fmt.Fprintf(w, "Name key: %s\n", t.NameKey)
	fmt.Fprintf(w, "Entries: %d\n", l.Count())

	matches, err := l.Filter(query)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if query != "" {
		fmt.Fprintf(w, "Matches for %q: %d\n", query, len(matches))
	}
	fmt.Fprintln(w)

	for _, line := range matches {
		row, ok, err := l.Entry(line)
		if err != nil {
			return fmt.Errorf("entry %d: %w", line, err)
		}
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%4d  %-40s %s", line, row.Text, row.State)
		if iconSize > 0 {
			if uid := l.Icon(line, iconSize); uid != 0 {
				icon, _, _ := l.Icons().Lookup(uid)
				fmt.Fprintf(w, "  icon=%s#%d", icon, uid)
			}
		}
		fmt.Fprintln(w)
	}

	if selectLine >= 0 {
		next := l.Select(abi.MenuOK, selectLine)
		fmt.Fprintf(w, "\nSelect %d -> %s\n", selectLine, next)
		if row, ok, _ := l.Entry(selectLine); ok {
			fmt.Fprintf(w, "Selected: %s\n", row.Text)
		}
	}

	return nil
}
