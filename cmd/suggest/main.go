// Package main is a console driver for the suggestion stack: it loads
// a file, triggers completion at the end of the buffer, and prints the
// candidates a host editor would render.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/suggest/internal/app"
	"github.com/dshills/suggest/internal/suggest"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("suggest %s (%s)\n", version, commit)
		return 0
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: suggest [flags] <file>")
		return 2
	}

	text, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Engine notifications run on the main goroutine via this queue.
	notifications := make(chan func(), 16)

	surface := &consoleSurface{out: os.Stdout}
	application, err := app.New(app.Options{
		ConfigPath: configPath,
		Surface:    surface,
		Deliver:    func(fn func()) { notifications <- fn },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := application.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Stop()

	if _, err := application.Document().Insert(0, string(text)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	application.Cursor().MoveTo(application.Document().Len())

	application.Coordinator().Trigger(true, false)

	// Drain notifications until the session settles.
	for fn := range notifications {
		fn()
		if surface.done {
			break
		}
	}
	return 0
}

// consoleSurface prints widget state transitions to stdout. done flips
// once a final result set or a hide arrives.
type consoleSurface struct {
	out     *os.File
	focused int
	hasSet  bool
	done    bool
}

func (s *consoleSurface) ShowTriggered(auto bool) {
	fmt.Fprintf(s.out, "computing (auto=%v)...\n", auto)
}

func (s *consoleSurface) ShowSuggestions(set *suggest.CandidateSet, focused int, frozen, _ bool) {
	s.hasSet = true
	s.focused = focused
	for i := 0; i < set.Len(); i++ {
		c, _ := set.At(i)
		marker := "  "
		if i == focused {
			marker = "> "
		}
		fmt.Fprintf(s.out, "%s%-30s %s\n", marker, c.Label, c.Kind)
	}
	if frozen {
		s.done = true
	}
}

func (s *consoleSurface) SetFocus(index int) { s.focused = index }

func (s *consoleSurface) FocusedIndex() (int, bool) {
	return s.focused, s.hasSet
}

func (s *consoleSurface) IsDetailsVisible() bool { return false }
func (s *consoleSurface) CollapseDetails()       {}
func (s *consoleSurface) ToggleDetails()         {}

func (s *consoleSurface) Hide() {
	s.hasSet = false
	s.done = true
}
