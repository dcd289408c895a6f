package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/crystal-shard/audio"
	"github.com/lixenwraith/crystal-shard/config"
	"github.com/lixenwraith/crystal-shard/core"
	"github.com/lixenwraith/crystal-shard/engine"
	"github.com/lixenwraith/crystal-shard/host"
	"github.com/lixenwraith/crystal-shard/host/window"
	"github.com/lixenwraith/crystal-shard/prefs"
	"github.com/lixenwraith/crystal-shard/status"
	"github.com/lixenwraith/crystal-shard/works"
)

// Host modes
const (
	modeAuto     = "auto"
	modeTerminal = "terminal"
	modeWindow   = "window"
	modeHeadless = "headless"
)

var (
	configPath = flag.String("config", "", "TOML config file")
	modeFlag   = flag.String("mode", modeAuto, "host: auto, terminal, window, headless")
	windowSize = flag.String("size", "1280x720", "window size for -mode window")
)

func main() {
	// A panic on the main goroutine must restore the terminal too
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	overrides := config.NewOverrides(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if err := overrides.Apply(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "flags: %v\n", err)
		os.Exit(2)
	}

	mode := resolveMode(*modeFlag, isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	logFile, err := setupLogging(cfg.LogFile, mode == modeTerminal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, mode); err != nil {
		fmt.Fprintf(os.Stderr, "crystal-shard: %v\n", err)
		os.Exit(1)
	}
}

// resolveMode picks the terminal host for an interactive stdout and headless otherwise
func resolveMode(flagValue string, interactive bool) string {
	switch flagValue {
	case modeTerminal, modeWindow, modeHeadless:
		return flagValue
	}
	if interactive {
		return modeTerminal
	}
	return modeHeadless
}

// setupLogging routes the standard logger; the terminal host never logs to the screen
func setupLogging(path string, terminal bool) (*os.File, error) {
	if path == "" {
		if terminal {
			log.SetOutput(io.Discard)
		} else {
			log.SetOutput(os.Stderr)
		}
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}

// openFlags prefers the sqlite store and falls back to memory
func openFlags(path string) (prefs.Flags, func()) {
	if path == "" {
		return prefs.NewMemory(), func() {}
	}
	store, err := prefs.Open(path)
	if err != nil {
		log.Printf("prefs: %v, keeping preferences in memory", err)
		return prefs.NewMemory(), func() {}
	}
	return store, func() { store.Close() }
}

func loadProjects(path string) []works.Project {
	if path == "" {
		return works.DefaultProjects()
	}
	projects, err := works.LoadCatalog(path)
	if err != nil {
		log.Printf("works: %v, using built-in catalog", err)
		return works.DefaultProjects()
	}
	return projects
}

func run(cfg config.Config, mode string) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	reg := status.NewRegistry()
	flags, closeFlags := openFlags(cfg.PrefsDB)
	defer closeFlags()

	deps := host.Deps{
		Registry: reg,
		Rand:     rand.New(rand.NewSource(seed)),
		Projects: loadProjects(cfg.Catalog),
	}

	if cfg.Audio.Enabled && mode != modeHeadless {
		player := audio.NewPlayer(cfg.AudioConfig(), flags, nil)
		player.Instrument(reg)
		if err := player.Initialize(); err != nil {
			log.Printf("audio: %v (continuing without audio)", err)
		} else {
			player.ArmResume()
			defer player.Cleanup()
		}
		deps.Audio = player
	}

	switch mode {
	case modeWindow:
		var w, h int
		if _, err := fmt.Sscanf(*windowSize, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return fmt.Errorf("bad -size %q", *windowSize)
		}
		return window.Run(cfg, deps, w, h)

	case modeHeadless:
		_, err := host.RunHeadless(cfg, deps, os.Stdout)
		return err

	default:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer screen.Fini()

		deps.Scheduler = engine.NewFrameScheduler(engine.NewPausableClock(), cfg.Interval(), reg)
		return host.NewTerminal(screen, cfg, deps).Run()
	}
}
