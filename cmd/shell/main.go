package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/config"
	"github.com/domino14/othello/shell"
)

var (
	GitVersion string
)

func consoleLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatFieldName = func(i any) string {
		return fmt.Sprintf("%s=", i)
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// startCPUProfile returns the function that stops the profile, or nil if
// no profile was asked for.
func startCPUProfile(path string) (func(), error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}

func main() {
	fmt.Println("othello " + GitVersion)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Logger = consoleLogger(cfg.GetBool(config.ConfigDebug))
	log.Debug().Interface("settings", cfg.AllSettings()).Msg("debug-logging-on")

	stopProfile, err := startCPUProfile(cfg.GetString(config.ConfigCPUProfile))
	if err != nil {
		fmt.Fprintln(os.Stderr, "cpu profile:", err)
		os.Exit(1)
	}

	// The shell sends SIGINT to sig on exit, same as Ctrl-C from outside.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		s := <-sig
		log.Info().Str("signal", s.String()).Msg("quitting")
		close(done)
	}()

	sc := shell.NewShellController(cfg)
	if line := strings.TrimSpace(strings.Join(cfg.Args(), " ")); line != "" {
		if !sc.Execute(sig, line) {
			sig <- syscall.SIGINT
		}
	} else {
		go sc.Loop(sig)
	}
	<-done

	if stopProfile != nil {
		stopProfile()
	}
	if path := cfg.GetString(config.ConfigMemProfile); path != "" {
		if err := writeHeapProfile(path); err != nil {
			log.Err(err).Msg("heap-profile")
		} else {
			log.Info().Str("path", path).Msg("wrote-heap-profile")
		}
	}
	sc.Cleanup()
}
