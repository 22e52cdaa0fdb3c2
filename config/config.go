package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                = "debug"
	ConfigSearchDepth          = "search-depth"
	ConfigEndgameEmpties       = "endgame-empties"
	ConfigAspirationWindow     = "aspiration-window"
	ConfigAspirationDepthDelta = "aspiration-depth-delta"
	ConfigSortDepthDelta       = "sort-depth-delta"
	ConfigIterativeDeepening   = "iterative-deepening"
	ConfigTTableMemFraction    = "ttable-mem-fraction"
	ConfigDisableTT            = "disable-tt"
	ConfigEvalWeights          = "eval-weights"
	ConfigWhiteEvalWeights     = "white-eval-weights"
	ConfigMoveTime             = "move-time"
	ConfigHashSeed             = "hash-seed"
	ConfigSearchLog            = "search-log"
	ConfigAutoplayRandomPlies  = "autoplay-random-plies"
	ConfigCPUProfile           = "cpu-profile"
	ConfigMemProfile           = "mem-profile"
)

// Config is a viper instance holding every setting, keyed by the names
// above. Settings come from flags, then OTHELLO_* environment variables,
// then an optional othello.yaml.
type Config struct {
	*viper.Viper
	args []string
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	// Everything after the first non-flag argument is a shell command.
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigSearchDepth, 6, "search depth in plies")
	fs.Int(ConfigEndgameEmpties, 12, "solve exactly at or below this many empty squares")
	fs.Int(ConfigAspirationWindow, 75, "initial half-width of the aspiration window")
	fs.Int(ConfigAspirationDepthDelta, 1, "how much shallower the aspiration estimate search is")
	fs.Int(ConfigSortDepthDelta, 4, "how much shallower the move ordering searches are")
	fs.Bool(ConfigIterativeDeepening, false, "search every depth up to the search depth")
	fs.Float64(ConfigTTableMemFraction, 0.02, "fraction of system memory for the transposition table")
	fs.Bool(ConfigDisableTT, false, "turn the transposition table off")
	fs.String(ConfigEvalWeights, "207,-41,327,28,917,-52",
		"evaluation weights: mobility, frontier, stability, discs, corners, x-squares")
	fs.String(ConfigWhiteEvalWeights, "156,-87,56,36,980,2", "evaluation weights of the second autoplay bot")
	fs.Duration(ConfigMoveTime, 0, "time budget per bot move; 0 for none")
	fs.Uint64(ConfigHashSeed, 1337, "seed of the hash tables")
	fs.String(ConfigSearchLog, "", "write a YAML search log to this file")
	fs.Int(ConfigAutoplayRandomPlies, 4, "random opening plies in autoplay games")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	return fs
}

// DefaultConfig returns a config holding only the defaults. It does not
// look at the environment or any config file.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	fs := newFlagSet()
	// The flag set has no arguments, so parsing cannot fail.
	_ = fs.Parse(nil)
	_ = c.BindPFlags(fs)
	return c
}

// Load parses args, binds the environment and reads othello.yaml from the
// working directory if there is one. Arguments left after the flags are
// available from Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix("othello")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetConfigName("othello")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return c.Validate()
}

// convert turns v into the type of the flag it belongs to. Values of
// string flags are returned unchanged.
func convert(flagType string, v any) (any, error) {
	switch flagType {
	case "int":
		return cast.ToIntE(v)
	case "uint64":
		return cast.ToUint64E(v)
	case "float64":
		return cast.ToFloat64E(v)
	case "bool":
		return cast.ToBoolE(v)
	case "duration":
		return cast.ToDurationE(v)
	}
	return v, nil
}

// Validate checks that every setting, wherever it came from, holds a value
// of its flag's type.
func (c *Config) Validate() error {
	var errs []error
	newFlagSet().VisitAll(func(f *pflag.Flag) {
		if _, err := convert(f.Value.Type(), c.Get(f.Name)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// SetValue parses value as the type of key and stores the result. An
// unparsable value leaves the setting untouched.
func (c *Config) SetValue(key, value string) error {
	var v any = value
	if f := newFlagSet().Lookup(key); f != nil {
		var err error
		if v, err = convert(f.Value.Type(), value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	c.Set(key, v)
	return nil
}

// Args returns the non-flag arguments given to Load.
func (c *Config) Args() []string {
	return c.args
}
