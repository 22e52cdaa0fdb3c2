package config

import (
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigSearchDepth), 6)
	is.Equal(cfg.GetInt(ConfigEndgameEmpties), 12)
	is.Equal(cfg.GetInt(ConfigAspirationWindow), 75)
	is.Equal(cfg.GetInt(ConfigAspirationDepthDelta), 1)
	is.Equal(cfg.GetInt(ConfigSortDepthDelta), 4)
	is.Equal(cfg.GetBool(ConfigIterativeDeepening), false)
	is.Equal(cfg.GetFloat64(ConfigTTableMemFraction), 0.02)
	is.Equal(cfg.GetString(ConfigEvalWeights), "207,-41,327,28,917,-52")
	is.Equal(cfg.GetDuration(ConfigMoveTime), time.Duration(0))
	is.Equal(cfg.GetUint64(ConfigHashSeed), uint64(1337))
	is.Equal(len(cfg.Args()), 0)
}

func TestLoadFlagsAndCommand(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--search-depth", "8", "--move-time=1500ms", "autoplay", "-games", "10"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigSearchDepth), 8)
	is.Equal(cfg.GetDuration(ConfigMoveTime), 1500*time.Millisecond)
	is.Equal(cfg.Args(), []string{"autoplay", "-games", "10"})
	// untouched keys keep their defaults
	is.Equal(cfg.GetInt(ConfigEndgameEmpties), 12)
}

func TestLoadEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("OTHELLO_ENDGAME_EMPTIES", "14")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigEndgameEmpties), 14)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.True(cfg.Load([]string{"--search-depth", "deep"}) != nil)
	is.True(cfg.Load([]string{"--no-such-flag"}) != nil)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Set(ConfigSearchDepth, 3)
	is.Equal(cfg.GetInt(ConfigSearchDepth), 3)
}

func TestLoadMalformedEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("OTHELLO_SEARCH_DEPTH", "abc")
	cfg := &Config{}
	err := cfg.Load(nil)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), ConfigSearchDepth))
}

func TestSetValue(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.NoErr(cfg.SetValue(ConfigSearchDepth, "9"))
	is.Equal(cfg.Get(ConfigSearchDepth), 9)
	is.NoErr(cfg.SetValue(ConfigMoveTime, "2s"))
	is.Equal(cfg.GetDuration(ConfigMoveTime), 2*time.Second)
	is.NoErr(cfg.SetValue(ConfigEvalWeights, "1,2,3,4,5,6"))
	is.Equal(cfg.GetString(ConfigEvalWeights), "1,2,3,4,5,6")

	for _, tc := range []struct{ key, value string }{
		{ConfigSearchDepth, "abc"},
		{ConfigTTableMemFraction, "lots"},
		{ConfigIterativeDeepening, "maybe"},
		{ConfigMoveTime, "soon"},
		{ConfigHashSeed, "seed"},
	} {
		is.True(cfg.SetValue(tc.key, tc.value) != nil)
	}
	// rejected values leave the old ones in place
	is.Equal(cfg.GetInt(ConfigSearchDepth), 9)
	is.NoErr(cfg.Validate())
}
