package automatic

// Computer vs computer games, played on several threads at once.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/othello/config"
	"github.com/domino14/othello/turnplayer"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const csvHeader = "gameID,p1_discs,p2_discs,first,moves\n"

// newBotRunner builds a runner with two fresh bots. The first bot uses the
// eval-weights setting and the second the white-eval-weights setting.
func newBotRunner(cfg *config.Config, threads int) (*GameRunner, error) {
	p1, err := turnplayer.NewBotPlayerFromConfig(cfg, config.ConfigEvalWeights)
	if err != nil {
		return nil, err
	}
	p2, err := turnplayer.NewBotPlayerFromConfig(cfg, config.ConfigWhiteEvalWeights)
	if err != nil {
		return nil, err
	}
	// Every bot on every thread has a table of its own.
	frac := cfg.GetFloat64(config.ConfigTTableMemFraction) / float64(2*threads)
	p1.Solver().SetTTableMemFraction(frac)
	p2.Solver().SetTTableMemFraction(frac)

	r := NewGameRunner(p1, p2)
	r.SetRandomPlies(cfg.GetInt(config.ConfigAutoplayRandomPlies), frand.New())
	r.SetMoveTime(cfg.GetDuration(config.ConfigMoveTime))
	return r, nil
}

// CompVsComp plays numGames games between two bots on the given number of
// threads. A CSV line per game is written to w if it is not nil. The summary
// covers every game that finished, even if ctx was cancelled midway.
func CompVsComp(ctx context.Context, cfg *config.Config, numGames, threads int, w io.Writer) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)
	CVCCounter.Set(0)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int, 100)
	records := make(chan GameRecord, 100)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
		}
		log.Debug().Msg("Finished queueing all jobs.")
		return nil
	})

	for t := 0; t < threads; t++ {
		g.Go(func() error {
			r, err := newBotRunner(cfg, threads)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for id := range jobs {
				rec, err := r.PlayGame(gctx, id)
				if err != nil {
					return fmt.Errorf("game %d: %w", id, err)
				}
				CVCCounter.Add(1)
				select {
				case records <- rec:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	var err error
	go func() {
		err = g.Wait()
		close(records)
	}()

	sum := NewSummary()
	if w != nil {
		io.WriteString(w, csvHeader)
	}
	for rec := range records {
		sum.Add(rec)
		if w != nil {
			io.WriteString(w, rec.csvLine())
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	log.Info().Int("games", sum.Games()).Msg("All games finished.")
	return sum, err
}
