package turnplayer

import (
	"io"

	"github.com/domino14/othello/config"
)

// GameOptions says who plays each color.
type GameOptions struct {
	Black PlayerKind
	White PlayerKind
}

// DefaultGameOptions is a human playing Black against the bot.
func DefaultGameOptions() GameOptions {
	return GameOptions{Black: KindHuman, White: KindBot}
}

// NewPlayer builds a player of the given kind. Bots read their weights from
// weightsKey; humans read moves from lr and write prompts to w.
func NewPlayer(kind PlayerKind, cfg *config.Config, weightsKey string, lr LineReader, w io.Writer) (Player, error) {
	switch kind {
	case KindHuman:
		return NewLineReaderPlayer(lr, w), nil
	case KindRandom:
		return NewRandomPlayer(nil), nil
	}
	return NewBotPlayerFromConfig(cfg, weightsKey)
}
