package turnplayer

import (
	"errors"
	"strings"
)

type PlayerKind int

const (
	KindBot PlayerKind = iota
	KindHuman
	KindRandom
)

func (k PlayerKind) String() string {
	switch k {
	case KindHuman:
		return "human"
	case KindRandom:
		return "random"
	}
	return "bot"
}

func ParsePlayerKind(kind string) (PlayerKind, error) {
	switch strings.ToLower(kind) {
	case "bot", "cpu", "ai":
		return KindBot, nil
	case "human", "stream":
		return KindHuman, nil
	case "random":
		return KindRandom, nil
	default:
		msg := "Valid options: 'bot', 'human', 'random'"
		return KindBot, errors.New(msg)
	}
}
