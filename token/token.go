// Package token encodes the navigation state carried inside keyboard button
// payloads. The whole context of the next step lives in the token itself, so
// the bot keeps no session state between button presses.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindInvalid Kind = iota
	KindSeason
	KindRace
)

const (
	prefixSeason = "season"
	prefixRace   = "race"
)

// Token is a decoded navigation step. Round is meaningful only for KindRace.
type Token struct {
	Kind  Kind
	Year  int
	Round int
}

func EncodeSeason(year int) string {
	return fmt.Sprintf("%s:%d", prefixSeason, year)
}

func EncodeRace(year, round int) string {
	return fmt.Sprintf("%s:%d:%d", prefixRace, year, round)
}

// Decode parses a payload string back into a Token. Any malformed input is a
// normal outcome and comes back as KindInvalid, never as an error.
func Decode(payload string) Token {
	parts := strings.Split(payload, ":")

	switch {
	case len(parts) == 2 && parts[0] == prefixSeason:
		year, err := strconv.Atoi(parts[1])
		if err != nil {
			return Token{Kind: KindInvalid}
		}
		return Token{Kind: KindSeason, Year: year}

	case len(parts) == 3 && parts[0] == prefixRace:
		year, errYear := strconv.Atoi(parts[1])
		round, errRound := strconv.Atoi(parts[2])
		if errYear != nil || errRound != nil {
			return Token{Kind: KindInvalid}
		}
		return Token{Kind: KindRace, Year: year, Round: round}
	}

	return Token{Kind: KindInvalid}
}
