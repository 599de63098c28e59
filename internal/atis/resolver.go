// Package atis owns the VATSIM datafeed cache and the ATIS letter
// resolution engine: given an airport ICAO identifier it reconciles the
// feed's structured atis_code field with the broadcast transcript into
// a single display letter, handling split arrival/departure streams.
package atis

import (
	"fmt"
	"regexp"
	"strings"

	"miniwx/internal/vatsim"
)

// ResolvedATIS is the externally visible resolution result. Letter is a
// single letter, "-" when unknown, or "A/D"-style pair for airports
// publishing separate arrival and departure streams. Texts holds the
// broadcast transcript of every matching record in feed order, each
// with its lines joined by single spaces.
type ResolvedATIS struct {
	Letter string   `json:"letter"`
	Texts  []string `json:"texts"`
}

var (
	infoPattern        = regexp.MustCompile(`INFO ([A-Z])`)
	informationPattern = regexp.MustCompile(`INFORMATION ([A-Z])`)
)

// Resolve derives the current ATIS for an airport from a datafeed
// snapshot. Records are matched by case-sensitive callsign prefix (the
// feed publishes upper-case ICAO identifiers).
func Resolve(icao string, feed *vatsim.Datafeed) ResolvedATIS {
	var matched []vatsim.ATIS
	for _, a := range feed.Atis {
		if strings.HasPrefix(a.Callsign, icao) {
			matched = append(matched, a)
		}
	}

	var letter string
	switch len(matched) {
	case 0:
		letter = "-"
	case 1:
		letter = resolveLetter(matched[0])
	default:
		// Multi-ATIS airport: separate arrival and departure streams
		letter = fmt.Sprintf("%s/%s",
			streamLetter(matched, "_A_"),
			streamLetter(matched, "_D_"))
	}

	texts := make([]string, 0, len(matched))
	for _, a := range matched {
		if a.TextAtis != nil {
			texts = append(texts, strings.Join(a.TextAtis, " "))
		}
	}

	return ResolvedATIS{Letter: letter, Texts: texts}
}

// streamLetter resolves the letter of the first record whose callsign
// contains the given marker ("_A_" or "_D_"), or "-" when the airport
// publishes no such stream.
func streamLetter(records []vatsim.ATIS, marker string) string {
	for _, a := range records {
		if strings.Contains(a.Callsign, marker) {
			return resolveLetter(a)
		}
	}
	return "-"
}

// resolveLetter reconciles a record's structured atis_code with the
// letter scanned from its transcript. When the transcript is exactly
// one letter ahead of the code, the controller has recorded a new
// broadcast before the feed's structured field caught up, and the
// transcript wins. Any other gap trusts the code, which means a Z->A
// rollover (large negative delta) also trusts the code; that matches
// the long-standing behavior clients are used to.
func resolveLetter(record vatsim.ATIS) string {
	code := record.AtisCode
	hasText := record.TextAtis != nil

	switch {
	case code != "" && hasText:
		textLetter, found := letterFromText(record.TextAtis)
		if !found {
			return code
		}
		if int(textLetter)-int(code[0]) == 1 {
			return string(textLetter)
		}
		return string(code[0])
	case code != "":
		return code
	case hasText:
		if textLetter, found := letterFromText(record.TextAtis); found {
			return string(textLetter)
		}
		return "-"
	default:
		return "-"
	}
}

// letterFromText scans a transcript for "INFO <LETTER>", falling back
// to "INFORMATION <LETTER>"; first match wins.
func letterFromText(lines []string) (byte, bool) {
	joined := strings.Join(lines, " ")

	if m := infoPattern.FindStringSubmatch(joined); m != nil {
		return m[1][0], true
	}
	if m := informationPattern.FindStringSubmatch(joined); m != nil {
		return m[1][0], true
	}
	return 0, false
}
