package caption

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LastLineHold is how long the final LRC line stays active, since LRC has no end times.
const LastLineHold = 5 * time.Second

// Regular expressions for parsing LRC format
var (
	// Matches timestamps like [00:12.34] or [00:12:34] or [00:12]
	lrcTimestampRe = regexp.MustCompile(`\[(\d+):(\d+)(?:[.:](\d+))?\]`)

	// Matches metadata tags like [ar:Artist Name]
	lrcMetadataRe = regexp.MustCompile(`^\[([a-z]+):(.+)\]$`)
)

type lrcLine struct {
	at   time.Duration
	text string
}

// ParseLRC parses LRC synced lyrics into captions.
// Each line lasts until the next timestamp; empty timestamped lines only end
// the previous line. Metadata tags ([ar:], [ti:], ...) are ignored.
func ParseLRC(r io.Reader) ([]Caption, error) {
	var lines []lrcLine
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || lrcMetadataRe.MatchString(line) {
			continue
		}

		// LRC can have multiple timestamps for the same text: [00:12.34][00:45.67]Text
		matches := lrcTimestampRe.FindAllStringSubmatchIndex(line, -1)
		if len(matches) == 0 {
			continue
		}

		lastMatch := matches[len(matches)-1]
		text := strings.TrimSpace(line[lastMatch[1]:])

		for _, match := range matches {
			ts, err := parseLRCTimestamp(line[match[0]:match[1]])
			if err != nil {
				continue
			}
			lines = append(lines, lrcLine{at: ts, text: text})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].at < lines[j].at
	})

	captions := make([]Caption, 0, len(lines))
	for i, l := range lines {
		if l.text == "" {
			continue
		}
		end := l.at + LastLineHold
		if i+1 < len(lines) {
			end = lines[i+1].at
		}
		captions = append(captions, Caption{Start: l.at, End: end, Text: l.text})
	}
	return captions, nil
}

// parseLRCTimestamp parses a timestamp like [00:12.34] into a Duration.
func parseLRCTimestamp(s string) (time.Duration, error) {
	matches := lrcTimestampRe.FindStringSubmatch(s)
	if matches == nil {
		return 0, nil
	}

	minutes, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, err
	}

	var millis int
	if frac := matches[3]; frac != "" {
		// Fractions are decimal: .5 is 500ms, .25 is 250ms.
		frac = (frac + "00")[:3]
		millis, err = strconv.Atoi(frac)
		if err != nil {
			return 0, err
		}
	}

	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
