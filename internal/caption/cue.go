package caption

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned when input does not look like the requested format.
var ErrInvalid = errors.New("invalid caption data")

var (
	// Matches cue timings like 00:01:02,345 --> 00:01:04,000 (SRT) or 01:02.345 --> 01:04.000 (WebVTT).
	timingRe = regexp.MustCompile(`^\s*((?:\d+:)?\d{1,2}:\d{2}[.,]\d{1,3})\s*-->\s*((?:\d+:)?\d{1,2}:\d{2}[.,]\d{1,3})`)

	// Matches inline markup such as <i>, </b>, <v Speaker> or <00:01.000>.
	markupRe = regexp.MustCompile(`<[^>]*>`)
)

// ParseSRT parses SubRip captions.
func ParseSRT(r io.Reader) ([]Caption, error) {
	return parseCues(r, false)
}

// ParseVTT parses WebVTT captions. The input must start with the WEBVTT header.
func ParseVTT(r io.Reader) ([]Caption, error) {
	return parseCues(r, true)
}

// parseCues reads timing/text blocks. Cue numbers, identifiers, NOTE, STYLE
// and REGION blocks carry no timing line and are skipped.
func parseCues(r io.Reader, webvtt bool) ([]Caption, error) {
	scanner := bufio.NewScanner(r)

	var (
		captions []Caption
		current  *Caption
		text     []string
		first    = true
	)

	flush := func() {
		if current != nil {
			current.Text = strings.Join(text, "\n")
			if current.Text != "" {
				captions = append(captions, *current)
			}
		}
		current = nil
		text = text[:0]
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
			if webvtt {
				if !strings.HasPrefix(line, "WEBVTT") {
					return nil, fmt.Errorf("%w: missing WEBVTT header", ErrInvalid)
				}
				continue
			}
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if m := timingRe.FindStringSubmatch(line); m != nil {
			flush()
			start, err := parseCueTime(m[1])
			if err != nil {
				return nil, err
			}
			end, err := parseCueTime(m[2])
			if err != nil {
				return nil, err
			}
			current = &Caption{Start: start, End: end}
			continue
		}

		if current != nil {
			cleaned := strings.TrimSpace(markupRe.ReplaceAllString(line, ""))
			if cleaned != "" {
				text = append(text, cleaned)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if webvtt && first {
		return nil, fmt.Errorf("%w: empty input", ErrInvalid)
	}
	flush()

	return captions, nil
}

// parseCueTime parses [hh:]mm:ss.ttt with either '.' or ',' before the fraction.
func parseCueTime(s string) (time.Duration, error) {
	s = strings.Replace(s, ",", ".", 1)
	clock, frac, _ := strings.Cut(s, ".")

	parts := strings.Split(clock, ":")
	var d time.Duration
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: bad timestamp %q", ErrInvalid, s)
		}
		d = d*60 + time.Duration(n)
	}
	d *= time.Second

	if frac != "" {
		// Right-pad so "5" and "50" read as 500ms.
		for len(frac) < 3 {
			frac += "0"
		}
		ms, err := strconv.Atoi(frac[:3])
		if err != nil {
			return 0, fmt.Errorf("%w: bad timestamp %q", ErrInvalid, s)
		}
		d += time.Duration(ms) * time.Millisecond
	}
	return d, nil
}
