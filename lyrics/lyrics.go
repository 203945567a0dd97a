// Package lyrics holds the timed lyric document model and the LRC codec.
package lyrics

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Line is a single timed lyric line. Time is in ms from track start.
type Line struct {
	Time  int    `json:"time"`
	Words string `json:"words"`
}

// Query identifies a track for lyric lookup.
type Query struct {
	Title  string
	Artist string
	Album  string
	// Duration in seconds. Zero when unknown.
	Duration int
}

type Provider interface {
	Lyrics(ctx context.Context, q Query) ([]Line, error)
}

var (
	tagRe    = regexp.MustCompile(`\[(\d+):(\d{2})(?:[.:](\d{1,3}))?\]`)
	offsetRe = regexp.MustCompile(`^\[offset:([+-]?\d+)\]$`)
	wordsRe  = regexp.MustCompile(`\]([^\[]*)$`)
)

// Parse decodes an LRC document. The result is sorted by timestamp;
// lines sharing a timestamp keep only the last occurrence. Metadata
// tags and untimed lines are skipped, [offset:n] shifts everything
// after it.
func Parse(text string) []Line {
	var lines []Line
	offset := 0

	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if m := offsetRe.FindStringSubmatch(raw); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				offset = v
			}
			continue
		}
		tags := tagRe.FindAllStringSubmatch(raw, -1)
		if len(tags) == 0 {
			continue
		}
		var words string
		if m := wordsRe.FindStringSubmatch(raw); m != nil {
			words = strings.TrimSpace(m[1])
		}
		if words == "" {
			continue
		}
		for _, tag := range tags {
			minutes, _ := strconv.Atoi(tag[1])
			seconds, _ := strconv.Atoi(tag[2])
			fraction := 0
			if tag[3] != "" {
				// Pad to milliseconds: ".5" and ".50" both mean 500 ms.
				padded := (tag[3] + "000")[:3]
				fraction, _ = strconv.Atoi(padded)
			}
			ts := (minutes*60+seconds)*1000 + fraction - offset
			if ts < 0 {
				ts = 0
			}
			lines = append(lines, Line{Time: ts, Words: words})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Time < lines[j].Time
	})

	// Duplicate timestamps keep the last occurrence.
	deduped := lines[:0]
	for i, line := range lines {
		if i+1 < len(lines) && lines[i+1].Time == line.Time {
			continue
		}
		deduped = append(deduped, line)
	}
	return deduped
}

// Timesynced reports whether the document carries real timestamps.
func Timesynced(lines []Line) bool {
	for _, line := range lines {
		if line.Time > 0 {
			return true
		}
	}
	return false
}

// Index returns the index of the last line with Time <= position, or
// -1 when the position precedes the first line.
func Index(lines []Line, position int) int {
	return sort.Search(len(lines), func(i int) bool {
		return lines[i].Time > position
	}) - 1
}

// Format encodes lines back to LRC. Parse(Format(lines)) preserves the
// (timestamp, words) sequence for centisecond-aligned timestamps.
func Format(lines []Line) string {
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "[%02d:%02d.%02d]%s\n",
			line.Time/60000, (line.Time/1000)%60, (line.Time%1000)/10, line.Words)
	}
	return b.String()
}
