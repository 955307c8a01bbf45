// Package dsv provides delimiter detection for DSV samples.
package dsv

import "strings"

// Sniffer detects which of the supported delimiters (tab, semicolon, pipe)
// a sample of DSV text uses.
type Sniffer struct {
	sample    string
	delimiter byte
	analyzed  bool
}

// NewSniffer creates a Sniffer with a sample of DSV data.
// For best results, provide at least 2-3 lines of data.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// DetectDelimiter returns the detected field delimiter.
// It falls back to tab when no candidate scores.
func (s *Sniffer) DetectDelimiter() byte {
	if !s.analyzed {
		s.delimiter = s.detectDelimiter()
		s.analyzed = true
	}
	return s.delimiter
}

// detectDelimiter scores each candidate delimiter by its occurrence count on
// the first line, with a bonus when the count is consistent across all
// sampled lines, and picks the highest scorer.
func (s *Sniffer) detectDelimiter() byte {
	if s.sample == "" {
		return '\t'
	}

	delimiters := []byte{'\t', ';', '|'}
	scores := make(map[byte]int)

	lines := strings.Split(s.sample, "\n")
	for _, delim := range delimiters {
		counts := make([]int, 0, len(lines))
		for _, line := range lines {
			if line == "" {
				continue
			}
			counts = append(counts, strings.Count(line, string(delim)))
		}

		if len(counts) > 0 && counts[0] > 0 {
			consistent := true
			for i := 1; i < len(counts); i++ {
				if counts[i] != counts[0] {
					consistent = false
					break
				}
			}
			if consistent {
				scores[delim] = counts[0] * 10 // bonus for consistency
			} else {
				scores[delim] = counts[0]
			}
		}
	}

	best := byte('\t')
	bestScore := 0
	for delim, score := range scores {
		if score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}
