package normalize

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/quizcraft/backend/internal/models"
)

// Config bounds the size of emitted content units, in bytes of
// canonical text.
type Config struct {
	MinUnitLength int
	MaxUnitLength int
}

// Normalize cleans raw text and segments it into ordered content
// units. Offsets index into the canonical text returned alongside the
// units: contiguous, non-overlapping, covering the whole canonical
// string. Returns models.ErrEmptyInput when nothing usable remains
// after whitespace collapsing.
func Normalize(raw string, cfg Config) ([]models.ContentUnit, string, error) {
	canonical := Canonicalize(raw)
	if canonical == "" {
		return nil, "", models.ErrEmptyInput
	}

	spans := splitSentences(canonical)
	spans = mergeShort(spans, cfg.MinUnitLength, cfg.MaxUnitLength)
	spans = splitLong(spans, canonical, cfg.MaxUnitLength)

	units := make([]models.ContentUnit, 0, len(spans))
	for _, sp := range spans {
		units = append(units, models.ContentUnit{
			ID:          uuid.NewString(),
			Text:        strings.TrimSpace(canonical[sp.start:sp.end]),
			SourceStart: sp.start,
			SourceEnd:   sp.end,
		})
	}
	return units, canonical, nil
}

// Canonicalize applies Unicode NFC normalization and collapses all
// whitespace runs to single spaces.
func Canonicalize(raw string) string {
	return strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
}

type span struct {
	start int
	end   int
}

// Words that end with a period without ending a sentence.
var abbreviations = map[string]bool{
	"Mr": true, "Mrs": true, "Ms": true, "Dr": true, "Prof": true,
	"St": true, "Jr": true, "Sr": true, "vs": true, "Fig": true,
	"No": true, "approx": true,
}

// splitSentences finds sentence boundaries in canonical text. A
// boundary is a terminator (. ! ?) followed by a space, except after
// a known abbreviation or a single-letter initial.
func splitSentences(text string) []span {
	var spans []span
	start := 0

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '.' && ch != '!' && ch != '?' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		if ch == '.' && isAbbreviation(text[start:i]) {
			continue
		}

		// Include trailing closing quote in the sentence.
		end := i + 1
		if end < len(text) && (text[end] == '"' || text[end] == '\'') {
			end++
		}
		spans = append(spans, span{start: start, end: end})

		// The next span starts right at the boundary; leading
		// whitespace is trimmed from unit text, not from offsets,
		// so spans stay contiguous.
		start = end
		i = end - 1
	}

	if start < len(text) {
		spans = append(spans, span{start: start, end: len(text)})
	}
	return spans
}

// isAbbreviation reports whether the sentence fragment ends in a word
// that should not terminate a sentence at the following period.
func isAbbreviation(fragment string) bool {
	idx := strings.LastIndexByte(fragment, ' ')
	word := fragment[idx+1:]
	if len(word) == 1 && word[0] >= 'A' && word[0] <= 'Z' {
		return true // Initial, e.g. "J. Smith"
	}
	return abbreviations[word]
}

// mergeShort joins adjacent sentences until each unit reaches the
// minimum length. A trailing fragment shorter than the minimum is
// folded into the previous unit when that stays within the maximum;
// otherwise it is emitted undersized rather than dropped.
func mergeShort(spans []span, minLen, maxLen int) []span {
	if len(spans) == 0 {
		return spans
	}

	var merged []span
	cur := spans[0]
	for _, sp := range spans[1:] {
		if cur.end-cur.start >= minLen {
			merged = append(merged, cur)
			cur = sp
			continue
		}
		cur.end = sp.end
	}

	if cur.end-cur.start < minLen && len(merged) > 0 {
		last := merged[len(merged)-1]
		if cur.end-last.start <= maxLen {
			merged[len(merged)-1] = span{start: last.start, end: cur.end}
			return merged
		}
	}
	return append(merged, cur)
}

// splitLong breaks units over the maximum at the last word boundary
// that fits, so no text is ever discarded. The length budget is
// measured from the first non-space byte: spans after a sentence
// boundary carry a leading separator space that the unit text trims
// anyway, and counting it would shift cuts into the middle of words.
func splitLong(spans []span, text string, maxLen int) []span {
	var out []span
	for _, sp := range spans {
		for {
			lead := 0
			for sp.start+lead < sp.end && text[sp.start+lead] == ' ' {
				lead++
			}
			if sp.end-sp.start-lead <= maxLen {
				break
			}
			limit := lead + maxLen
			cut := strings.LastIndexByte(text[sp.start:sp.start+limit], ' ')
			if cut <= lead {
				cut = limit
			}
			out = append(out, span{start: sp.start, end: sp.start + cut})
			sp.start += cut
		}
		out = append(out, sp)
	}
	return out
}
