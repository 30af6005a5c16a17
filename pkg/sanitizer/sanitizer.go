package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reInvalidIDChars = regexp.MustCompile(`[^0-9\p{L}_.\-]+`)
	reMultiDash      = regexp.MustCompile(`-+`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func collapseDashes(s string) string {
	s = reMultiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SanitizeRoomID keeps letters, digits, '_', '.' and '-'; every other run of
// characters becomes a single dash. Case is preserved.
func SanitizeRoomID(input string) string {
	p := Pipeline{
		trim,
		func(s string) string { return reInvalidIDChars.ReplaceAllString(s, "-") },
		collapseDashes,
	}
	return p.Apply(input)
}

// SanitizeSlice applies strategy to every value, dropping empties and
// duplicates while keeping first-seen order.
func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
