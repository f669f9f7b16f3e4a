package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type settings struct {
	separator string
	maxLength int
}

// Option configures slug generation.
type Option func(*settings)

// Separator overrides the default "-" between words.
func Separator(sep string) Option {
	return func(s *settings) {
		if sep != "" {
			s.separator = sep
		}
	}
}

// MaxLength truncates the slug to at most n runes, cutting at a separator
// boundary when possible.
func MaxLength(n int) Option {
	return func(s *settings) {
		s.maxLength = n
	}
}

// Make converts s into a lowercase URL-safe slug: diacritics are folded to
// their ASCII base characters and every run of non-alphanumeric characters
// collapses into one separator.
func Make(s string, opts ...Option) string {
	cfg := settings{separator: "-"}
	for _, opt := range opts {
		opt(&cfg)
	}

	folded := foldDiacritics(s)

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pendingSep = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingSep && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSep = true
		}
	}

	out := b.String()
	if cfg.maxLength > 0 {
		out = truncate(out, cfg.separator, cfg.maxLength)
	}
	return out
}

// foldDiacritics decomposes the string and strips combining marks, turning
// é into e and ü into u. Characters without an ASCII base survive unchanged
// and are handled by the alphanumeric filter above.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func truncate(s, sep string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	cut := string(runes[:maxLength])
	if i := strings.LastIndex(cut, sep); i > 0 {
		return cut[:i]
	}
	return cut
}
