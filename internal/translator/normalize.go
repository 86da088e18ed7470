package translator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Identifier constants.
const (
	// identifierMaxLen bounds sanitised identifiers; automation names are
	// truncated rather than rejected.
	identifierMaxLen = 50

	// identifierFallback is returned when sanitising leaves nothing usable.
	identifierFallback = "automation"
)

var (
	// identStripPattern matches everything outside word characters,
	// whitespace and hyphens.
	identStripPattern = regexp.MustCompile(`[^\w\s-]`)

	// identSeparatorPattern matches runs of whitespace and hyphens, which
	// collapse to a single underscore.
	identSeparatorPattern = regexp.MustCompile(`[\s-]+`)
)

// SanitizeIdentifier derives a stable, filesystem-safe identifier from a
// human title. It lower-cases, strips characters outside word/whitespace/
// hyphen, collapses separator runs to single underscores and truncates to
// 50 characters. It never fails: empty input yields a fixed fallback token.
func SanitizeIdentifier(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = identStripPattern.ReplaceAllString(s, "")
	s = identSeparatorPattern.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if len(s) > identifierMaxLen {
		s = strings.Trim(s[:identifierMaxLen], "_")
	}
	if s == "" {
		return identifierFallback
	}
	return s
}

// FormatOffset renders a sun offset as a zero-padded HH:MM:SS duration.
// The minutes value always lands in the minutes field with 00 hours and
// 00 seconds; a "before" sign produces a leading minus.
func FormatOffset(sign string, minutes int) string {
	s := fmt.Sprintf("00:%02d:00", minutes)
	if sign == OffsetBefore {
		return "-" + s
	}
	return s
}

// ParseOffset is the inverse of FormatOffset. The absence of a leading
// minus means "after". The second colon-separated field is the minutes
// value; anything unparseable defaults to 0.
func ParseOffset(raw string) (string, int) {
	sign := OffsetAfter
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "-") {
		sign = OffsetBefore
		s = strings.TrimPrefix(s, "-")
	}

	minutes := 0
	parts := strings.Split(s, ":")
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			minutes = n
		}
	}
	return sign, minutes
}
