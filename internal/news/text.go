package news

import (
	"regexp"
	"strings"
	"time"

	"currency-advisor/backend-go/internal/config"
)

var tagPattern = regexp.MustCompile(`<.*?>`)

var ukrDatePattern = regexp.MustCompile(`(\d{1,2})\s+(\p{L}+)\s+(\d{4})`)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripHTML removes tags, unescapes the common entities and collapses
// whitespace.
func StripHTML(text string) string {
	if text == "" {
		return ""
	}
	text = tagPattern.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// truncateRunes cuts by characters, not bytes, so Cyrillic text survives.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var feedDateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2 Jan 2006 15:04:05",
}

// ParseFeedDate tries the known feed date formats in order, then falls back
// to recognizing Ukrainian month names ("1 січня 2024"). The second return is
// false when nothing matched; callers default to now so the item is kept.
func ParseFeedDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, format := range feedDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.UTC(), true
		}
	}

	lower := strings.ToLower(raw)
	m := ukrDatePattern.FindStringSubmatch(lower)
	if m != nil {
		if _, ok := config.UkrainianMonths[m[2]]; ok {
			day := m[1]
			if len(day) == 1 {
				day = "0" + day
			}
			iso := m[3] + "-" + config.UkrainianMonths[m[2]] + "-" + day + "T12:00:00Z"
			if t, err := time.Parse(time.RFC3339, iso); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
