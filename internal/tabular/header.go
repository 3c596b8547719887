package tabular

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const bom = "\ufeff"

// NormalizeHeader applies NFKC, drops a byte order mark, trims and
// collapses internal whitespace runs to one space.
func NormalizeHeader(s string) string {
	s = strings.TrimPrefix(s, bom)
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// normalizeHeaders normalizes every header, names blank headers
// "Unnamed: <i>", pads to width and suffixes repeats with ".1", ".2", ...
func normalizeHeaders(raw []string, width int) []string {
	if width < len(raw) {
		width = len(raw)
	}
	headers := make([]string, width)
	seen := make(map[string]int, width)
	taken := make(map[string]bool, width)
	for i := range headers {
		h := ""
		if i < len(raw) {
			h = NormalizeHeader(raw[i])
		}
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		if !taken[h] {
			taken[h] = true
			headers[i] = h
			continue
		}
		for {
			seen[h]++
			candidate := fmt.Sprintf("%s.%d", h, seen[h])
			if !taken[candidate] {
				taken[candidate] = true
				headers[i] = candidate
				break
			}
		}
	}
	return headers
}
