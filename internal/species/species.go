// Package species normalizes raw classifier species labels into stable,
// chart-safe (canonical name, broad group) pairs. Normalization is total:
// every input maps to some pair, junk never reaches the output, and the
// function is pure.
package species

import (
	"regexp"
	"strings"
)

// Label is the normalized identity of a species: the user-facing canonical
// name and the coarser group used for aggregate charting.
type Label struct {
	CanonicalName string
	Group         string
}

var (
	// OtherLabel is the terminal pair for junk, too-broad and suppressed input.
	OtherLabel = Label{CanonicalName: "Other", Group: "Other"}
	// UnknownLabel is the terminal pair for real-looking labels the table and
	// heuristics do not recognize.
	UnknownLabel = Label{CanonicalName: "Unknown", Group: "Other"}
)

var (
	punctRe = regexp.MustCompile(`[^a-z0-9\s\-]`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// Clean canonicalizes a raw label for table lookup: the final segment of a
// taxonomy path, underscores to spaces, punctuation stripped except hyphens,
// whitespace collapsed, lowercased.
func Clean(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	// SpeciesNet taxonomy strings: "a;b;c;white_tailed_deer"
	if idx := strings.LastIndex(s, ";"); idx >= 0 {
		s = strings.TrimSpace(s[idx+1:])
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = punctRe.ReplaceAllString(s, " ")
	s = wsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// LastSegment returns the final segment of a taxonomy path with underscores
// replaced by spaces, preserving the original case. Used where the raw-ish
// label is kept for audit.
func LastSegment(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if idx := strings.LastIndex(s, ";"); idx >= 0 {
		s = strings.TrimSpace(s[idx+1:])
	}
	return strings.ReplaceAll(s, "_", " ")
}

// isBadLabel reports whether a cleaned label is empty, a junk token, a bare
// category too broad to be a species, or a vague taxonomic placeholder.
func isBadLabel(cleaned string) bool {
	if cleaned == "" {
		return true
	}
	if _, ok := junkValues[cleaned]; ok {
		return true
	}
	if _, ok := broadCategories[cleaned]; ok {
		return true
	}
	if _, ok := bannedLabels[cleaned]; ok {
		return true
	}
	return false
}

// IsUsableCandidate reports whether a raw candidate label is worth selecting
// at all. It runs before threshold selection so a high-confidence junk label
// never wins over a lower-confidence real one.
func IsUsableCandidate(raw string) bool {
	cleaned := Clean(raw)
	if isBadLabel(cleaned) {
		return false
	}
	if strings.Contains(cleaned, "no cv") {
		return false
	}
	return true
}

// Normalize maps a raw species label to its canonical pair. With
// suppressDomestic set, domestic dog and cat aliases resolve to Other: pets
// are not wildlife of interest on the ranch.
func Normalize(raw string, suppressDomestic bool) Label {
	s := Clean(raw)

	if isBadLabel(s) {
		return OtherLabel
	}

	if suppressDomestic {
		if _, ok := dogAliases[s]; ok {
			return OtherLabel
		}
		if _, ok := catAliases[s]; ok {
			return OtherLabel
		}
	}

	if label, ok := canonicalTable[s]; ok {
		return label
	}

	// Ordered substring heuristics catch composites like
	// "white tailed deer buck" that miss the exact table.
	for i := range heuristicRules {
		if heuristicRules[i].Match(s) {
			return heuristicRules[i].Result
		}
	}

	return UnknownLabel
}
