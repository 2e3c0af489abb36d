// Package fuzzy ranks candidate strings against a query using tiered
// matching: exact, prefix, substring, then in-order subsequence. It backs
// both tab completion and the interactive picker's live filter.
package fuzzy

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Rank tiers. A subsequence match earns rankSubsequence plus a compactness
// bonus of up to compactnessMax, so it can at best tie a substring match.
const (
	rankExact       = 100
	rankPrefix      = 80
	rankSubstring   = 60
	rankSubsequence = 40
	compactnessMax  = 20
)

// scored pairs a candidate with its rank for the duration of one Match call.
type scored struct {
	candidate string
	rank      int
}

// Match filters and ranks candidates against query, case-insensitively.
// Only matching candidates are returned, ordered by descending rank.
// Equal-rank candidates keep their relative input order, so completion
// output is stable across keystrokes.
//
// An empty query returns the input unchanged. Empty candidates are skipped.
func Match(query string, candidates []string) []string {
	if query == "" {
		return candidates
	}

	q := strings.ToLower(query)
	pattern := subsequencePattern(q)

	results := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if r := rank(q, strings.ToLower(c), pattern); r > 0 {
			results = append(results, scored{candidate: c, rank: r})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].rank > results[j].rank
	})

	out := make([]string, len(results))
	for i, s := range results {
		out[i] = s.candidate
	}
	return out
}

// rank scores one lowercased candidate against the lowercased query.
// Returns 0 when the candidate does not match at all.
func rank(query, candidate string, pattern *regexp.Regexp) int {
	switch {
	case candidate == query:
		return rankExact
	case strings.HasPrefix(candidate, query):
		return rankPrefix
	case strings.Contains(candidate, query):
		return rankSubstring
	}

	loc := pattern.FindStringIndex(candidate)
	if loc == nil {
		return 0
	}

	// Compactness rewards subsequence matches whose characters sit close
	// together. The span is taken from the first (leftmost) match of the
	// pattern, not the minimal span over all positions.
	span := utf8.RuneCountInString(candidate[loc[0]:loc[1]])
	slack := span - utf8.RuneCountInString(query)
	bonus := compactnessMax - slack
	if bonus < 0 {
		bonus = 0
	}
	return rankSubsequence + bonus
}

// subsequencePattern compiles a pattern matching the query's characters in
// order with anything between them. Query characters are escaped first so
// user input is never interpreted as pattern syntax. The lazy joiner keeps
// the matched span as tight as the leftmost match allows.
func subsequencePattern(query string) *regexp.Regexp {
	parts := make([]string, 0, utf8.RuneCountInString(query))
	for _, r := range query {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return regexp.MustCompile(strings.Join(parts, ".*?"))
}
