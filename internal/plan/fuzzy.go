package plan

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum similarity for fuzzy suggestions.
const DefaultThreshold = 0.6

// Match is a fuzzy-matched candidate with its similarity score in [0, 1].
type Match struct {
	Text  string
	Score float64
}

// LevenshteinDistance returns the minimum number of single-character
// edits (insertions, deletions, substitutions, each costing 1) required
// to turn s1 into s2. Classic dynamic programming with a single rolling
// row, so space is O(min(len(s1), len(s2))).
func LevenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)

	// Keep the shorter string as the row.
	if len(r1) < len(r2) {
		r1, r2 = r2, r1
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	cur := make([]int, len(r2)+1)
	for i, c1 := range r1 {
		cur[0] = i + 1
		for j, c2 := range r2 {
			cost := 1
			if c1 == c2 {
				cost = 0
			}
			ins := prev[j+1] + 1
			del := cur[j] + 1
			sub := prev[j] + cost
			cur[j+1] = min(ins, del, sub)
		}
		prev, cur = cur, prev
	}

	return prev[len(r2)]
}

// SimilarItems scores every candidate against target and returns those at
// or above threshold, sorted by descending similarity. Ties keep the
// original candidate order.
//
// Scoring: a case-insensitive substring containment scores 1.0 for an
// exact match, otherwise 0.7 + 0.3·(len(target)/len(candidate)) — the
// more of the candidate the target covers, the higher the score. When
// target is not contained, the score falls back to normalized edit
// distance: 1 − distance/max(len), which is 1.0 when both are empty.
func SimilarItems(target string, candidates []string, threshold float64) []Match {
	if len(candidates) == 0 {
		return nil
	}

	targetLower := strings.ToLower(target)
	var matches []Match

	for _, candidate := range candidates {
		candidateLower := strings.ToLower(candidate)

		var score float64
		if strings.Contains(candidateLower, targetLower) {
			if targetLower == candidateLower {
				score = 1.0
			} else {
				score = 0.7 + 0.3*float64(len([]rune(targetLower)))/float64(len([]rune(candidateLower)))
			}
		} else {
			distance := LevenshteinDistance(targetLower, candidateLower)
			maxLen := max(len([]rune(targetLower)), len([]rune(candidateLower)))
			if maxLen == 0 {
				score = 1.0
			} else {
				score = 1.0 - float64(distance)/float64(maxLen)
			}
		}

		if score >= threshold {
			matches = append(matches, Match{Text: candidate, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
