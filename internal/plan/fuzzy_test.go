package plan

import (
	"math"
	"testing"
)

// --- LevenshteinDistance ---

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"kitten", "sitting", 3},
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"same", "same", 0},
		{"flaw", "lawn", 2},
		{"a", "b", 1},
		{"write tests", "write test", 1},
	}
	for _, tt := range tests {
		if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestLevenshteinDistance_Symmetric(t *testing.T) {
	if LevenshteinDistance("short", "much longer string") != LevenshteinDistance("much longer string", "short") {
		t.Error("distance should be symmetric")
	}
}

// --- SimilarItems ---

func TestSimilarItems_SubstringBeatsEditDistance(t *testing.T) {
	matches := SimilarItems("Write test", []string{"Write test file", "Run tests", "Deploy app"}, 0.5)

	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2: %v", len(matches), matches)
	}
	if matches[0].Text != "Write test file" {
		t.Errorf("top match = %q, want %q", matches[0].Text, "Write test file")
	}
	if matches[1].Text != "Run tests" {
		t.Errorf("second match = %q, want %q", matches[1].Text, "Run tests")
	}
	for _, m := range matches {
		if m.Text == "Deploy app" {
			t.Error("Deploy app should fall below the threshold")
		}
	}
}

func TestSimilarItems_ExactMatchScoresOne(t *testing.T) {
	matches := SimilarItems("write tests", []string{"Write Tests"}, 0.6)
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	if matches[0].Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", matches[0].Score)
	}
}

func TestSimilarItems_SubstringScoreRewardsCoverage(t *testing.T) {
	// target covers 10 of 15 candidate characters: 0.7 + 0.3*(10/15) = 0.9
	matches := SimilarItems("Write test", []string{"Write test file"}, 0.6)
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	want := 0.7 + 0.3*10.0/15.0
	if math.Abs(matches[0].Score-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", matches[0].Score, want)
	}
}

func TestSimilarItems_ThresholdExcludes(t *testing.T) {
	if matches := SimilarItems("completely different", []string{"unrelated thing"}, 0.6); len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}

func TestSimilarItems_EmptyCandidates(t *testing.T) {
	if matches := SimilarItems("anything", nil, 0.6); matches != nil {
		t.Errorf("matches = %v, want nil", matches)
	}
}

func TestSimilarItems_StableOrderOnTies(t *testing.T) {
	// Two identical candidates tie exactly; original order must hold.
	matches := SimilarItems("task", []string{"task one", "task one"}, 0.5)
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Text != "task one" || matches[1].Text != "task one" {
		t.Errorf("unexpected order: %v", matches)
	}
}

func TestSimilarItems_DescendingScores(t *testing.T) {
	matches := SimilarItems("test", []string{"test", "run test", "integration test suite"}, 0.1)
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("scores not descending: %v", matches)
		}
	}
}
