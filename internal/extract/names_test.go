package extract

import (
	"testing"

	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		wantName string
		wantSkip int
	}{
		{"Beachy", "Beachy", 0},
		{"eBeachy", "Beachy", 1},
		{"RQFirstOrLast", "FirstOrLast", 2},
		{"QRick", "Rick", 1},
		{"Rick", "Rick", 0},
		{"[Beachy]", "Beachy", 1},
		{"12Pinky,", "Pinky", 2},
		{"TlPinky", "Pinky", 2},
		{"|Cdubs21|", "Cdubs21", 1},
		{"43(+13)", "+13", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			name, skip := CleanName(tt.input)
			if name != tt.wantName || skip != tt.wantSkip {
				t.Errorf("CleanName(%q) = (%q, %d), want (%q, %d)", tt.input, name, skip, tt.wantName, tt.wantSkip)
			}
		})
	}
}

func TestNameEligibility(t *testing.T) {
	t.Parallel()

	c := newNameClassifier(config.DefaultExtraction())

	tests := []struct {
		name string
		want bool
	}{
		{"Beachy", true},
		{"Cdubs21", true},
		{"FirstOrLast", true},
		{"Al", true},
		{"JOHN", true},
		{"H1", false},
		{"OUT", false},
		{"HDCP", false},
		{"Par", false},
		{"Boiciak", false},
		{"GOLFZON", false},
		{"beachy", false},
		{"B", false},
		{"1234", false},
		{"Bea-chy", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.eligible(tt.name); got != tt.want {
				t.Errorf("eligible(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	t.Run("minimum length is configurable", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultExtraction()
		cfg.MinNameLength = 4
		if newNameClassifier(cfg).eligible("Al") {
			t.Error("expected Al to be rejected with minimum length 4")
		}
	})

	t.Run("extra excluded words", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultExtraction()
		cfg.ExtraExcludedWords = []string{"Clubhouse"}
		if newNameClassifier(cfg).eligible("Clubhouse") {
			t.Error("expected Clubhouse to be excluded")
		}
	})
}

func TestNameCandidatesOffsets(t *testing.T) {
	t.Parallel()

	e := New(config.DefaultExtraction())
	text := "43(+13) 12.4 eBeachy\nBoiciak Cdubs21"
	got := e.NameCandidates(text)

	want := []model.Token{
		{Kind: model.TokenNameCandidate, Text: "Beachy", Start: 14, End: 20},
		{Kind: model.TokenNameCandidate, Text: "Cdubs21", Start: 29, End: 36},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %+v, want %+v", i, got[i], want[i])
		}
		if text[got[i].Start:got[i].End] != got[i].Text {
			t.Errorf("offsets of %q do not point at the name", got[i].Text)
		}
	}
}
