package cleaner

import (
	"bytes"
	"log/slog"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/nao1215/golfcard/internal/model"
)

const golfzonSample = "43(+13) 12.4 [el Beachy\n40(+5) 10.3 [el FirstOrLast\n44(+7) 18.2 Boiciak/Tcdubs21"

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "golfzon summary rows",
			input: golfzonSample,
			want:  "43(+13) 12.4 Beachy\n40(+5) 10.3 FirstOrLast\n44(+7) 18.2 Boiciak Cdubs21",
		},
		{
			name:  "whitespace collapses but line breaks stay",
			input: "43(+13)   12.4\t\tBeachy  \n\n  40(+5)  10.3 FirstOrLast ",
			want:  "43(+13) 12.4 Beachy\n40(+5) 10.3 FirstOrLast",
		},
		{
			name:  "crlf line endings",
			input: "41 Beachy\r\n42 Pinky\rAnn 5",
			want:  "41 Beachy\n42 Pinky\nAnn 5",
		},
		{
			name:  "full-width characters folded",
			input: "４３（+13） １２.４ Beachy",
			want:  "43(+13) 12.4 Beachy",
		},
		{
			name:  "noise lines dropped",
			input: "~~~\n43(+13) 12.4 Beachy\n- -\n==\naaaa\nxxxxx",
			want:  "43(+13) 12.4 Beachy\nxxxxx",
		},
		{
			name:  "pipes and underscores stripped",
			input: "|| Beachy __ 43(+13) |",
			want:  "Beachy 43(+13)",
		},
		{
			name:  "dropped handicap decimal restored",
			input: "Pinky 41(+11) -22",
			want:  "Pinky 41(+11) -2.2",
		},
		{
			name:  "implausible dropped decimal left alone",
			input: "Pinky 41(+11) +78",
			want:  "Pinky 41(+11) +78",
		},
		{
			name:  "split delta gets its parenthesis",
			input: "43+13) 12.4 Beachy",
			want:  "43(+13) 12.4 Beachy",
		},
		{
			name:  "duplicated parentheses collapse",
			input: "43((+13)) 12.4 Beachy",
			want:  "43(+13) 12.4 Beachy",
		},
		{
			name:  "merged delta",
			input: "4347) 12.4 Beachy",
			want:  "43(+47) 12.4 Beachy",
		},
		{
			name:  "capital i read for one",
			input: "4I(+11) 9.8 Pinky",
			want:  "41(+11) 9.8 Pinky",
		},
		{
			name:  "lower l read for decimal point",
			input: "44(+7) 16l1 Pinky",
			want:  "44(+7) 16.1 Pinky",
		},
		{
			name:  "tl border prefix",
			input: "44(+7) 18.2 TlPinky",
			want:  "44(+7) 18.2 Pinky",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace-only input",
			input: "  \n\t \n",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clean(tt.input, nil); got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		golfzonSample,
		"Pinky 41(+11) -22\n43+13) 12.4 Beachy",
		"|| H1 H2 H3 H4 H5 H6 H7 H8 H9 ||\nBeachy 4 5 3 4 5 4 3 5 4",
		"4347) 12.4 [el Beachy\n~~~\n4I(+11) 9.8 RQPinky",
	}
	corrections := []model.CorrectionEntry{
		{ID: 1, OCRText: "Pinkv", Corrected: "Pinky", Frequency: 3},
	}

	for _, input := range inputs {
		c := New()
		once := c.Clean(input, corrections).Text
		twice := c.Clean(once, corrections).Text
		if once != twice {
			t.Errorf("cleaning is not a projection:\nonce:  %q\ntwice: %q", once, twice)
		}
	}
}

func TestCleanCorrections(t *testing.T) {
	t.Parallel()

	t.Run("applied in frequency order with ids reported", func(t *testing.T) {
		t.Parallel()
		corrections := []model.CorrectionEntry{
			{ID: 1, OCRText: "Beachv", Corrected: "Beachy", Frequency: 2},
			{ID: 2, OCRText: "Pnky", Corrected: "Pinky", Frequency: 5},
			{ID: 3, OCRText: "Nobody", Corrected: "Somebody", Frequency: 9},
		}
		res := New().Clean("43(+13) 12.4 Beachv\n41(+11) 9.8 Pnky", corrections)

		if res.Text != "43(+13) 12.4 Beachy\n41(+11) 9.8 Pinky" {
			t.Errorf("unexpected text %q", res.Text)
		}
		if !reflect.DeepEqual(res.Applied, []int64{2, 1}) {
			t.Errorf("expected applied [2 1], got %v", res.Applied)
		}
	})

	t.Run("higher frequency wins the same span", func(t *testing.T) {
		t.Parallel()
		corrections := []model.CorrectionEntry{
			{ID: 1, OCRText: "Bechy", Corrected: "Beachy", Frequency: 1},
			{ID: 2, OCRText: "Bechy", Corrected: "Becky", Frequency: 9},
		}
		res := New().Clean("43(+13) 12.4 Bechy", corrections)
		if res.Text != "43(+13) 12.4 Becky" {
			t.Errorf("expected Becky, got %q", res.Text)
		}
		if !reflect.DeepEqual(res.Applied, []int64{2}) {
			t.Errorf("expected applied [2], got %v", res.Applied)
		}
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		t.Parallel()
		corrections := []model.CorrectionEntry{{ID: 1, OCRText: "beachv", Corrected: "Beachy", Frequency: 1}}
		res := New().Clean("43(+13) 12.4 Beachv", corrections)
		if res.Text != "43(+13) 12.4 Beachv" || len(res.Applied) != 0 {
			t.Errorf("expected no rewrite, got %q %v", res.Text, res.Applied)
		}
	})

	t.Run("growing and empty entries are skipped", func(t *testing.T) {
		t.Parallel()
		corrections := []model.CorrectionEntry{
			{ID: 1, OCRText: "Ann", Corrected: "Anne", Frequency: 4},
			{ID: 2, OCRText: "", Corrected: "X", Frequency: 4},
		}
		res := New().Clean("40(+5) 10.3 Ann", corrections)
		if res.Text != "40(+5) 10.3 Ann" {
			t.Errorf("expected text unchanged, got %q", res.Text)
		}
		if len(res.Applied) != 0 {
			t.Errorf("expected nothing applied, got %v", res.Applied)
		}
	})

	t.Run("caller slice is not reordered", func(t *testing.T) {
		t.Parallel()
		corrections := []model.CorrectionEntry{
			{ID: 1, OCRText: "a1", Corrected: "b1", Frequency: 1},
			{ID: 2, OCRText: "a2", Corrected: "b2", Frequency: 5},
		}
		New().Clean("x a1 a2", corrections)
		if corrections[0].ID != 1 {
			t.Error("expected caller's corrections to keep their order")
		}
	})
}

func TestCleanerOptions(t *testing.T) {
	t.Parallel()

	first := Pattern{Name: "a-to-x", Priority: 10, Expr: regexp.MustCompile(`A1`), Replace: "X1"}
	second := Pattern{Name: "x-to-y", Priority: 20, Expr: regexp.MustCompile(`X1`), Replace: "Y1"}

	t.Run("patterns run in ascending priority", func(t *testing.T) {
		t.Parallel()
		c := New(WithPatterns(second, first), WithMaxPasses(1))
		if got := c.Clean("A1 test", nil).Text; got != "Y1 test" {
			t.Errorf("expected Y1 test, got %q", got)
		}
	})

	t.Run("extra patterns join the defaults", func(t *testing.T) {
		t.Parallel()
		c := New(WithExtraPatterns(first))
		if got := c.Clean("[el Beachy A1", nil).Text; got != "Beachy X1" {
			t.Errorf("expected Beachy X1, got %q", got)
		}
	})

	t.Run("invalid pass limit ignored", func(t *testing.T) {
		t.Parallel()
		c := New(WithMaxPasses(0))
		if c.maxPasses != DefaultMaxPasses {
			t.Errorf("expected %d passes, got %d", DefaultMaxPasses, c.maxPasses)
		}
	})

	t.Run("logger receives debug output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		res := New(WithLogger(logger)).Clean(golfzonSample, nil)
		if !strings.Contains(buf.String(), "text cleaned") {
			t.Errorf("expected debug log, got %q", buf.String())
		}
		if res.Passes != 2 {
			t.Errorf("expected 2 passes, got %d", res.Passes)
		}
	})
}

func TestPatternRewrite(t *testing.T) {
	t.Parallel()

	p := Pattern{
		Expr: regexp.MustCompile(`(?m)(^|[ ])(\d)`),
		Rewrite: func(g []string) string {
			return g[1] + "#" + g[2]
		},
	}
	if got := p.Apply("1 a 2\n3"); got != "#1 a #2\n#3" {
		t.Errorf("unexpected rewrite %q", got)
	}
	if got := p.Apply("none"); got != "none" {
		t.Errorf("expected no change, got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("43(+13) 12.4 Beachy\nPinky")
	want := []model.Token{
		{Kind: model.TokenNoise, Text: "43(+13)", Start: 0, End: 7},
		{Kind: model.TokenNoise, Text: "12.4", Start: 8, End: 12},
		{Kind: model.TokenNoise, Text: "Beachy", Start: 13, End: 19},
		{Kind: model.TokenNoise, Text: "Pinky", Start: 20, End: 25},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %+v, want %+v", got, want)
	}

	if tokens := Tokenize("   "); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}
