package random

import (
	"fmt"
	"testing"

	"github.com/boradatti/gummygrid/pkg/errors"
)

func TestDeterminism(t *testing.T) {
	a := New(0)
	b := New(0)
	a.SetSeed("jarvis")

	// Unrelated draws on another instance must not influence a fresh seed.
	b.SetSeed("noise")
	for i := 0; i < 17; i++ {
		b.Number(0, 100)
	}
	b.SetSeed("jarvis")

	for i := 0; i < 200; i++ {
		got, want := b.Number(0, 1000), a.Number(0, 1000)
		if got != want {
			t.Fatalf("draw %d: got %d, want %d", i, got, want)
		}
	}
}

func TestSetSeedResets(t *testing.T) {
	r := New(7)
	r.SetSeed("alpha")
	first := []int{r.Number(0, 99), r.Number(0, 99), r.Number(0, 99)}

	r.SetSeed("alpha")
	second := []int{r.Number(0, 99), r.Number(0, 99), r.Number(0, 99)}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d after reseed: got %d, want %d", i, second[i], first[i])
		}
	}
}

func TestSaltSeparatesSequences(t *testing.T) {
	a := New(1)
	b := New(2)
	a.SetSeed("jarvis")
	b.SetSeed("jarvis")

	same := true
	for i := 0; i < 50; i++ {
		if a.Number(0, 9999) != b.Number(0, 9999) {
			same = false
			break
		}
	}
	if same {
		t.Error("different salts produced identical 50-draw sequences")
	}
}

func TestNumberRange(t *testing.T) {
	tests := []struct {
		min, max int
	}{
		{0, 0},
		{0, 1},
		{5, 5},
		{-3, 3},
		{10, 1000},
	}
	r := New(0)
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d..%d", tt.min, tt.max), func(t *testing.T) {
			r.SetSeed("range-check")
			for i := 0; i < 500; i++ {
				v := r.Number(tt.min, tt.max)
				if v < tt.min || v > tt.max {
					t.Fatalf("Number(%d, %d) = %d out of range", tt.min, tt.max, v)
				}
			}
		})
	}
}

func TestBooleanUnbiased(t *testing.T) {
	r := New(0)
	trues := 0
	for i := 0; i < 2000; i++ {
		r.SetSeed(fmt.Sprintf("seed-%d", i))
		if r.Boolean() {
			trues++
		}
	}
	if trues < 700 || trues > 1300 {
		t.Errorf("unbiased Boolean: %d/2000 true, expected roughly half", trues)
	}
}

func TestBooleanBiasExtremes(t *testing.T) {
	r := New(0)
	for i := 0; i < 200; i++ {
		r.SetSeed(fmt.Sprintf("seed-%d", i))
		if r.Boolean(0) {
			t.Fatal("Boolean(0) returned true")
		}
	}
}

func TestBooleanIntegerWeight(t *testing.T) {
	// Bias 75 reads as 75 out of 100.
	r := New(0)
	trues := 0
	const n = 2000
	for i := 0; i < n; i++ {
		r.SetSeed(fmt.Sprintf("seed-%d", i))
		if r.Boolean(75) {
			trues++
		}
	}
	if trues < n*60/100 || trues > n*90/100 {
		t.Errorf("Boolean(75): %d/%d true, expected around 75%%", trues, n)
	}
}

func TestInverse(t *testing.T) {
	tests := []struct {
		bias float64
		want float64
	}{
		{0.25, 0.75},
		{0.5, 0.5},
		{1, 9},
		{5, 5},
		{75, 25},
		{10, 90},
	}
	for _, tt := range tests {
		if got := inverse(tt.bias); got != tt.want {
			t.Errorf("inverse(%v) = %v, want %v", tt.bias, got, tt.want)
		}
	}
}

func TestChoiceIndexUniform(t *testing.T) {
	r := New(0)
	r.SetSeed("choices")
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		idx, err := r.ChoiceIndex(4, nil)
		if err != nil {
			t.Fatalf("ChoiceIndex error: %v", err)
		}
		if idx < 0 || idx > 3 {
			t.Fatalf("index %d out of range", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 4 {
		t.Errorf("uniform draw over 500 samples hit only %d of 4 indices", len(seen))
	}
}

func TestChoiceIndexSingleElementConsumesNoDraw(t *testing.T) {
	a := New(0)
	b := New(0)
	a.SetSeed("jarvis")
	b.SetSeed("jarvis")

	if idx, err := a.ChoiceIndex(1, nil); err != nil || idx != 0 {
		t.Fatalf("single-element choice: idx=%d err=%v", idx, err)
	}
	// The two instances must still agree: the single-element choice above
	// must not have advanced a's hash.
	if a.Number(0, 1000) != b.Number(0, 1000) {
		t.Error("single-element choice consumed a draw")
	}
}

func TestChoiceIndexWeighted(t *testing.T) {
	r := New(0)
	counts := make([]int, 3)
	const n = 4000
	for i := 0; i < n; i++ {
		r.SetSeed(fmt.Sprintf("seed-%d", i))
		idx, err := r.ChoiceIndex(3, []float64{1, 1, 2})
		if err != nil {
			t.Fatalf("ChoiceIndex error: %v", err)
		}
		counts[idx]++
	}
	// Expected ratio 1:1:2.
	if counts[2] < n*40/100 || counts[2] > n*60/100 {
		t.Errorf("weight-2 entry selected %d/%d times, expected around half", counts[2], n)
	}
	for i := 0; i < 2; i++ {
		if counts[i] < n*15/100 || counts[i] > n*35/100 {
			t.Errorf("weight-1 entry %d selected %d/%d times, expected around a quarter", i, counts[i], n)
		}
	}
}

func TestChoiceIndexZeroWeightNeverSelected(t *testing.T) {
	r := New(0)
	for i := 0; i < 1000; i++ {
		r.SetSeed(fmt.Sprintf("seed-%d", i))
		idx, err := r.ChoiceIndex(3, []float64{1, 0, 3})
		if err != nil {
			t.Fatalf("ChoiceIndex error: %v", err)
		}
		if idx == 1 {
			t.Fatal("zero-weight entry was selected")
		}
	}
}

func TestChoiceIndexFractionalWeights(t *testing.T) {
	r := New(0)
	counts := make([]int, 2)
	const n = 2000
	for i := 0; i < n; i++ {
		r.SetSeed(fmt.Sprintf("seed-%d", i))
		idx, err := r.ChoiceIndex(2, []float64{0.25, 0.75})
		if err != nil {
			t.Fatalf("ChoiceIndex error: %v", err)
		}
		counts[idx]++
	}
	if counts[1] < n*60/100 || counts[1] > n*90/100 {
		t.Errorf("0.75-weight entry selected %d/%d times, expected around 75%%", counts[1], n)
	}
}

func TestChoiceIndexErrors(t *testing.T) {
	r := New(0)
	r.SetSeed("errors")

	if _, err := r.ChoiceIndex(0, nil); !errors.Is(err, errors.ErrCodeEmptyChoiceSet) {
		t.Errorf("empty set: got %v, want EMPTY_CHOICE_SET", err)
	}
	if _, err := r.ChoiceIndex(3, []float64{1, 2}); !errors.Is(err, errors.ErrCodeWeightMismatch) {
		t.Errorf("length mismatch: got %v, want WEIGHT_LENGTH_MISMATCH", err)
	}
	if _, err := r.ChoiceIndex(2, []float64{0, 0}); !errors.Is(err, errors.ErrCodeEmptyChoiceSet) {
		t.Errorf("all-zero weights: got %v, want EMPTY_CHOICE_SET", err)
	}
	if _, err := r.ChoiceIndex(1, []float64{1, 2}); !errors.Is(err, errors.ErrCodeWeightMismatch) {
		t.Errorf("single candidate with mismatched weights: got %v, want WEIGHT_LENGTH_MISMATCH", err)
	}
}

func TestChoiceValues(t *testing.T) {
	r := New(0)
	r.SetSeed("palette")
	colors := []string{"#ff0000", "#00ff00", "#0000ff"}
	v, err := Choice(r, colors, nil)
	if err != nil {
		t.Fatalf("Choice error: %v", err)
	}
	found := false
	for _, c := range colors {
		if v == c {
			found = true
		}
	}
	if !found {
		t.Errorf("Choice returned %q, not in input set", v)
	}
}

func TestNormalizeWeights(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []int
	}{
		{"integers", []float64{1, 1, 2}, []int{1, 1, 2}},
		{"fractions", []float64{0.25, 0.75}, []int{25, 75}},
		{"one decimal", []float64{1.5, 2}, []int{15, 20}},
		{"reducible", []float64{10, 20}, []int{1, 2}},
		{"zero entry", []float64{0, 0.5}, []int{0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeWeights(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("length %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d: got %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSeedSensitivity(t *testing.T) {
	r := New(0)
	r.SetSeed("jarvis")
	a := make([]int, 20)
	for i := range a {
		a[i] = r.Number(0, 1<<20)
	}

	r.SetSeed("jarvas")
	same := true
	for i := range a {
		if r.Number(0, 1<<20) != a[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("two distinct seeds produced identical 20-draw sequences")
	}
}
