package categories

import (
	"errors"
	"testing"
)

func TestSpliceMovesItem(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		from int
		to   int
		want []string
	}{
		{"forward", []string{"a", "b", "c", "d"}, 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", []string{"a", "b", "c", "d"}, 3, 1, []string{"a", "d", "b", "c"}},
		{"same index", []string{"a", "b", "c"}, 1, 1, []string{"a", "b", "c"}},
		{"to end", []string{"a", "b", "c"}, 0, 2, []string{"b", "c", "a"}},
		{"to start", []string{"a", "b", "c"}, 2, 0, []string{"c", "a", "b"}},
		{"single", []string{"a"}, 0, 0, []string{"a"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Splice(tc.in, tc.from, tc.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("length %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("index %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSpliceOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		from int
		to   int
	}{
		{"negative from", -1, 0},
		{"negative to", 0, -1},
		{"from too large", 3, 0},
		{"to too large", 0, 3},
	}
	items := []string{"a", "b", "c"}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Splice(items, tc.from, tc.to); !errors.Is(err, ErrBadIndex) {
				t.Errorf("expected ErrBadIndex, got %v", err)
			}
		})
	}
}

// Moving i -> j must keep every other element's relative order and must not
// modify the input.
func TestSplicePreservesRelativeOrder(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	orig := append([]string(nil), items...)

	for from := 0; from < len(items); from++ {
		for to := 0; to < len(items); to++ {
			got, err := Splice(items, from, to)
			if err != nil {
				t.Fatalf("Splice(%d,%d): %v", from, to, err)
			}
			if got[to] != items[from] {
				t.Errorf("Splice(%d,%d): moved item at %d is %q, want %q", from, to, to, got[to], items[from])
			}

			var rest []string
			for _, v := range got {
				if v != items[from] {
					rest = append(rest, v)
				}
			}
			var wantRest []string
			for i, v := range items {
				if i != from {
					wantRest = append(wantRest, v)
				}
			}
			for i := range wantRest {
				if rest[i] != wantRest[i] {
					t.Errorf("Splice(%d,%d): relative order broken at %d: got %v", from, to, i, got)
					break
				}
			}
		}
	}

	for i := range items {
		if items[i] != orig[i] {
			t.Fatal("Splice modified its input")
		}
	}
}
