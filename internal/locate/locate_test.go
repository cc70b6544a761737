package locate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/textvar/internal/textbuf"
)

func TestFindExactSpanSelection(t *testing.T) {
	b := textbuf.NewBufferFromString("x {{p|q}}^0 y")

	target, err := Find(b, textbuf.LineRange(0, 2, 11))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if target.Mode != ModeEditingExisting {
		t.Errorf("expected editing mode, got %s", target.Mode)
	}
	want := []string{"p", "q"}
	if !reflect.DeepEqual(target.Set.Entries(), want) {
		t.Errorf("expected %v, got %v", want, target.Set.Entries())
	}
	if target.Set.Active() != 0 {
		t.Errorf("expected active 0, got %d", target.Set.Active())
	}
	if target.Range != textbuf.LineRange(0, 2, 11) {
		t.Errorf("expected range [2,11), got %s", target.Range)
	}
}

func TestFindExpandsPartialSelection(t *testing.T) {
	// Selection starts one character inside the braces; it must
	// expand to the full span bounds.
	b := textbuf.NewBufferFromString("x {{p|q}}^0 y")

	target, err := Find(b, textbuf.LineRange(0, 3, 5))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if target.Mode != ModeEditingExisting {
		t.Errorf("expected editing mode, got %s", target.Mode)
	}
	if target.Range != textbuf.LineRange(0, 2, 11) {
		t.Errorf("expected expanded range [2,11), got %s", target.Range)
	}
}

func TestFindSelectionContainingSpan(t *testing.T) {
	b := textbuf.NewBufferFromString("x {{p|q}}^0 y")

	target, err := Find(b, textbuf.LineRange(0, 0, 13))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if target.Mode != ModeEditingExisting {
		t.Errorf("expected editing mode, got %s", target.Mode)
	}
	if target.Range != textbuf.LineRange(0, 2, 11) {
		t.Errorf("expected span bounds [2,11), got %s", target.Range)
	}
}

func TestFindFirstOverlappingSpanWins(t *testing.T) {
	b := textbuf.NewBufferFromString("{{a|b}}^0 and {{c|d}}^1")

	target, err := Find(b, textbuf.LineRange(0, 5, 20))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	want := []string{"a", "b"}
	if !reflect.DeepEqual(target.Set.Entries(), want) {
		t.Errorf("expected first span %v, got %v", want, target.Set.Entries())
	}
	if target.Range != textbuf.LineRange(0, 0, 9) {
		t.Errorf("expected first span bounds, got %s", target.Range)
	}
}

func TestFindPlainSelectionCreates(t *testing.T) {
	b := textbuf.NewBufferFromString("The quick fox")

	target, err := Find(b, textbuf.LineRange(0, 4, 9))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if target.Mode != ModeCreating {
		t.Errorf("expected creating mode, got %s", target.Mode)
	}
	if target.Set.Len() != 1 || target.Set.Entry(0) != "quick" {
		t.Errorf("expected [quick], got %v", target.Set.Entries())
	}
}

func TestFindSelectionBesideSpanCreates(t *testing.T) {
	b := textbuf.NewBufferFromString("word {{a|b}}^0")

	target, err := Find(b, textbuf.LineRange(0, 0, 4))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if target.Mode != ModeCreating {
		t.Errorf("expected creating mode, got %s", target.Mode)
	}
	if target.Set.Entry(0) != "word" {
		t.Errorf("expected word, got %q", target.Set.Entry(0))
	}
}

func TestFindRejectsMultiLine(t *testing.T) {
	b := textbuf.NewBufferFromString("one\ntwo")

	_, err := Find(b, textbuf.NewPointRange(
		textbuf.Point{Line: 0, Column: 0},
		textbuf.Point{Line: 1, Column: 1},
	))
	if !errors.Is(err, ErrMultiLineSelection) {
		t.Errorf("expected ErrMultiLineSelection, got %v", err)
	}
}

func TestFindRejectsEmpty(t *testing.T) {
	b := textbuf.NewBufferFromString("text")

	_, err := Find(b, textbuf.LineRange(0, 2, 2))
	if !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
}

func TestFindActiveFollowsDroppedEmptyCandidates(t *testing.T) {
	// A hand-edited span with an empty candidate: the active index
	// counts raw candidates, so it must follow its entry across the
	// drop rather than being clamped.
	b := textbuf.NewBufferFromString("{{a||b}}^2")

	target, err := Find(b, textbuf.LineRange(0, 0, 10))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	want := []string{"a", "b"}
	if !reflect.DeepEqual(target.Set.Entries(), want) {
		t.Errorf("expected %v, got %v", want, target.Set.Entries())
	}
	if target.Set.Active() != 1 {
		t.Errorf("expected active to follow its candidate to 1, got %d", target.Set.Active())
	}
}

func TestFindClampsOutOfRangeActive(t *testing.T) {
	b := textbuf.NewBufferFromString("{{a|b}}^9")

	target, err := Find(b, textbuf.LineRange(0, 0, 9))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if target.Set.Active() != 0 {
		t.Errorf("expected out-of-range active clamped to 0, got %d", target.Set.Active())
	}
}
