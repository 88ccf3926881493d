package reveal

import (
	"strings"
	"testing"

	"github.com/Quiexx/selup-landing-demo/pkg/dom"
)

func newMarkedPage(ids ...string) *dom.Page {
	p := dom.NewPage()
	for _, id := range ids {
		p.Add(id).SetAttr(MarkerAttr, "")
	}
	return p
}

func TestRevealOnIntersect(t *testing.T) {
	page := newMarkedPage("hero", "features", "pricing")
	c := New(page, Options{})

	n := c.HandleEntries([]Entry{
		{Target: "hero", Ratio: 0.25, Intersecting: true},
	})
	if n != 1 {
		t.Errorf("revealed = %d, want 1", n)
	}

	el, _ := page.Lookup("hero")
	if !el.HasClass(DefaultClass) {
		t.Error("hero should carry the reveal class")
	}
	if c.Watching("hero") {
		t.Error("hero should be deregistered after reveal")
	}
	if !c.Watching("features") || !c.Watching("pricing") {
		t.Error("untouched elements should remain watched")
	}
}

func TestNonIntersectingEntryIgnored(t *testing.T) {
	page := newMarkedPage("hero")
	c := New(page, Options{})

	n := c.HandleEntries([]Entry{
		{Target: "hero", Ratio: 0.0, Intersecting: false},
	})
	if n != 0 {
		t.Errorf("revealed = %d, want 0", n)
	}

	el, _ := page.Lookup("hero")
	if el.HasClass(DefaultClass) {
		t.Error("non-intersecting entry must not reveal")
	}
	if !c.Watching("hero") {
		t.Error("hero should still be watched")
	}
}

func TestRevealAtMostOnce(t *testing.T) {
	page := newMarkedPage("hero")
	c := New(page, Options{})

	batch := []Entry{{Target: "hero", Ratio: 0.9, Intersecting: true}}
	if n := c.HandleEntries(batch); n != 1 {
		t.Fatalf("first batch revealed %d, want 1", n)
	}
	// A late duplicate entry for an already-revealed element.
	if n := c.HandleEntries(batch); n != 0 {
		t.Errorf("second batch revealed %d, want 0", n)
	}
}

func TestRevealNeverHides(t *testing.T) {
	page := newMarkedPage("hero")
	c := New(page, Options{})

	c.HandleEntries([]Entry{{Target: "hero", Ratio: 0.5, Intersecting: true}})
	// Scrolled back out: an exit entry for a revealed element.
	c.HandleEntries([]Entry{{Target: "hero", Ratio: 0.0, Intersecting: false}})

	el, _ := page.Lookup("hero")
	if !el.HasClass(DefaultClass) {
		t.Error("reveal class must survive exit entries")
	}
}

func TestUnknownTargetIgnored(t *testing.T) {
	page := newMarkedPage("hero")
	c := New(page, Options{})

	n := c.HandleEntries([]Entry{
		{Target: "nonexistent", Ratio: 1.0, Intersecting: true},
	})
	if n != 0 {
		t.Errorf("revealed = %d, want 0", n)
	}
}

func TestBatchHandling(t *testing.T) {
	page := newMarkedPage("hero", "features", "pricing")
	c := New(page, Options{})

	n := c.HandleEntries([]Entry{
		{Target: "hero", Ratio: 0.3, Intersecting: true},
		{Target: "features", Ratio: 0.1, Intersecting: false},
		{Target: "pricing", Ratio: 0.21, Intersecting: true},
	})
	if n != 2 {
		t.Errorf("revealed = %d, want 2", n)
	}
	if c.WatchedCount() != 1 {
		t.Errorf("watched = %d, want 1", c.WatchedCount())
	}
}

func TestRevealAllFallback(t *testing.T) {
	page := newMarkedPage("hero", "features", "pricing")
	c := New(page, Options{})

	if n := c.RevealAll(); n != 3 {
		t.Errorf("revealed = %d, want 3", n)
	}
	for _, id := range []string{"hero", "features", "pricing"} {
		el, _ := page.Lookup(id)
		if !el.HasClass(DefaultClass) {
			t.Errorf("%s should be revealed", id)
		}
	}
	if c.WatchedCount() != 0 {
		t.Errorf("watched = %d, want 0", c.WatchedCount())
	}

	// Idempotent: nothing left to reveal.
	if n := c.RevealAll(); n != 0 {
		t.Errorf("second RevealAll revealed %d, want 0", n)
	}
}

func TestOnlyMarkedElementsWatched(t *testing.T) {
	page := dom.NewPage()
	page.Add("hero").SetAttr(MarkerAttr, "")
	page.Add("contact-form") // No marker

	c := New(page, Options{})
	if c.Watching("contact-form") {
		t.Error("unmarked elements must not be watched")
	}
	if c.WatchedCount() != 1 {
		t.Errorf("watched = %d, want 1", c.WatchedCount())
	}
}

func TestSelectStrategy(t *testing.T) {
	if got := SelectStrategy(true); got != StrategyObserved {
		t.Errorf("SelectStrategy(true) = %v, want Observed", got)
	}
	if got := SelectStrategy(false); got != StrategyImmediate {
		t.Errorf("SelectStrategy(false) = %v, want Immediate", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	c := New(dom.NewPage(), Options{})

	opts := c.Options()
	if opts.Threshold != DefaultThreshold {
		t.Errorf("threshold = %v, want %v", opts.Threshold, DefaultThreshold)
	}
	if opts.Class != DefaultClass {
		t.Errorf("class = %q, want %q", opts.Class, DefaultClass)
	}
}

func TestHookValue(t *testing.T) {
	c := New(dom.NewPage(), Options{})

	hook := c.Hook()
	if !strings.HasPrefix(hook, "Reveal:") {
		t.Errorf("hook = %q, want Reveal: prefix", hook)
	}
	if !strings.Contains(hook, "0.2") {
		t.Errorf("hook %q should carry the threshold", hook)
	}
	if !strings.Contains(hook, DefaultClass) {
		t.Errorf("hook %q should carry the class", hook)
	}
}
