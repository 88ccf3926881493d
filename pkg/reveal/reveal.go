// Package reveal implements the reveal-on-scroll controller: page
// sections marked with the reveal attribute receive a visual class the
// first time they intersect the viewport, then leave observation for
// good.
//
// The controller is written against the dom port and driven by
// intersection entries, so it runs identically under the session
// server (entries arrive over the wire) and under tests (entries are
// constructed directly).
package reveal

import (
	"encoding/json"
	"fmt"

	"github.com/Quiexx/selup-landing-demo/pkg/dom"
)

// Defaults and the page marker.
const (
	// DefaultThreshold is the fraction of an element's area that must
	// be inside the viewport for it to count as entered.
	DefaultThreshold = 0.2

	// DefaultClass is the visual class applied on reveal.
	DefaultClass = "is-visible"

	// MarkerAttr flags an element for reveal behavior.
	MarkerAttr = "data-reveal"

	// HookAttr is the attribute carrying the client hook config.
	HookAttr = "v-hook"
)

// Options configures the controller.
type Options struct {
	// Threshold is the minimum intersection ratio; zero means
	// DefaultThreshold.
	Threshold float64 `json:"threshold"`

	// Class is the class added on reveal; empty means DefaultClass.
	Class string `json:"class"`
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Class == "" {
		o.Class = DefaultClass
	}
	return o
}

// Entry is one intersection record delivered by the client observer:
// the watched element, its visible-area ratio, and whether it crossed
// the threshold inward (entered) or outward (left).
type Entry struct {
	Target       string
	Ratio        float64
	Intersecting bool
}

// Strategy is the capability-selected reveal mode, fixed at page load.
type Strategy uint8

const (
	// StrategyObserved waits for intersection entries.
	StrategyObserved Strategy = iota

	// StrategyImmediate reveals everything at startup; chosen when the
	// client lacks intersection observation support.
	StrategyImmediate
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyObserved:
		return "Observed"
	case StrategyImmediate:
		return "Immediate"
	default:
		return "Unknown"
	}
}

// SelectStrategy picks the reveal mode from the client capability.
func SelectStrategy(observerSupported bool) Strategy {
	if observerSupported {
		return StrategyObserved
	}
	return StrategyImmediate
}

// Controller watches the page's marked elements and reveals each at
// most once. Membership is fixed at construction; a revealed element
// is removed from the watch set and never re-added.
//
// Controller is not safe for concurrent use; it belongs to the session
// event loop.
type Controller struct {
	page    *dom.Page
	opts    Options
	watched map[string]struct{}
}

// New builds a controller over every element on the page carrying
// MarkerAttr, registered in document order. Order has no semantic
// weight; elements are handled independently.
func New(page *dom.Page, opts Options) *Controller {
	c := &Controller{
		page:    page,
		opts:    opts.withDefaults(),
		watched: make(map[string]struct{}),
	}
	for _, id := range page.IDsWithAttr(MarkerAttr) {
		c.watched[id] = struct{}{}
	}
	return c
}

// Options returns the effective options.
func (c *Controller) Options() Options { return c.opts }

// Watching reports whether the element is still under observation.
func (c *Controller) Watching(id string) bool {
	_, ok := c.watched[id]
	return ok
}

// WatchedCount returns the number of still-unrevealed elements.
func (c *Controller) WatchedCount() int { return len(c.watched) }

// HandleEntries processes one observer callback batch and returns the
// number of elements revealed. Entries for elements that are not
// intersecting are ignored; the controller only ever reveals, never
// hides. Entries for unknown or already-revealed elements are ignored.
func (c *Controller) HandleEntries(entries []Entry) int {
	revealed := 0
	for _, entry := range entries {
		if !entry.Intersecting {
			continue
		}
		if _, ok := c.watched[entry.Target]; !ok {
			continue
		}
		c.reveal(entry.Target)
		revealed++
	}
	return revealed
}

// RevealAll marks every watched element revealed immediately. This is
// the fallback for clients without intersection observation support.
// Returns the number of elements revealed.
func (c *Controller) RevealAll() int {
	revealed := 0
	for _, id := range c.page.IDsWithAttr(MarkerAttr) {
		if _, ok := c.watched[id]; !ok {
			continue
		}
		c.reveal(id)
		revealed++
	}
	return revealed
}

// reveal flips one element to its visible state and drops it from
// observation. The transition is terminal.
func (c *Controller) reveal(id string) {
	el, ok := c.page.Lookup(id)
	if ok {
		el.AddClass(c.opts.Class)
	}
	delete(c.watched, id)
}

// Hook returns the HookAttr value the client uses to configure its
// observer, in Name:{json} form.
func (c *Controller) Hook() string {
	b, _ := json.Marshal(c.opts)
	return fmt.Sprintf("Reveal:%s", b)
}
