package uitest

import (
	"testing"

	"github.com/Quiexx/selup-landing-demo/pkg/contact"
	"github.com/Quiexx/selup-landing-demo/pkg/dom"
	"github.com/Quiexx/selup-landing-demo/pkg/reveal"
)

// PageBuilder allows fluent construction of test pages.
type PageBuilder struct {
	sections    []string
	contactIDs  [3]string
	hasContact  bool
	revealOpts  reveal.Options
	contactOpts contact.Options
}

// NewPage creates a new page builder.
//
// Example:
//
//	h := uitest.NewPage().
//	    WithSections("hero", "features").
//	    WithContact("contact-form", "contact-email", "contact-error").
//	    Build()
func NewPage() *PageBuilder {
	return &PageBuilder{}
}

// WithSections adds reveal-marked sections in document order.
func (b *PageBuilder) WithSections(ids ...string) *PageBuilder {
	b.sections = append(b.sections, ids...)
	return b
}

// WithContact adds the contact form elements.
func (b *PageBuilder) WithContact(formID, inputID, errorID string) *PageBuilder {
	b.contactIDs = [3]string{formID, inputID, errorID}
	b.hasContact = true
	return b
}

// WithRevealOptions overrides the reveal options.
func (b *PageBuilder) WithRevealOptions(opts reveal.Options) *PageBuilder {
	b.revealOpts = opts
	return b
}

// WithContactOptions overrides the contact options.
func (b *PageBuilder) WithContactOptions(opts contact.Options) *PageBuilder {
	b.contactOpts = opts
	return b
}

// Build assembles the page and its controllers into a harness.
func (b *PageBuilder) Build() *Harness {
	page := dom.NewPage()
	for _, id := range b.sections {
		page.Add(id).SetAttr(reveal.MarkerAttr, "")
	}

	var validator *contact.Validator
	if b.hasContact {
		page.Add(b.contactIDs[0])
		page.Add(b.contactIDs[1])
		page.Add(b.contactIDs[2])
		validator, _ = contact.New(page,
			b.contactIDs[0], b.contactIDs[1], b.contactIDs[2], b.contactOpts)
	}

	ctrl := reveal.New(page, b.revealOpts)

	h := &Harness{
		Page:    page,
		Reveal:  ctrl,
		Contact: validator,
	}
	page.SetSink(dom.SinkFunc(func(m dom.Mutation) {
		h.mutations = append(h.mutations, m)
	}))
	return h
}

// Harness drives the page behaviors with synthetic events and records
// every mutation that would reach the wire.
type Harness struct {
	Page    *dom.Page
	Reveal  *reveal.Controller
	Contact *contact.Validator

	mutations []dom.Mutation
}

// Scroll delivers a full-ratio intersection for each target and
// returns the number of elements revealed.
func (h *Harness) Scroll(targets ...string) int {
	entries := make([]reveal.Entry, len(targets))
	for i, id := range targets {
		entries[i] = reveal.Entry{Target: id, Ratio: 1, Intersecting: true}
	}
	return h.Reveal.HandleEntries(entries)
}

// ScrollPartial delivers an intersection at the given ratio. Like a
// browser observer, it only reports the element as intersecting once
// the ratio reaches the configured threshold.
func (h *Harness) ScrollPartial(target string, ratio float64) int {
	entry := reveal.Entry{
		Target:       target,
		Ratio:        ratio,
		Intersecting: ratio >= h.Reveal.Options().Threshold,
	}
	return h.Reveal.HandleEntries([]reveal.Entry{entry})
}

// ScrollAway delivers a leave entry for the target.
func (h *Harness) ScrollAway(target string) int {
	entry := reveal.Entry{Target: target, Ratio: 0, Intersecting: false}
	return h.Reveal.HandleEntries([]reveal.Entry{entry})
}

// Type dispatches an input value change to the contact behavior.
func (h *Harness) Type(value string) {
	if h.Contact != nil {
		h.Contact.HandleInput(value)
	}
}

// Submit dispatches a submission attempt and reports whether it would
// be allowed to proceed.
func (h *Harness) Submit(value string) bool {
	if h.Contact == nil {
		return true
	}
	return h.Contact.HandleSubmit(value)
}

// Mutations returns every recorded mutation in dispatch order.
func (h *Harness) Mutations() []dom.Mutation {
	return h.mutations
}

// ResetMutations clears the recording without touching page state.
func (h *Harness) ResetMutations() {
	h.mutations = h.mutations[:0]
}

// ExpectVisible asserts that the element carries the reveal class.
func ExpectVisible(t *testing.T, h *Harness, id string) {
	t.Helper()
	el, ok := h.Page.Lookup(id)
	if !ok {
		t.Fatalf("element %q not on page", id)
	}
	if !el.HasClass(h.Reveal.Options().Class) {
		t.Errorf("expected %q to be visible", id)
	}
}

// ExpectHidden asserts that the element does not carry the reveal class.
func ExpectHidden(t *testing.T, h *Harness, id string) {
	t.Helper()
	el, ok := h.Page.Lookup(id)
	if !ok {
		t.Fatalf("element %q not on page", id)
	}
	if el.HasClass(h.Reveal.Options().Class) {
		t.Errorf("expected %q to be hidden", id)
	}
}

// ExpectErrorShown asserts that the contact error message is visible.
func ExpectErrorShown(t *testing.T, h *Harness) {
	t.Helper()
	if h.Contact == nil {
		t.Fatal("harness has no contact behavior")
	}
	if !h.Contact.ErrorShown() {
		t.Error("expected the contact error to be shown")
	}
}

// ExpectErrorHidden asserts that the contact error message is hidden.
func ExpectErrorHidden(t *testing.T, h *Harness) {
	t.Helper()
	if h.Contact == nil {
		t.Fatal("harness has no contact behavior")
	}
	if h.Contact.ErrorShown() {
		t.Error("expected the contact error to be hidden")
	}
}

// ExpectMutationCount asserts on the number of recorded mutations.
func ExpectMutationCount(t *testing.T, h *Harness, want int) {
	t.Helper()
	if got := len(h.mutations); got != want {
		t.Errorf("recorded %d mutations, want %d", got, want)
	}
}
