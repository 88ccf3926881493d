// Package uitest provides browserless testing helpers for the page
// behaviors.
//
// The package reduces boilerplate when testing reveal and contact
// logic by providing a fluent page builder, synthetic event dispatch,
// and assertions over the resulting element state.
//
// # Quick Start
//
//	func TestHeroReveals(t *testing.T) {
//	    h := uitest.NewPage().
//	        WithSections("hero", "features").
//	        Build()
//
//	    h.Scroll("hero")
//	    uitest.ExpectVisible(t, h, "hero")
//	    uitest.ExpectHidden(t, h, "features")
//	}
//
// # Synthetic Events
//
// The harness dispatches the same transitions the session server
// dispatches, without a connection:
//
//	h.Scroll("hero")             // intersection at full ratio
//	h.ScrollPartial("hero", 0.1) // intersection below threshold
//	h.Type("jane@example.com")   // input value change
//	ok := h.Submit("")           // submission attempt
//
// # Mutation Recording
//
// Every element mutation is recorded in order, so tests can assert on
// exactly what would reach the wire:
//
//	h.Submit("")
//	h.Submit("")
//	if len(h.Mutations()) != 2 {
//	    t.Error("second submit should not re-emit")
//	}
package uitest
