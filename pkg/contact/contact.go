// Package contact implements the contact-field validator: a form
// submission is held back while its required input is empty after
// trimming, with an inline error element and an aria-invalid marker on
// the input. The error clears as soon as the user types a non-empty
// value.
package contact

import (
	"github.com/Quiexx/selup-landing-demo/pkg/dom"
	"github.com/Quiexx/selup-landing-demo/pkg/validate"
)

// Defaults.
const (
	// DefaultErrorClass is the class making the error element visible.
	DefaultErrorClass = "is-visible"

	// DefaultInvalidAttr is the accessibility marker set on the input
	// while the error is shown.
	DefaultInvalidAttr = "aria-invalid"
)

// Options configures the validator.
type Options struct {
	// ErrorClass is the class toggled on the error element; empty
	// means DefaultErrorClass.
	ErrorClass string

	// InvalidAttr is the attribute toggled on the input; empty means
	// DefaultInvalidAttr.
	InvalidAttr string
}

func (o Options) withDefaults() Options {
	if o.ErrorClass == "" {
		o.ErrorClass = DefaultErrorClass
	}
	if o.InvalidAttr == "" {
		o.InvalidAttr = DefaultInvalidAttr
	}
	return o
}

// Validator guards one form's required input.
//
// Per input the state machine is {no-error, error-shown}: a submit
// attempt with an empty trimmed value shows the error; any input event
// with a non-empty trimmed value hides it. Every other transition is a
// self-loop. Note the deliberate asymmetry: a submit that proceeds
// does not hide an already-shown error; only the input path clears it.
type Validator struct {
	form     dom.Element
	input    dom.Element
	errEl    dom.Element
	opts     Options
	required validate.Validator
}

// New builds a validator over the form, input, and error elements.
// If any of the three is missing from the page, New returns ok=false
// and nothing is installed; the absence is not an error.
func New(page *dom.Page, formID, inputID, errorID string, opts Options) (*Validator, bool) {
	form, ok := page.Lookup(formID)
	if !ok {
		return nil, false
	}
	input, ok := page.Lookup(inputID)
	if !ok {
		return nil, false
	}
	errEl, ok := page.Lookup(errorID)
	if !ok {
		return nil, false
	}

	return &Validator{
		form:     form,
		input:    input,
		errEl:    errEl,
		opts:     opts.withDefaults(),
		required: validate.Required(""),
	}, true
}

// FormID returns the id of the guarded form.
func (v *Validator) FormID() string { return v.form.ID() }

// InputID returns the id of the guarded input.
func (v *Validator) InputID() string { return v.input.ID() }

// ErrorShown reports whether the error element is currently visible.
func (v *Validator) ErrorShown() bool {
	return v.errEl.HasClass(v.opts.ErrorClass)
}

// ShowError makes the error element visible and marks the input
// invalid for assistive technology. Idempotent.
func (v *Validator) ShowError() {
	v.errEl.AddClass(v.opts.ErrorClass)
	v.input.SetAttr(v.opts.InvalidAttr, "true")
}

// HideError hides the error element and clears the invalid marker.
// Idempotent.
func (v *Validator) HideError() {
	v.errEl.RemoveClass(v.opts.ErrorClass)
	v.input.RemoveAttr(v.opts.InvalidAttr)
}

// HandleSubmit processes a submission attempt carrying the input's
// value at submit time. It returns false and shows the error when the
// trimmed value is empty; the submission must not proceed. A non-empty
// value returns true and leaves the error state untouched.
func (v *Validator) HandleSubmit(value string) bool {
	v.input.SetValue(value)

	if v.required.Validate(value) != nil {
		v.ShowError()
		return false
	}
	return true
}

// HandleInput processes a value change. A non-empty trimmed value
// hides the error; an empty one changes nothing (the error is neither
// cleared nor re-shown).
func (v *Validator) HandleInput(value string) {
	v.input.SetValue(value)

	if v.required.Validate(value) == nil {
		v.HideError()
	}
}
