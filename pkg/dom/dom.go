// Package dom provides the element port the behavior controllers are
// written against: a small handle interface plus an in-memory page
// model. Controllers only ever touch elements through the port, so
// tests substitute a plain Page and the server attaches a Sink that
// mirrors every mutation to the browser as a wire patch.
package dom

// Op is the kind of a DOM mutation.
type Op uint8

const (
	OpAddClass Op = iota + 1
	OpRemoveClass
	OpSetAttr
	OpRemoveAttr
)

// String returns the string representation of the op.
func (op Op) String() string {
	switch op {
	case OpAddClass:
		return "AddClass"
	case OpRemoveClass:
		return "RemoveClass"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	default:
		return "Unknown"
	}
}

// Mutation is one observable change to an element. Key holds the class
// name for class ops and the attribute name for attribute ops.
type Mutation struct {
	Op     Op
	Target string
	Key    string
	Value  string
}

// Sink observes page mutations. Mutations that do not change state
// (adding a present class, re-setting an identical attribute value)
// are not reported, so a double show-error reaches the sink once.
type Sink interface {
	Apply(Mutation)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Mutation)

// Apply implements Sink.
func (f SinkFunc) Apply(m Mutation) { f(m) }

// Element is a handle to one page element.
type Element interface {
	// ID returns the element's document id.
	ID() string

	// Value returns the element's current input value.
	Value() string

	// SetValue updates the element's input value. Value changes are
	// client-originated state, not a patch, so they bypass the sink.
	SetValue(string)

	// HasClass reports whether the class is present.
	HasClass(class string) bool

	// AddClass adds a CSS class. No-op if already present.
	AddClass(class string)

	// RemoveClass removes a CSS class. No-op if absent.
	RemoveClass(class string)

	// Attr returns an attribute value and whether it is set.
	Attr(key string) (string, bool)

	// SetAttr sets an attribute. No-op if already set to value.
	SetAttr(key, value string)

	// RemoveAttr removes an attribute. No-op if absent.
	RemoveAttr(key string)
}

// Page is an in-memory document model keyed by element id. Elements
// are registered once at construction time; lookups for unknown ids
// report absence rather than failing.
//
// Page is not safe for concurrent use. The session event loop is the
// single writer, matching the one-UI-thread model the behaviors assume.
type Page struct {
	elements map[string]*element
	order    []string
	sink     Sink
}

// NewPage creates an empty page model.
func NewPage() *Page {
	return &Page{elements: make(map[string]*element)}
}

// SetSink attaches a mutation observer. A nil sink keeps mutations
// in memory only.
func (p *Page) SetSink(s Sink) { p.sink = s }

// Add registers an element with optional initial classes and returns
// its handle. Re-adding an existing id returns the existing handle.
func (p *Page) Add(id string, classes ...string) Element {
	if el, ok := p.elements[id]; ok {
		return el
	}
	el := &element{
		page:    p,
		id:      id,
		classes: make(map[string]struct{}, len(classes)),
		attrs:   make(map[string]string),
	}
	for _, c := range classes {
		el.classes[c] = struct{}{}
	}
	p.elements[id] = el
	p.order = append(p.order, id)
	return el
}

// Lookup returns the handle for id, or ok=false if the element was
// never registered.
func (p *Page) Lookup(id string) (Element, bool) {
	el, ok := p.elements[id]
	return el, ok
}

// IDsWithAttr returns the ids of all elements carrying the attribute,
// in registration (document) order.
func (p *Page) IDsWithAttr(key string) []string {
	var ids []string
	for _, id := range p.order {
		if _, ok := p.elements[id].attrs[key]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of registered elements.
func (p *Page) Len() int { return len(p.elements) }

type element struct {
	page    *Page
	id      string
	value   string
	classes map[string]struct{}
	attrs   map[string]string
}

func (e *element) ID() string        { return e.id }
func (e *element) Value() string     { return e.value }
func (e *element) SetValue(v string) { e.value = v }

func (e *element) HasClass(class string) bool {
	_, ok := e.classes[class]
	return ok
}

func (e *element) AddClass(class string) {
	if _, ok := e.classes[class]; ok {
		return
	}
	e.classes[class] = struct{}{}
	e.emit(Mutation{Op: OpAddClass, Target: e.id, Key: class})
}

func (e *element) RemoveClass(class string) {
	if _, ok := e.classes[class]; !ok {
		return
	}
	delete(e.classes, class)
	e.emit(Mutation{Op: OpRemoveClass, Target: e.id, Key: class})
}

func (e *element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

func (e *element) SetAttr(key, value string) {
	if v, ok := e.attrs[key]; ok && v == value {
		return
	}
	e.attrs[key] = value
	e.emit(Mutation{Op: OpSetAttr, Target: e.id, Key: key, Value: value})
}

func (e *element) RemoveAttr(key string) {
	if _, ok := e.attrs[key]; !ok {
		return
	}
	delete(e.attrs, key)
	e.emit(Mutation{Op: OpRemoveAttr, Target: e.id, Key: key})
}

func (e *element) emit(m Mutation) {
	if e.page.sink != nil {
		e.page.sink.Apply(m)
	}
}
