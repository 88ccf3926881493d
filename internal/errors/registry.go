package errors

// Template is the registered shape of a coded error.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

var registry = map[string]Template{
	"E100": {
		Category:   CategoryConfig,
		Message:    "configuration file not found",
		Suggestion: "run 'selup init' to create a selup.json in the project root",
	},
	"E101": {
		Category:   CategoryConfig,
		Message:    "configuration file could not be parsed",
		Suggestion: "check selup.json for JSON syntax errors",
	},
	"E102": {
		Category:   CategoryConfig,
		Message:    "reveal threshold out of range",
		Suggestion: "set reveal.threshold to a value greater than 0 and at most 1",
	},
	"E103": {
		Category:   CategoryConfig,
		Message:    "duplicate element id",
		Suggestion: "every section and contact element needs a unique id",
	},
	"E104": {
		Category:   CategoryConfig,
		Message:    "incomplete contact configuration",
		Suggestion: "set all of contact.form, contact.input, and contact.error, or none of them",
	},
	"E105": {
		Category:   CategoryConfig,
		Message:    "empty element id",
		Suggestion: "remove the empty entry from the sections list",
	},
	"E110": {
		Category:   CategoryCLI,
		Message:    "static directory not found",
		Suggestion: "check static.dir in selup.json, or create the directory",
	},
}

// Lookup returns the template registered for a code.
func Lookup(code string) (Template, bool) {
	tmpl, ok := registry[code]
	return tmpl, ok
}
