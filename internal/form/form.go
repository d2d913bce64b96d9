package form

import "strconv"

// Form is a live instance of a schema: string values keyed by field name,
// a focus position, and the errors from the last failed validation.
type Form struct {
	Schema Schema
	values map[string]string
	errors map[string]string
	focus  int
}

// New creates an empty form for the schema.
func New(s Schema) *Form {
	return &Form{
		Schema: s,
		values: make(map[string]string),
		errors: make(map[string]string),
	}
}

// Reset clears all values, errors and focus back to defaults.
func (f *Form) Reset() {
	f.values = make(map[string]string)
	f.errors = make(map[string]string)
	f.focus = 0
}

// Set stores a field value and drops the field's stale error, so the user
// sees the message disappear as soon as they make a correction.
func (f *Form) Set(name, value string) {
	f.values[name] = value
	delete(f.errors, name)
}

// Get returns the current value for the field.
func (f *Form) Get(name string) string {
	return f.values[name]
}

// Bool interprets the field as a toggle.
func (f *Form) Bool(name string) bool {
	return f.values[name] == "true"
}

// SetBool stores a toggle value.
func (f *Form) SetBool(name string, v bool) {
	f.Set(name, strconv.FormatBool(v))
}

// Int parses the field as an integer; ok is false when empty or malformed.
func (f *Form) Int(name string) (int, bool) {
	n, err := strconv.Atoi(f.values[name])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Validate runs the schema's checks, stores the resulting errors, and
// reports whether the form is submittable.
func (f *Form) Validate() bool {
	f.errors = f.Schema.Validate(f.values)
	return len(f.errors) == 0
}

// Error returns the validation message for the field, empty when valid.
func (f *Form) Error(name string) string {
	return f.errors[name]
}

// SetError records an out-of-schema failure (cross-field rules,
// entity-specific checks) against a field.
func (f *Form) SetError(name, msg string) {
	f.errors[name] = msg
}

// HasErrors reports whether any field currently carries an error.
func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}

// Focused returns the field the cursor is on.
func (f *Form) Focused() Field {
	if len(f.Schema.Fields) == 0 {
		return Field{}
	}
	return f.Schema.Fields[f.focus]
}

// FocusIndex returns the current focus position.
func (f *Form) FocusIndex() int {
	return f.focus
}

// Next advances focus to the following field, wrapping.
func (f *Form) Next() {
	if n := len(f.Schema.Fields); n > 0 {
		f.focus = (f.focus + 1) % n
	}
}

// Prev moves focus to the preceding field, wrapping.
func (f *Form) Prev() {
	if n := len(f.Schema.Fields); n > 0 {
		f.focus = (f.focus - 1 + n) % n
	}
}
