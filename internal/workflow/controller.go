// Package workflow generalizes the page logic every entity screen shares:
// load the collection, filter it, open a create/edit modal, submit, and
// confirm-then-delete. Screens own their forms and network calls; the
// controller owns the state machine.
package workflow

import (
	"strings"

	"github.com/foliohq/folio/pkg/client"
)

// State is the lifecycle of an entity page.
type State int

const (
	Loading State = iota
	Idle
	ModalOpen
	Submitting
)

// Mode distinguishes the two modal variants.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Controller drives one entity page. It is generic over the entity type;
// screens supply a key function (for edit/delete targeting) and a match
// function (for the search filter).
type Controller[T any] struct {
	state        State
	mode         Mode
	items        []T
	cursor       int
	search       string
	searching    bool
	editKey      string // key of the entity the open modal is editing
	deleteTarget string // key pending delete confirmation, "" when none
	pending      int    // outstanding initial fetches before leaving Loading
	status       string
	statusIsErr  bool

	keyOf func(T) string
	match func(T, string) bool
}

// New creates a controller in Loading, expecting fetches initial loads
// (the entity list plus any auxiliary fetches such as the skills list)
// before the page becomes Idle.
func New[T any](keyOf func(T) string, match func(T, string) bool, fetches int) *Controller[T] {
	if fetches < 1 {
		fetches = 1
	}
	return &Controller[T]{
		state:   Loading,
		pending: fetches,
		keyOf:   keyOf,
		match:   match,
	}
}

// State returns the current page state.
func (c *Controller[T]) State() State { return c.state }

// Mode returns the open modal's variant; meaningful only in ModalOpen or
// Submitting.
func (c *Controller[T]) Mode() Mode { return c.mode }

// Loading reports whether any initial fetch is still outstanding.
func (c *Controller[T]) LoadingInitial() bool { return c.state == Loading }

// ListLoaded records the entity list arriving. A failed fetch still moves
// the page toward Idle with an empty collection and a surfaced error.
func (c *Controller[T]) ListLoaded(items []T, err error) {
	if err != nil {
		c.items = nil
		c.fail(client.Message(err))
	} else {
		c.items = items
	}
	if c.cursor >= len(c.items) {
		c.cursor = 0
	}
	c.arrived()
}

// DepLoaded records an auxiliary fetch (e.g. the skills list) arriving.
// Failures surface but never block the page.
func (c *Controller[T]) DepLoaded(err error) {
	if err != nil {
		c.fail(client.Message(err))
	}
	c.arrived()
}

func (c *Controller[T]) arrived() {
	if c.state != Loading {
		return
	}
	if c.pending > 0 {
		c.pending--
	}
	if c.pending == 0 {
		c.state = Idle
	}
}

// Refreshed replaces the collection after a post-mutation refetch.
func (c *Controller[T]) Refreshed(items []T, err error) {
	if err != nil {
		c.fail(client.Message(err))
		return
	}
	c.items = items
	if c.cursor >= len(c.items) {
		c.cursor = 0
	}
}

// OpenCreate transitions Idle -> ModalOpen{create}.
func (c *Controller[T]) OpenCreate() bool {
	if c.state != Idle || c.deleteTarget != "" {
		return false
	}
	c.state = ModalOpen
	c.mode = ModeCreate
	c.editKey = ""
	return true
}

// OpenEdit transitions Idle -> ModalOpen{edit} for the selected row,
// returning the entity to pre-populate the form from.
func (c *Controller[T]) OpenEdit() (T, bool) {
	var zero T
	if c.state != Idle || c.deleteTarget != "" {
		return zero, false
	}
	item, okSel := c.Selected()
	if !okSel {
		return zero, false
	}
	c.state = ModalOpen
	c.mode = ModeEdit
	c.editKey = c.keyOf(item)
	return item, true
}

// EditKey returns the key of the entity being edited, empty in create mode.
func (c *Controller[T]) EditKey() string { return c.editKey }

// Cancel discards the open modal: ModalOpen -> Idle.
func (c *Controller[T]) Cancel() bool {
	if c.state != ModalOpen {
		return false
	}
	c.state = Idle
	c.editKey = ""
	return true
}

// BeginSubmit transitions ModalOpen -> Submitting. The screen performs the
// network call and reports back through SubmitDone.
func (c *Controller[T]) BeginSubmit() bool {
	if c.state != ModalOpen {
		return false
	}
	c.state = Submitting
	return true
}

// SubmitDone resolves a submission. Success closes the modal and returns
// true so the screen refetches; failure re-opens the modal with the error
// surfaced so the user can correct input and retry.
func (c *Controller[T]) SubmitDone(err error) bool {
	if c.state != Submitting {
		return false
	}
	if err != nil {
		c.state = ModalOpen
		c.fail(client.Message(err))
		return false
	}
	c.state = Idle
	c.editKey = ""
	return true
}

// RequestDelete arms the confirmation prompt for the selected row.
func (c *Controller[T]) RequestDelete() bool {
	if c.state != Idle || c.deleteTarget != "" {
		return false
	}
	item, okSel := c.Selected()
	if !okSel {
		return false
	}
	c.deleteTarget = c.keyOf(item)
	return true
}

// ConfirmingDelete returns the armed target key, empty when none.
func (c *Controller[T]) ConfirmingDelete() string { return c.deleteTarget }

// ConfirmDelete disarms the prompt and returns the key to delete.
func (c *Controller[T]) ConfirmDelete() (string, bool) {
	if c.deleteTarget == "" {
		return "", false
	}
	key := c.deleteTarget
	c.deleteTarget = ""
	return key, true
}

// DismissDelete disarms the prompt with no network call.
func (c *Controller[T]) DismissDelete() {
	c.deleteTarget = ""
}

// DeleteDone resolves a delete. Success returns true so the screen
// refetches; failure surfaces the error and leaves the page Idle.
func (c *Controller[T]) DeleteDone(err error) bool {
	if err != nil {
		c.fail(client.Message(err))
		return false
	}
	return true
}

// Items returns the full loaded collection, unfiltered.
func (c *Controller[T]) Items() []T { return c.items }

// Visible returns the rows matching the current search. Filtering reads
// the loaded collection without mutating it.
func (c *Controller[T]) Visible() []T {
	if c.search == "" {
		return c.items
	}
	q := strings.ToLower(c.search)
	var out []T
	for _, item := range c.items {
		if c.match(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// Selected returns the row under the cursor in the filtered view.
func (c *Controller[T]) Selected() (T, bool) {
	var zero T
	visible := c.Visible()
	if c.cursor >= len(visible) {
		return zero, false
	}
	return visible[c.cursor], true
}

// Cursor returns the cursor position within the filtered view.
func (c *Controller[T]) Cursor() int { return c.cursor }

// CursorDown moves the cursor down within the filtered view.
func (c *Controller[T]) CursorDown() {
	if c.cursor < len(c.Visible())-1 {
		c.cursor++
	}
}

// CursorUp moves the cursor up.
func (c *Controller[T]) CursorUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// Searching reports whether the search input is focused.
func (c *Controller[T]) Searching() bool { return c.searching }

// StartSearch focuses the search input.
func (c *Controller[T]) StartSearch() {
	c.searching = true
	c.search = ""
	c.cursor = 0
}

// StopSearch blurs the search input; keep determines whether the filter
// stays applied.
func (c *Controller[T]) StopSearch(keep bool) {
	c.searching = false
	if !keep {
		c.search = ""
	}
	c.cursor = 0
}

// Search returns the current query.
func (c *Controller[T]) Search() string { return c.search }

// SetSearch replaces the query, clamping the cursor into the new view.
func (c *Controller[T]) SetSearch(q string) {
	c.search = q
	if c.cursor >= len(c.Visible()) {
		c.cursor = 0
	}
}

// Status returns the transient notification and whether it is an error.
func (c *Controller[T]) Status() (string, bool) { return c.status, c.statusIsErr }

// Notify sets a success notification.
func (c *Controller[T]) Notify(msg string) {
	c.status = msg
	c.statusIsErr = false
}

// ClearStatus drops the notification, typically on the next keypress.
func (c *Controller[T]) ClearStatus() {
	c.status = ""
	c.statusIsErr = false
}

func (c *Controller[T]) fail(msg string) {
	c.status = msg
	c.statusIsErr = true
}
