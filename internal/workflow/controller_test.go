package workflow

import (
	"strings"
	"testing"

	"github.com/foliohq/folio/pkg/client"
	"github.com/foliohq/folio/pkg/domain"
)

func expCtrl(fetches int) *Controller[domain.Experience] {
	return New(
		func(e domain.Experience) string { return e.ID.String() },
		func(e domain.Experience, q string) bool {
			return strings.Contains(strings.ToLower(e.CompanyName), q) ||
				strings.Contains(strings.ToLower(e.Location), q) ||
				strings.Contains(strings.ToLower(e.Description), q)
		},
		fetches,
	)
}

func TestControllerLeavesLoadingOnlyWhenAllFetchesArrive(t *testing.T) {
	c := expCtrl(2)
	if c.State() != Loading {
		t.Fatalf("initial state = %v, want Loading", c.State())
	}

	c.ListLoaded([]domain.Experience{{CompanyName: "Initech"}}, nil)
	if c.State() != Loading {
		t.Errorf("state = %v after one of two fetches, want Loading", c.State())
	}

	c.DepLoaded(nil)
	if c.State() != Idle {
		t.Errorf("state = %v after both fetches, want Idle", c.State())
	}
}

func TestControllerFetchFailureBecomesIdleWithEmptyListAndError(t *testing.T) {
	c := expCtrl(1)
	c.ListLoaded(nil, &client.APIError{Status: 500, Message: "server exploded"})

	if c.State() != Idle {
		t.Errorf("state = %v after failed fetch, want Idle", c.State())
	}
	if len(c.Items()) != 0 {
		t.Errorf("items = %d, want empty collection", len(c.Items()))
	}
	msg, isErr := c.Status()
	if !isErr || msg != "server exploded" {
		t.Errorf("status = (%q, %v), want surfaced server message", msg, isErr)
	}
}

func TestControllerModalLifecycle(t *testing.T) {
	c := expCtrl(1)
	c.ListLoaded([]domain.Experience{{CompanyName: "Initech"}}, nil)

	if !c.OpenCreate() {
		t.Fatal("OpenCreate() = false from Idle")
	}
	if c.State() != ModalOpen || c.Mode() != ModeCreate {
		t.Fatalf("state = %v/%v, want ModalOpen/ModeCreate", c.State(), c.Mode())
	}

	// Opening another surface while the modal is open is not reachable.
	if c.OpenCreate() {
		t.Error("OpenCreate() = true while modal already open")
	}
	if c.RequestDelete() {
		t.Error("RequestDelete() = true while modal open")
	}

	if !c.Cancel() {
		t.Fatal("Cancel() = false from ModalOpen")
	}
	if c.State() != Idle {
		t.Errorf("state = %v after cancel, want Idle", c.State())
	}
}

func TestControllerSubmitFailureKeepsModalOpen(t *testing.T) {
	c := expCtrl(1)
	c.ListLoaded([]domain.Experience{{CompanyName: "Initech"}}, nil)
	c.OpenCreate()

	if !c.BeginSubmit() {
		t.Fatal("BeginSubmit() = false from ModalOpen")
	}
	if c.State() != Submitting {
		t.Fatalf("state = %v, want Submitting", c.State())
	}

	refetch := c.SubmitDone(&client.APIError{Status: 422, Message: "startYear is invalid"})
	if refetch {
		t.Error("SubmitDone(err) = true, want no refetch")
	}
	if c.State() != ModalOpen {
		t.Errorf("state = %v after failed submit, want ModalOpen for retry", c.State())
	}
	msg, isErr := c.Status()
	if !isErr || msg != "startYear is invalid" {
		t.Errorf("status = (%q, %v), want the server message", msg, isErr)
	}
}

func TestControllerSubmitSuccessReturnsToIdleAndRefetches(t *testing.T) {
	c := expCtrl(1)
	c.ListLoaded(nil, nil)
	c.OpenCreate()
	c.BeginSubmit()

	if !c.SubmitDone(nil) {
		t.Fatal("SubmitDone(nil) = false, want refetch signal")
	}
	if c.State() != Idle {
		t.Errorf("state = %v after successful submit, want Idle", c.State())
	}

	c.Refreshed([]domain.Experience{{CompanyName: "Globex"}}, nil)
	if len(c.Items()) != 1 {
		t.Errorf("items = %d after refetch, want 1", len(c.Items()))
	}
}

func TestControllerDeleteConfirmationFlow(t *testing.T) {
	c := expCtrl(1)
	c.ListLoaded([]domain.Experience{{CompanyName: "Initech"}}, nil)

	if !c.RequestDelete() {
		t.Fatal("RequestDelete() = false with a selected row")
	}
	if c.ConfirmingDelete() == "" {
		t.Fatal("ConfirmingDelete() empty after RequestDelete")
	}

	// Dismissing makes no network call and disarms.
	c.DismissDelete()
	if c.ConfirmingDelete() != "" {
		t.Error("ConfirmingDelete() still armed after dismiss")
	}

	c.RequestDelete()
	key, okKey := c.ConfirmDelete()
	if !okKey || key == "" {
		t.Fatalf("ConfirmDelete() = (%q, %v), want armed key", key, okKey)
	}
	if c.ConfirmingDelete() != "" {
		t.Error("prompt still armed after confirm")
	}
}

func TestControllerDeleteFailureSurfacesError(t *testing.T) {
	c := expCtrl(1)
	c.ListLoaded([]domain.Experience{{CompanyName: "Initech"}}, nil)

	if c.DeleteDone(&client.APIError{Status: 500, Message: "delete failed upstream"}) {
		t.Error("DeleteDone(err) = true, want false")
	}
	msg, isErr := c.Status()
	if !isErr || msg != "delete failed upstream" {
		t.Errorf("status = (%q, %v), want the server message", msg, isErr)
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want Idle (recoverable)", c.State())
	}
}

func TestControllerSearchFiltersWithoutMutating(t *testing.T) {
	c := expCtrl(1)
	items := []domain.Experience{
		{CompanyName: "Initech", Location: "Austin"},
		{CompanyName: "Globex", Location: "Remote", Description: "platform work"},
		{CompanyName: "Hooli", Location: "Palo Alto"},
	}
	c.ListLoaded(items, nil)

	c.SetSearch("GLOBEX")
	visible := c.Visible()
	if len(visible) != 1 || visible[0].CompanyName != "Globex" {
		t.Fatalf("Visible() = %v, want the Globex row (case-insensitive)", visible)
	}

	// Matching spans the documented fields, not just the name.
	c.SetSearch("platform")
	if got := c.Visible(); len(got) != 1 || got[0].CompanyName != "Globex" {
		t.Errorf("Visible() on description query = %v, want Globex", got)
	}

	// The loaded collection is untouched.
	if len(c.Items()) != 3 {
		t.Errorf("Items() = %d after filtering, want 3", len(c.Items()))
	}

	c.SetSearch("")
	if len(c.Visible()) != 3 {
		t.Errorf("Visible() = %d after clearing search, want 3", len(c.Visible()))
	}
}

func TestControllerCursorClampsToFilteredView(t *testing.T) {
	c := expCtrl(1)
	c.ListLoaded([]domain.Experience{
		{CompanyName: "Initech"},
		{CompanyName: "Globex"},
	}, nil)

	c.CursorDown()
	if c.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", c.Cursor())
	}
	c.SetSearch("initech")
	if c.Cursor() != 0 {
		t.Errorf("cursor = %d after narrowing filter, want clamped to 0", c.Cursor())
	}
	if _, okSel := c.Selected(); !okSel {
		t.Error("Selected() not ok after clamping")
	}
}
