package tui

import (
	"strings"

	"github.com/foliohq/folio/internal/form"
)

// renderForm renders f's fields with the focus cursor, toggle boxes and
// inline validation errors. pickerFocused suppresses the field cursor when
// focus has moved past the last field into an attached skill picker.
func renderForm(f *form.Form, pickerFocused bool) string {
	var b strings.Builder

	for i, field := range f.Schema.Fields {
		focused := !pickerFocused && i == f.FocusIndex()
		cursor := "  "
		labelStyle := inputPromptStyle
		if focused {
			cursor = accentStyle.Render(">") + " "
			labelStyle = selectedStyle
		}

		value := f.Get(field.Name)
		var line string
		switch field.Kind {
		case form.Toggle:
			box := "[ ]"
			if f.Bool(field.Name) {
				box = "[x]"
			}
			line = cursor + labelStyle.Render(field.Label) + " " + box
			if focused {
				line += "  " + dimStyle.Render("space to toggle")
			}
		case form.File:
			display := value
			if display == "" {
				display = inputPlaceholderStyle.Render("path to image file")
			}
			line = cursor + labelStyle.Render(field.Label+":") + " " + display
			if focused {
				line += accentStyle.Render("█")
			}
		default:
			display := value
			if focused {
				display += accentStyle.Render("█")
			} else if display == "" {
				display = inputPlaceholderStyle.Render("...")
			}
			line = cursor + labelStyle.Render(field.Label+":") + " " + display
		}
		b.WriteString(" " + line + "\n")

		if msg := f.Error(field.Name); msg != "" {
			b.WriteString("     " + errorStyle.Render(msg) + "\n")
		}
	}

	return b.String()
}

// renderSearchBar renders the "/ query" line shared by all list screens.
func renderSearchBar(searching bool, query string) string {
	switch {
	case searching:
		return " " + searchStyle.Render("/ "+query+"█")
	case query != "":
		return " " + searchStyle.Render("/ "+query)
	default:
		return " " + dimStyle.Render("/ search...")
	}
}

// renderStatusLine renders the transient notification, empty when none.
func renderStatusLine(msg string, isErr bool) string {
	if msg == "" {
		return ""
	}
	if isErr {
		return " " + errorStyle.Render(msg) + "\n"
	}
	return " " + successStyle.Render(msg) + "\n"
}

// renderConfirmDelete renders the inline delete prompt under the armed row.
func renderConfirmDelete(what string) string {
	return "   " + errorStyle.Render("delete "+what+"? ") +
		accentStyle.Render("y") + dimStyle.Render("/") + dimStyle.Render("n")
}
