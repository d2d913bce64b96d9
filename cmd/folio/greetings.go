package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var signedOutGreetings = [...]string{
	"Your portfolio is a blank page. Employers love mystery, said no one.",
	"Somewhere out there, a recruiter just searched your name and found nothing.",
	"Skills unlisted. Projects unpublished. Potential: theoretical.",
	"The portfolio doesn't update itself. Believe me, we tried.",
	"Draft projects don't count. Published ones do.",
	"You shipped it. You just never wrote it down.",
	"That side project from last year deserves better than a dead repo link.",
	"A portfolio with no entries is just a domain name with ambitions.",
	"Your experience section still ends three jobs ago.",
	"Sign in. Your future self reviewing job offers says thanks.",
}

func printSignedOutGreeting() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("F O L I O")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(signedOutGreetings[rand.Intn(len(signedOutGreetings))])

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("run 'folio login' to sign in, or 'folio register' to create an account")

	fmt.Printf("\n  %s\n\n  %s\n\n  %s\n\n", title, quote, hint)
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("F O L I O")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	fmt.Printf("\n  %s  %s\n\n", title, dim.Render("portfolio content manager"))
	rows := [][2]string{
		{"folio", "launch the TUI (requires a signed-in session)"},
		{"folio login", "sign in and launch the TUI"},
		{"folio register", "create an account"},
		{"folio logout", "sign out"},
		{"folio whoami", "show the signed-in identity"},
		{"folio version", "print the version"},
	}
	for _, r := range rows {
		fmt.Printf("  %s %s\n", key.Render(fmt.Sprintf("%-18s", r[0])), dim.Render(r[1]))
	}
	fmt.Println()
	env := [][2]string{
		{"FOLIO_API_URL", "API base URL"},
		{"FOLIO_TOKEN", "bearer token, overrides the stored session"},
		{"FOLIO_DATA_DIR", "session directory (default ~/.folio)"},
	}
	for _, r := range env {
		fmt.Printf("  %s %s\n", key.Render(fmt.Sprintf("%-18s", r[0])), dim.Render(r[1]))
	}
	fmt.Println()
}
