package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/session"
	"github.com/foliohq/folio/internal/tui"
	"github.com/foliohq/folio/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := session.New(cfg.DataDir)
	store.Restore()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("folio " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			return runLogin(cfg, store)
		case "register":
			return runRegister(cfg, store)
		case "logout":
			return runLogout(store)
		case "whoami":
			return runWhoami(store)
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	token := cfg.Token
	if token == "" {
		token = store.Token()
	}
	if token == "" || !store.Authenticated() {
		printSignedOutGreeting()
		return nil
	}

	c := client.New(cfg.APIURL, token)
	// Only force re-login on actual auth failures (401), not transient errors.
	if _, err := c.Me(context.Background()); err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			printSignedOutGreeting()
			return nil
		}
		// Network/server error, launch anyway; screens surface failures.
	}

	p := tea.NewProgram(tui.NewApp(c, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(cfg config.Config, store *session.Store) error {
	identifier, err := prompt("Email or username: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	c := client.New(cfg.APIURL, "")
	user, err := store.Login(context.Background(), c, identifier, password)
	if err != nil {
		return fmt.Errorf("login failed: %s", client.Message(err))
	}
	fmt.Printf("Signed in as %s\n", user.Username)

	c.SetToken(store.Token())
	p := tea.NewProgram(tui.NewApp(c, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runRegister(cfg config.Config, store *session.Store) error {
	email, err := prompt("Email: ")
	if err != nil {
		return err
	}
	username, err := prompt("Username: ")
	if err != nil {
		return err
	}
	name, err := prompt("Name (optional): ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	c := client.New(cfg.APIURL, "")
	res, err := c.Register(context.Background(), client.RegisterRequest{
		Email:    email,
		Username: username,
		Name:     name,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %s", client.Message(err))
	}
	if err := store.Adopt(res.User, res.Token); err != nil {
		return err
	}
	fmt.Printf("Account created. Signed in as %s\n", res.User.Username)
	return nil
}

func runLogout(store *session.Store) error {
	if !store.Authenticated() {
		fmt.Println("Already signed out.")
		return nil
	}
	if err := store.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(store *session.Store) error {
	u := store.User()
	if u == nil {
		fmt.Println("Signed out.")
		return nil
	}
	fmt.Printf("%s <%s>\n", u.Username, u.Email)
	if exp, ok := store.TokenExpiry(); ok {
		fmt.Printf("token expires %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(data), nil
}
