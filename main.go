package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/studyflow/internal/auth"
	"github.com/sadopc/studyflow/internal/notify"
	"github.com/sadopc/studyflow/internal/store"
	"github.com/sadopc/studyflow/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	provider := auth.NewService(s)
	perm := notify.ParsePermission(s.GetSettingOr("notifications", "default"))
	notifier := notify.NewManager(perm, notify.Desktop{})

	app := tui.NewApp(s, provider, notifier)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
