package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"feedgate/cmd/console/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	addr := flag.String("addr", "http://127.0.0.1:3000", "Backend base URL")
	header := flag.String("header", "authToken", "Token header name")
	limit := flag.Int("limit", 10, "Posts per page")
	timeout := flag.Duration("timeout", 15*time.Second, "Request timeout")
	flag.Parse()

	client := ui.NewClient(*addr, *header, *timeout)
	p := tea.NewProgram(ui.NewRootModel(client, *limit), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}
