// Package main is the entry point for the Dockside TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/d-olmeda/dockside-tui/internal/app"
	"github.com/d-olmeda/dockside-tui/internal/config"
	"github.com/d-olmeda/dockside-tui/internal/logger"
	"github.com/d-olmeda/dockside-tui/internal/services"
	"github.com/d-olmeda/dockside-tui/internal/ui/tabs/arrival"
	"github.com/d-olmeda/dockside-tui/internal/ui/tabs/dashboard"
	"github.com/d-olmeda/dockside-tui/internal/ui/tabs/service"
	"github.com/d-olmeda/dockside-tui/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	// Run the application
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Stdout belongs to the TUI, so logs go to a file when configured
	if cfg.LogPath != "" {
		closeLog, logErr := logger.SetFile(cfg.LogPath)
		if logErr != nil {
			return fmt.Errorf("failed to open log file: %w", logErr)
		}
		defer closeLog()
	}

	// 2. Initialize the service manager
	// This opens the record store and starts the change watcher
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 3. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 4. Initialize tabs with shared state and commands
	state := model.GetState()
	commands := model.GetCommands()
	tabs := []app.Tab{
		arrival.New(state, commands),   // Tab 0: Arrival - register truck arrivals
		service.New(state, commands),   // Tab 1: Service - record service windows
		dashboard.New(state, commands), // Tab 2: Dashboard - timing analytics
	}
	model.SetTabs(tabs)

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 6. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 7. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		// Send quit message to the program
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Dockside TUI - Supplier delivery appointment tracker

Usage:
  dockside [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Arrival, Service, Dashboard)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Select/confirm
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DOCKSIDE_DB_PATH          Record-store database path
  DOCKSIDE_LOG_PATH         Log file path (logging disabled when unset)
  DOCKSIDE_CACHE_TTL        Snapshot cache lifetime (default: 5m)
  DOCKSIDE_WEEKS_BACK       Default dashboard window in weeks (default: 4)
  DOCKSIDE_DELAY_ALERT_MIN  Delay threshold for desktop alerts (default: 15)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/dockside/.env
  - ~/.dockside/.env

For more information, visit: https://github.com/d-olmeda/dockside-tui`)
}
