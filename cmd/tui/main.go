package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster/interfaces/tui"
	"taskmaster/interfaces/tui/styles"
	"taskmaster/pkg/client"
	"taskmaster/pkg/logger"
)

// Version information set via ldflags
var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", tui.DefaultConfigPath(), "path to the client config file")
		serverURL   = flag.String("server", "", "API base URL (overrides server_url)")
		logout      = flag.Bool("logout", false, "forget the stored token and exit")
		showVersion = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("taskmaster %s\n", version)
		return
	}

	// the terminal belongs to the UI, so logs only ever go to a file
	if path := os.Getenv("TASKMASTER_DEBUG_LOG"); path != "" {
		err := logger.Init(logger.Config{
			Level:      "debug",
			Format:     "text",
			Output:     "file",
			FilePath:   path,
			MaxSize:    10,
			MaxBackups: 1,
			MaxAge:     7,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
	} else {
		logger.SetLogger(logger.New(io.Discard, "error", "text"))
	}

	cfg, err := tui.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	styles.Use(cfg.Theme)

	tokens, err := tui.OpenTokenStore(tui.DefaultKeyringConfig(filepath.Dir(*configPath)))
	if err != nil {
		logger.Warn("Keyring unavailable, the session will not be remembered", "error", err)
		tokens = nil
	}

	if *logout {
		if tokens != nil {
			if err := tokens.Clear(); err != nil {
				fmt.Fprintf(os.Stderr, "Error clearing token: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Println("Logged out.")
		return
	}

	app := tui.NewApp(cfg, *configPath, client.New(cfg.ServerURL), tokens)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
