package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"dirsweep/internal/cleanup"
	"dirsweep/internal/config"
	"dirsweep/internal/database"
	"dirsweep/internal/exitcodes"
	"dirsweep/internal/logging"
	"dirsweep/internal/metrics"
	"dirsweep/internal/sweep"
)

// version is stamped at release build time via -ldflags.
var version = "dev"

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	verbose := flag.Bool("verbose", false, "Log progress to stderr")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("dirsweep %s\n", version)
		return
	}

	// The directory to sweep; the cascade walks upward from here.
	target := flag.Arg(0)
	if target == "" {
		target = "."
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dirsweep: %v\n", err)
			os.Exit(exitcodes.InvalidConfig)
		}
	}

	logger, err := logging.New(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirsweep: %v\n", err)
		os.Exit(exitcodes.RuntimeError)
	}

	var db *database.History
	if cfg.DatabasePath != "" {
		logger.Printf("opening history database: %s", cfg.DatabasePath)
		db, err = database.Open(cfg.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dirsweep: %v\n", err)
			os.Exit(exitcodes.RuntimeError)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Printf("failed to close database: %v", err)
			}
		}()
	}

	metrics.Init()

	report, err := sweep.Run(cfg, target, logger, db)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Tried to delete %s, but got error: %v", target, err)))
		os.Exit(exitcodes.TargetUnreadable)
	}

	printReport(report)
}

// printReport writes deleted paths and the summary to stdout. Deletion
// failures go to stderr; they halt the cascade but are not fatal.
func printReport(report *cleanup.Report) {
	for _, path := range report.Deleted {
		fmt.Println(path)
	}

	if report.Halt != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(
			fmt.Sprintf("Tried to delete %s, but got error: %v", report.Halt.Path, report.Halt.Err)))
	}

	if report.Reason != nil && report.Reason.HasReason() {
		fmt.Println(report.Reason.String())
	}

	switch count := report.Count(); count {
	case 0:
		fmt.Println(infoStyle.Render("No empty directories found"))
	case 1:
		fmt.Println(successStyle.Render("1 directory deleted"))
	default:
		fmt.Println(successStyle.Render(fmt.Sprintf("%d directories deleted", count)))
	}
}
