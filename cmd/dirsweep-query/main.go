package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"dirsweep/internal/database"
	"dirsweep/internal/exitcodes"
)

func main() {
	dbPath := flag.String("db", "/var/lib/dirsweep/history.db", "Path to history database")
	recent := flag.Int("recent", 0, "Show N most recent deletions")
	runs := flag.Int("runs", 0, "Show N most recent runs")
	stats := flag.Bool("stats", false, "Show history statistics")
	pathSub := flag.String("path", "", "Filter deletions by path substring")
	method := flag.String("method", "", "Filter deletions by removal method (rmdir, recursive)")
	sinceDays := flag.Int("since", 0, "Show deletions from the last N days")
	pruneDays := flag.Int("prune-days", 0, "Delete history records older than N days")
	jsonOutput := flag.Bool("json", false, "Output in JSON format")
	flag.Parse()

	db, err := database.Open(*dbPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to open database %s: %v", *dbPath, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()

	switch {
	case *stats:
		showStats(db, *jsonOutput)
	case *pruneDays > 0:
		prune(db, *pruneDays)
	case *recent > 0:
		showRecent(db, *recent, *jsonOutput)
	case *runs > 0:
		showRuns(db, *runs, *jsonOutput)
	case *pathSub != "":
		showByPath(db, *pathSub, *jsonOutput)
	case *method != "":
		showByMethod(db, *method, *jsonOutput)
	case *sinceDays > 0:
		showSince(db, *sinceDays, *jsonOutput)
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  dirsweep-query --recent 10          # Show 10 most recent deletions")
		fmt.Println("  dirsweep-query --runs 5             # Show 5 most recent runs")
		fmt.Println("  dirsweep-query --stats              # Show history statistics")
		fmt.Println("  dirsweep-query --path /home/alice   # Show deletions under /home/alice")
		fmt.Println("  dirsweep-query --method recursive   # Show recursive removals")
		fmt.Println("  dirsweep-query --since 7            # Show deletions from the last week")
		fmt.Println("  dirsweep-query --prune-days 90      # Drop records older than 90 days")
		os.Exit(exitcodes.InvalidConfig)
	}
}

func showStats(db *database.History, jsonOutput bool) {
	stats, err := db.Stats()
	if err != nil {
		log.Fatalf("ERROR: Failed to get statistics: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("History Statistics")
	fmt.Printf("Directories Deleted:  %d\n", stats.Deletions)
	fmt.Printf("Entries Removed:      %d\n", stats.EntriesRemoved)
	fmt.Printf("Runs Recorded:        %d\n", stats.Runs)
	fmt.Printf("Database Size:        %s\n", formatBytes(stats.SizeBytes))
	if !stats.Oldest.IsZero() {
		fmt.Printf("First Deletion:       %s\n", stats.Oldest.Format("2006-01-02 15:04:05"))
	}
	if !stats.Newest.IsZero() {
		fmt.Printf("Last Deletion:        %s\n", stats.Newest.Format("2006-01-02 15:04:05"))
	}

	if len(stats.ByMethod) > 0 {
		fmt.Println("\nBy Method:")
		for method, count := range stats.ByMethod {
			fmt.Printf("  %-12s %d\n", method, count)
		}
	}
}

func showRecent(db *database.History, limit int, jsonOutput bool) {
	records, err := db.RecentDeletions(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get recent deletions: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	printRecords(records)
}

func showRuns(db *database.History, limit int, jsonOutput bool) {
	runs, err := db.RecentRuns(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get recent runs: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(runs, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(runs) == 0 {
		fmt.Println("No records found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tStarted\tTarget\tDeleted\tEntries\tOutcome\tDuration")
	_, _ = fmt.Fprintln(w, "--\t-------\t------\t-------\t-------\t-------\t--------")

	for _, r := range runs {
		started := r.StartedAt.Format("2006-01-02 15:04:05")
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%dms\n",
			r.ID, started, r.Target, r.Deleted, r.EntriesRemoved, r.Outcome, r.DurationMS)
	}
	_ = w.Flush()
}

func showByPath(db *database.History, substr string, jsonOutput bool) {
	records, err := db.DeletionsByPath("%" + substr + "%")
	if err != nil {
		log.Fatalf("ERROR: Failed to query by path: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Deletions matching path: %s\n\n", substr)
	printRecords(records)
}

func showByMethod(db *database.History, method string, jsonOutput bool) {
	records, err := db.DeletionsByMethod(method)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by method: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Deletions with method: %s\n\n", method)
	printRecords(records)
}

func showSince(db *database.History, days int, jsonOutput bool) {
	since := time.Now().AddDate(0, 0, -days)
	records, err := db.DeletionsSince(since)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by time: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Deletions since %s\n\n", since.Format("2006-01-02"))
	printRecords(records)
}

func prune(db *database.History, days int) {
	removed, err := db.PruneOlderThan(days)
	if err != nil {
		log.Fatalf("ERROR: Failed to prune history: %v", err)
	}
	if err := db.Vacuum(); err != nil {
		log.Fatalf("ERROR: Failed to vacuum database: %v", err)
	}
	fmt.Printf("Removed %d records older than %d days\n", removed, days)
}

func printRecords(records []database.DeletionRecord) {
	if len(records) == 0 {
		fmt.Println("No records found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDeleted At\tMethod\tEntries\tPath")
	_, _ = fmt.Fprintln(w, "--\t----------\t------\t-------\t----")

	for _, r := range records {
		deletedAt := r.DeletedAt.Format("2006-01-02 15:04:05")
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			r.ID, deletedAt, r.Method, r.Entries, r.Path)
	}
	_ = w.Flush()
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
