package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberlab/internal/navigator"
	"github.com/abhisek/cyberlab/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print the saved progress summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		log, err := stderrLogger(cmd, cfg)
		if err != nil {
			return err
		}

		tracker := progress.NewTracker(progress.NewFileBackend(cfg.ProgressFile), progress.WithLogger(log))
		tracker.Load()
		printReport(cmd.OutOrStdout(), navigator.BuildReport(cat.Exercises(), tracker.Summary()))
		return nil
	},
}

func printReport(out io.Writer, r navigator.Report) {
	if !r.HasProgress {
		fmt.Fprintln(out, "No progress yet. Run cyberlab to start a session.")
		return
	}

	fmt.Fprintf(out, "Session:      %s\n", r.SessionID)
	fmt.Fprintf(out, "Started:      %s\n", r.Created.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Last updated: %s\n", r.LastUpdated.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Completion:   %.1f%%\n", r.CompletionPct)
	fmt.Fprintf(out, "Score:        %.1f / %d\n\n", r.TotalScore, r.TotalPoints)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tEXERCISE\tSTATUS\tANSWERED\tSCORE")
	for _, ex := range r.Exercises {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f%%\t%.1f / %d\n",
			ex.Number, ex.Title, ex.Status, ex.CompletionPct, ex.Score, ex.TotalPoints)
	}
	tw.Flush()
}
