package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberlab/internal/progress"
	"github.com/abhisek/cyberlab/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent graded attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := stderrLogger(cmd, cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if _, err := os.Stat(cfg.HistoryDB); os.IsNotExist(err) {
			fmt.Fprintln(out, "No attempt history recorded yet.")
			return nil
		}
		st, err := store.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		opts := store.QueryOpts{Limit: limit}
		if !all {
			tracker := progress.NewTracker(progress.NewFileBackend(cfg.ProgressFile), progress.WithLogger(log))
			if tracker.Load() {
				opts.SessionID = tracker.Session().SessionID
			}
		}

		ctx := cmd.Context()
		repo := st.AttemptRepo()
		attempts, err := repo.Recent(ctx, opts)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts found.")
			return nil
		}
		stats, err := repo.Stats(ctx, opts.SessionID)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tEXERCISE\tSCENARIO\tQUESTION\tKIND\tVERDICT\tSCORE")
		for _, a := range attempts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.1f / %.0f\n",
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.ExerciseID, a.ScenarioID, a.QuestionID, a.Kind, a.Verdict, a.Score, a.MaxScore)
		}
		tw.Flush()

		fmt.Fprintf(out, "\n%d attempts: %d correct, %d partial, %d incorrect (%.1f / %.0f points)\n",
			stats.Total, stats.Correct, stats.Partial, stats.Incorrect, stats.Score, stats.MaxScore)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to list (0 = all)")
	historyCmd.Flags().Bool("all", false, "Include every session, not just the current one")
}
