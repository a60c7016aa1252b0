package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberlab/internal/config"
	"github.com/abhisek/cyberlab/internal/content"
)

// exportFormatVersion is the pack format written by content export.
const exportFormatVersion = "v1.0.0"

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and author content packs",
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises in the active catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tID\tTITLE\tSCENARIOS\tQUESTIONS\tPOINTS")
		for _, ex := range cat.Exercises() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
				ex.Number, ex.ID, ex.Title, len(ex.Scenarios), ex.QuestionCount(), ex.TotalPoints())
		}
		return tw.Flush()
	},
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a JSON content pack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := content.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d exercises)\n", args[0], cat.Len())
		return nil
	},
}

var contentExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the built-in catalog as a content pack",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(content.Export(content.Default(), exportFormatVersion), "", "  ")
		if err != nil {
			return fmt.Errorf("encode pack: %w", err)
		}
		data = append(data, '\n')

		if len(args) == 0 {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := config.EnsureDir(args[0]); err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write pack: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentListCmd)
	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentExportCmd)
}
