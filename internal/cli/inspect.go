package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"explorekit/internal/explorer"
	"explorekit/internal/tabular"
)

var inspectSheet string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the inferred column types of a CSV or Excel file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		table, err := tabular.Read(f, path, inspectSheet)
		if err != nil {
			return err
		}
		ds, err := table.Dataset()
		if err != nil {
			return err
		}

		st := explorer.NewState()
		st.Load(filepath.Base(path), ds)
		sum, err := st.Summary()
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d rows, %d columns\n\n", sum.Source, sum.Rows, len(sum.Columns))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COLUMN\tKIND\tMISSING")
		for _, c := range sum.Columns {
			fmt.Fprintf(w, "%s\t%s\t%d\n", c.Name, c.Kind, c.Missing)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if r := sum.DateRange; r != nil {
			fmt.Printf("\nDate range (%s): %s to %s\n", r.Column, r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "", "worksheet to read (default: first sheet)")
	rootCmd.AddCommand(inspectCmd)
}
