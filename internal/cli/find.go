package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"explorekit/internal/finder"
)

var findPage int

var findCmd = &cobra.Command{
	Use:   "find <place>",
	Short: "List restaurants near a place, nearest first",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := newFinderService(cfg, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.Finder.Timeout)
		defer cancel()

		st := finder.NewState(cfg.Finder.DefaultViewRadius)
		query := strings.Join(args, " ")
		if err := svc.Search(ctx, st, query); err != nil {
			if errors.Is(err, finder.ErrNoCandidates) {
				fmt.Println("No food options found within the search radius. Try a different location.")
				return nil
			}
			return err
		}

		if findPage != 1 && !st.Pager.Goto(findPage) {
			return fmt.Errorf("page %d out of range (1-%d)", findPage, st.Pager.TotalPages())
		}
		listing := st.Listing()

		fmt.Printf("%s\n%d places within %.0f km, page %d of %d\n\n",
			listing.Place, listing.Page.Total, cfg.Finder.RankingCeilingKm, listing.Page.Page, listing.Page.TotalPages)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tNAME\tKM\tCUISINE\tADDRESS\tPHONE\tHOURS")
		offset := (listing.Page.Page - 1) * listing.Page.PageSize
		for i, e := range listing.Entries {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\t%s\t%s\n", offset+i+1, e.Name, e.DistanceKm, e.Cuisine, e.Address, e.Phone, e.OpeningHours)
		}
		return w.Flush()
	},
}

func init() {
	findCmd.Flags().IntVar(&findPage, "page", 1, "page of results to print")
	rootCmd.AddCommand(findCmd)
}
