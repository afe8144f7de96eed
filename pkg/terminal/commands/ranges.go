package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcp-analytics/resort-dmr/pkg/services/report"
)

type RangesCmd struct {
	date string
}

// NewRangesCmd prints the nine comparison windows derived from a reference
// date, which is handy for sanity-checking prior-year alignment.
func NewRangesCmd() *cobra.Command {
	rc := &RangesCmd{}
	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "Print the comparison windows for a reference date",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.date, "date", "", "Reference date as MM/DD/YYYY (default yesterday)")

	return cmd
}

func (rc *RangesCmd) run(cmd *cobra.Command, _ []string) error {
	refDate := time.Now().AddDate(0, 0, -1)
	if rc.date != "" {
		parsed, err := time.Parse(dateLayout, rc.date)
		if err != nil {
			return fmt.Errorf("date must be MM/DD/YYYY: %w", err)
		}
		refDate = parsed
	}

	cal := report.NewCalendar(refDate, time.Now())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANGE\tSTART\tEND\tDAYS")
	for _, r := range cal.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			r.Name,
			r.Start.Format("2006-01-02 15:04:05"),
			r.End.Format("2006-01-02 15:04:05"),
			r.Days())
	}
	return w.Flush()
}
