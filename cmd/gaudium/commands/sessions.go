// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"gaudium.org/app/record"
)

func newSessionsCmd() *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := record.Open(db)
			if err != nil {
				return err
			}
			defer store.Close()
			infos, err := store.Sessions()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 5, ' ', tabwriter.TabIndent)
			if _, err := fmt.Fprintln(w, "id\tstarted\tevents"); err != nil {
				return err
			}
			for _, info := range infos {
				if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", info.ID, info.Started.Format(time.RFC3339), info.Events); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "database of recorded sessions")
	cmd.MarkFlagRequired("db") //nolint:errcheck
	return cmd
}
