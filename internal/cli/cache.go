package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gqlcpp/gql/internal/analysiscache"
	"github.com/gqlcpp/gql/internal/output"
)

// NewCacheCommand builds `gqlanalyze cache`, a thin inspector over the
// analysis cache's SQLite-backed storage.
func NewCacheCommand(root *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "inspect the analysis cache",
	}
	cmd.AddCommand(newCacheGetCommand(root))
	return cmd
}

func newCacheGetCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> <key>",
		Short: "print the cached outcome for a key, if one exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := args[0], args[1]

			c, err := analysiscache.Open(path)
			if err != nil {
				return err
			}
			defer c.Close()

			outcome, hit, err := c.Get(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !hit {
				fmt.Fprintf(cmd.OutOrStdout(), "no entry for key %s\n", key)
				return nil
			}

			if root.Format == "json" {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(outcome)
			}

			if outcome.OK {
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d variables, joinable=%v\n", len(outcome.Variables), outcome.Joinable)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), output.FormatError(outcome.Err))
			}
			return nil
		},
	}
}
