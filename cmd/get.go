package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vzahanych/brightsky/internal/config"
	"github.com/vzahanych/brightsky/internal/server"
)

func newGetCmd() *cobra.Command {
	var (
		flags  queryFlags
		pretty bool
	)

	cmd := &cobra.Command{
		Use:     "get <endpoint>",
		Short:   "Fetch a query and print the JSON response",
		Long:    "Validate a query, send it to the Bright Sky API and print the response body. Endpoints: " + endpointNames() + ".",
		Example: `  brightsky get alerts --warn-cell-id 803159016`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, base, err := buildQuery(cmd, &flags, args[0])
			if err != nil {
				return err
			}

			cfg := config.GetConfig().API
			cfg.BaseURL = base
			c := server.NewClient(cfg, log.Logger, tele)

			body, err := c.Fetch(cmd.Context(), q)
			if err != nil {
				return err
			}

			out := body
			if pretty {
				var buf bytes.Buffer
				if err := json.Indent(&buf, body, "", "  "); err == nil {
					out = buf.Bytes()
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&pretty, "pretty", true, "indent the JSON output")

	return cmd
}
