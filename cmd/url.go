package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vzahanych/brightsky/internal/config"
	"github.com/vzahanych/brightsky/internal/params"
	"github.com/vzahanych/brightsky/pkg/brightsky"
	"go.uber.org/zap"
)

func endpointNames() string {
	names := make([]string, len(params.Endpoints))
	for i, e := range params.Endpoints {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

func newURLCmd() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "url <endpoint>",
		Short: "Print the canonical URL of a query",
		Long:  "Validate a query and print the URL it would be sent to. Endpoints: " + endpointNames() + ".",
		Example: `  brightsky url current_weather --lat 52.52 --lon 13.4
  brightsky url weather --dwd-station-id 01766,01767 --date 2025-01-15 --units si`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, base, err := buildQuery(cmd, &flags, args[0])
			if err != nil {
				return err
			}

			u, err := brightsky.URL(base, q)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), u.String())
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func buildQuery(cmd *cobra.Command, flags *queryFlags, name string) (brightsky.Query, string, error) {
	endpoint, err := params.ParseEndpoint(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w (want one of: %s)", err, endpointNames())
	}

	q, err := flags.params(cmd.Flags()).Build(endpoint)
	if err != nil {
		log.Debug("Query rejected", zap.String("endpoint", string(endpoint)), zap.Error(err))
		return nil, "", err
	}

	base := flags.baseURL
	if base == "" {
		base = config.GetConfig().API.BaseURL
	}
	return q, base, nil
}
