package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"dextools-mcp/internal/chains"
	"dextools-mcp/internal/models"
)

func newToolCmd(envFile *string) *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "tool <name>",
		Short: "Run a single tool and print its JSON result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := map[string]any{}
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &toolArgs); err != nil {
					return fmt.Errorf("--args must be a JSON object: %w", err)
				}
			}

			a, err := newApp(*envFile, "", prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.dispatcher.Dispatch(cmd.Context(), args[0], toolArgs)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res.Map()); err != nil {
				return err
			}
			if res.Failed() {
				return errors.New(res.Err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "", `tool arguments as a JSON object, e.g. '{"chain_id":"ether"}'`)
	return cmd
}

func newChainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "Print supported chain identifiers and aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(models.ChainsResponse{
				Supported: chains.Supported(),
				Aliases:   chains.Aliases(),
			})
		},
	}
}
