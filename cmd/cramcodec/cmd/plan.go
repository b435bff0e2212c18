package cmd

import (
	"encoding/hex"
	"fmt"
	"text/tabwriter"

	"github.com/arloliu/cramcodec/plan"
	"github.com/spf13/cobra"
)

func newPlanCommand(a *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "plan [file]",
		Short: "Compile a codec plan into codec headers",
		Long: `Build the encoder of every series in a YAML codec plan and print the
serialized headers. Without a file the built-in default plan is used.

Example:
  cramcodec plan series.yaml --verify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := plan.Default()
			if len(args) == 1 {
				var err error
				if p, err = plan.Load(args[0]); err != nil {
					return err
				}
			}

			built, err := p.Build(a.registry, nil)
			if err != nil {
				return err
			}
			defer plan.Release(built)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SERIES\tTYPE\tCODEC\tHEADER")
			for _, b := range built {
				header, err := b.Codec.AppendHeader(nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Name, b.DataType, b.Codec.Kind(), hex.EncodeToString(header))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			blob, err := plan.AppendHeaders(nil, built)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total: %d bytes\n", len(blob))

			if verify {
				decoded, err := p.Decode(a.registry, blob)
				if err != nil {
					return fmt.Errorf("verification failed: %w", err)
				}
				plan.Release(decoded)
				fmt.Fprintln(cmd.OutOrStdout(), "verified: all headers decode")
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Decode the generated headers back")

	return cmd
}
