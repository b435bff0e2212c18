package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/arloliu/cramcodec/codec"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/stats"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

func newHuffmanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "huffman <symbol:frequency>...",
		Short: "Build a canonical Huffman code table",
		Long: `Build the canonical Huffman code table for a frequency distribution and
print the codes and the serialized codec header.

Example:
  cramcodec huffman 65:10 67:4 71:4 84:9`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := stats.New()
			for _, arg := range args {
				sym, freq, err := parseFrequency(arg)
				if err != nil {
					return err
				}
				st.AddN(sym, freq)
			}

			enc, err := a.registry.EncoderInit(format.KindHuffman, st)
			if err != nil {
				return err
			}
			defer enc.Release()

			he, ok := enc.(*codec.HuffmanEncoder)
			if !ok {
				return fmt.Errorf("unexpected encoder %T", enc)
			}
			level.Debug(a.logger).Log("msg", "built huffman table", "symbols", st.NVals(), "total", st.Total())

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMBOL\tLEN\tCODE")
			for _, c := range he.Codes() {
				fmt.Fprintf(tw, "%d\t%d\t%s\n", c.Symbol, c.Len, c)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			header, err := enc.AppendHeader(nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "header: %s\n", hex.EncodeToString(header))

			return nil
		},
	}
}

func parseFrequency(arg string) (int32, int64, error) {
	symStr, freqStr, ok := strings.Cut(arg, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected symbol:frequency, got %q", arg)
	}

	sym, err := strconv.ParseInt(symStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid symbol in %q: %w", arg, err)
	}
	freq, err := strconv.ParseInt(freqStr, 10, 64)
	if err != nil || freq <= 0 {
		return 0, 0, fmt.Errorf("invalid frequency in %q", arg)
	}

	return int32(sym), freq, nil
}
