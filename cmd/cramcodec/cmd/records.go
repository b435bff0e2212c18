package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/codec"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/plan"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

func newRecordsCommand(a *app) *cobra.Command {
	var (
		headersHex string
		sliceArgs  []string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "records [plan-file]",
		Short: "Decode records from slices with a codec plan",
		Long: `Decode records from one or more slices, one value per series per record.
Slices are decoded in parallel and share one decoder per distinct header.

Each --slice is a comma separated list: records=N, core=<hex> for the core
bitstream and <content-id>=<hex> for every external block. Headers come
from --headers, or are compiled from the plan when omitted.

Example:
  cramcodec records plan.yaml --slice records=2,core=a0,3=6869096f6b09`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := plan.Default()
			if len(args) == 1 {
				var err error
				if p, err = plan.Load(args[0]); err != nil {
					return err
				}
			}

			blob, err := recordHeaders(a, p, headersHex)
			if err != nil {
				return err
			}

			batches := make([]plan.Batch, 0, len(sliceArgs))
			for _, arg := range sliceArgs {
				b, err := parseBatch(arg)
				if err != nil {
					return err
				}
				batches = append(batches, b)
			}

			cache := codec.NewCache(a.registry)
			defer cache.Close()

			results, err := p.DecodeSlices(cmd.Context(), cache, blob, batches, limit)
			if err != nil {
				return err
			}
			level.Debug(a.logger).Log("msg", "decoded slices", "slices", len(batches), "decoders", cache.Len())

			out := cmd.OutOrStdout()
			for i, cols := range results {
				fmt.Fprintf(out, "slice %d: %d records\n", i, batches[i].Records)
				for _, col := range cols {
					fmt.Fprintf(out, "  %s: %s\n", col.Name, formatColumn(col))
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&headersHex, "headers", "", "Concatenated series headers as hex")
	cmd.Flags().StringArrayVar(&sliceArgs, "slice", nil, "Slice as records=N,core=hex,id=hex..., repeatable")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum slices decoded concurrently, 0 for no limit")

	return cmd
}

func recordHeaders(a *app, p *plan.Plan, headersHex string) ([]byte, error) {
	if headersHex != "" {
		return parseHex(headersHex)
	}

	built, err := p.Build(a.registry, nil)
	if err != nil {
		return nil, err
	}
	defer plan.Release(built)

	return plan.AppendHeaders(nil, built)
}

func parseBatch(arg string) (plan.Batch, error) {
	var batch plan.Batch
	s := block.NewSlice()

	for _, field := range strings.Split(arg, ",") {
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			return batch, fmt.Errorf("expected key=value in slice %q, got %q", arg, field)
		}

		switch name {
		case "records":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return batch, fmt.Errorf("invalid record count in slice %q", arg)
			}
			batch.Records = n
		case "core":
			data, err := parseHex(value)
			if err != nil {
				return batch, err
			}
			s.Add(block.New(format.ContentCore, 0, data))
		default:
			id, err := strconv.ParseInt(name, 10, 32)
			if err != nil {
				return batch, fmt.Errorf("invalid block id %q in slice %q", name, arg)
			}
			data, err := parseHex(value)
			if err != nil {
				return batch, err
			}
			s.Add(block.NewExternal(int32(id), data))
		}
	}
	s.Index()
	batch.Slice = s

	return batch, nil
}

func formatColumn(col plan.Column) string {
	if col.Arrays != nil {
		strs := make([]string, len(col.Arrays))
		for i, a := range col.Arrays {
			strs[i] = strconv.Quote(string(a))
		}

		return strings.Join(strs, " ")
	}

	strs := make([]string, len(col.Ints))
	for i, v := range col.Ints {
		strs[i] = strconv.Itoa(int(v))
	}

	return strings.Join(strs, " ")
}
