package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/format"
	"github.com/spf13/cobra"
)

// maxElement bounds a single decoded byte array.
const maxElement = 1 << 16

func newDecodeCommand(a *app) *cobra.Command {
	var (
		typeName    string
		bitsHex     string
		blockArgs   []string
		count       int
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "decode <header-hex>",
		Short: "Decode values with a codec header",
		Long: `Build a decoder from a codec header and decode values from a core
bitstream and external blocks.

Example:
  cramcodec decode 090101 --bits a0 -n 2
  cramcodec decode 05050903000000 --type ByteArray --block 3=6869096f6b09 -n 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataType, err := parseDataType(typeName)
			if err != nil {
				return err
			}

			header, err := parseHex(args[0])
			if err != nil {
				return err
			}

			var bits []byte
			if bitsHex != "" {
				if bits, err = parseHex(bitsHex); err != nil {
					return err
				}
			}

			slice, err := parseBlocks(blockArgs)
			if err != nil {
				return err
			}

			dec, _, err := a.registry.ParseDecoder(header, dataType)
			if err != nil {
				return err
			}
			defer dec.Release()

			out := cmd.OutOrStdout()
			in := bitstream.NewReader(bits)

			switch dec.Kind() {
			case format.KindByteArrayLen, format.KindByteArrayStop:
				buf := make([]byte, maxElement)
				for range count {
					n, err := dec.DecodeBytes(slice, in, buf)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%q\n", buf[:n])
				}
			default:
				values := make([]int32, count)
				if err := dec.DecodeInts(slice, in, values); err != nil {
					return err
				}
				strs := make([]string, len(values))
				for i, v := range values {
					strs[i] = strconv.Itoa(int(v))
				}
				fmt.Fprintln(out, strings.Join(strs, " "))
			}

			if showMetrics {
				return a.writeMetrics(out)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "Int", "Data type of the series: Int, Long, Byte or ByteArray")
	cmd.Flags().StringVar(&bitsHex, "bits", "", "Core bitstream as hex")
	cmd.Flags().StringArrayVar(&blockArgs, "block", nil, "External block as id=hex, repeatable")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of values or byte arrays to decode")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print codec counters after decoding")

	return cmd
}

func parseBlocks(args []string) (*block.Slice, error) {
	s := block.NewSlice()
	for _, arg := range args {
		idStr, data, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected id=hex, got %q", arg)
		}

		id, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid block id in %q: %w", arg, err)
		}

		payload, err := parseHex(data)
		if err != nil {
			return nil, err
		}
		s.Add(block.NewExternal(int32(id), payload))
	}
	s.Index()

	return s, nil
}

func (a *app) writeMetrics(w io.Writer) error {
	families, err := a.promReg.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+strconv.Quote(lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		fmt.Fprintln(w, line)
	}

	return nil
}
