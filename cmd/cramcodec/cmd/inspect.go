package cmd

import (
	"fmt"

	"github.com/arloliu/cramcodec/format"
	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "inspect <hex>",
		Short: "Decode one or more concatenated codec headers",
		Long: `Decode codec headers given as hex and print their configuration.

Example:
  cramcodec inspect 0601050003`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataType, err := parseDataType(typeName)
			if err != nil {
				return err
			}

			blob, err := parseHex(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for pos := 0; pos < len(blob); {
				dec, n, err := a.registry.ParseDecoder(blob[pos:], dataType)
				if err != nil {
					return fmt.Errorf("header at offset %d: %w", pos, err)
				}

				fmt.Fprintf(out, "offset=%d size=%d\n", pos, n)
				describe(out, dec, 1)
				dec.Release()
				pos += n
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "Int", "Data type of the series: Int, Long, Byte or ByteArray")

	return cmd
}

func parseDataType(name string) (format.DataType, error) {
	for _, t := range []format.DataType{format.TypeInt, format.TypeLong, format.TypeByte, format.TypeByteArray} {
		if t.String() == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown data type %q", name)
}
