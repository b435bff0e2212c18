package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/cramcodec/codec"
)

// describe writes the configuration of c, indented by depth levels.
func describe(w io.Writer, c codec.Codec, depth int) {
	pad := strings.Repeat("  ", depth)

	switch v := c.(type) {
	case *codec.ExternalDecoder:
		fmt.Fprintf(w, "%s%s content_id=%d type=%s\n", pad, v.Kind(), v.ContentID(), v.DataType())
	case *codec.BetaDecoder:
		fmt.Fprintf(w, "%s%s offset=%d nbits=%d\n", pad, v.Kind(), v.Offset(), v.NBits())
	case *codec.SubexpDecoder:
		fmt.Fprintf(w, "%s%s offset=%d k=%d\n", pad, v.Kind(), v.Offset(), v.K())
	case *codec.GammaDecoder:
		fmt.Fprintf(w, "%s%s offset=%d\n", pad, v.Kind(), v.Offset())
	case *codec.ByteArrayStopDecoder:
		fmt.Fprintf(w, "%s%s stop=0x%02x content_id=%d\n", pad, v.Kind(), v.StopByte(), v.ContentID())
	case *codec.HuffmanDecoder:
		fmt.Fprintf(w, "%s%s codes=%d\n", pad, v.Kind(), len(v.Codes()))
		for _, code := range v.Codes() {
			fmt.Fprintf(w, "%s  symbol=%d len=%d code=%s\n", pad, code.Symbol, code.Len, code)
		}
	case *codec.ByteArrayLenDecoder:
		fmt.Fprintf(w, "%s%s\n", pad, v.Kind())
		fmt.Fprintf(w, "%s  length:\n", pad)
		describe(w, v.LengthCodec(), depth+2)
		fmt.Fprintf(w, "%s  value:\n", pad)
		describe(w, v.ValueCodec(), depth+2)
	default:
		fmt.Fprintf(w, "%s%s\n", pad, c.Kind())
	}
}
