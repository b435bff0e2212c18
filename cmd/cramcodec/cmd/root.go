// Package cmd implements the cramcodec command line tool.
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/cramcodec/codec"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app holds the state shared by all subcommands, set up before each run.
type app struct {
	logger   log.Logger
	registry *codec.Registry
	promReg  *prometheus.Registry
	logLevel string
}

// NewRootCommand creates the cramcodec command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cramcodec",
		Short: "Inspect, build and exercise CRAM codec headers",
		Long: `cramcodec works with the self-describing codec headers used by CRAM
data series: it decodes header blobs, builds canonical Huffman tables,
compiles codec plans and decodes sample streams.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(
		newInspectCommand(a),
		newHuffmanCommand(a),
		newPlanCommand(a),
		newDecodeCommand(a),
		newRecordsCommand(a),
	)

	return root
}

func (a *app) setup(w io.Writer) error {
	var opt level.Option
	switch strings.ToLower(a.logLevel) {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return fmt.Errorf("invalid log level %q", a.logLevel)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	a.logger = level.NewFilter(logger, opt)

	a.promReg = prometheus.NewRegistry()
	registry, err := codec.NewRegistry(
		codec.WithLogger(a.logger),
		codec.WithMetrics(codec.NewMetrics(a.promReg)),
	)
	if err != nil {
		return err
	}
	a.registry = registry

	return nil
}

// parseHex decodes a hex string, ignoring spaces, colons and an 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	s = strings.NewReplacer(" ", "", ":", "", "\n", "").Replace(s)

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}

	return data, nil
}
