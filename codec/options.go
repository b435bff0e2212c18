package codec

import (
	"github.com/arloliu/cramcodec/internal/options"
	"github.com/go-kit/log"
)

// RegistryOption configures a Registry.
type RegistryOption = options.Option[*Registry]

// WithLogger sets the logger construction failures are reported to.
func WithLogger(logger log.Logger) RegistryOption {
	return options.NoError(func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	})
}

// WithMetrics sets the metrics updated by the registry and its codecs.
func WithMetrics(m *Metrics) RegistryOption {
	return options.NoError(func(r *Registry) {
		r.metrics = m
	})
}

// encoderConfig holds the variant-specific encoder settings.
type encoderConfig struct {
	lenHeader    []byte
	valHeader    []byte
	contentID    int32
	hasContentID bool
	stop         byte
	hasStop      bool
}

// EncoderOption configures encoder construction.
type EncoderOption = options.Option[*encoderConfig]

// WithContentID sets the external block content id for EXTERNAL and
// BYTE_ARRAY_STOP encoders.
func WithContentID(id int32) EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.contentID = id
		c.hasContentID = true
	})
}

// WithStopByte sets the terminator for BYTE_ARRAY_STOP encoders.
func WithStopByte(stop byte) EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.stop = stop
		c.hasStop = true
	})
}

// WithSubHeaders sets the serialized length and value codec headers for
// BYTE_ARRAY_LEN encoders.
func WithSubHeaders(lenHeader, valHeader []byte) EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.lenHeader = lenHeader
		c.valHeader = valHeader
	})
}
