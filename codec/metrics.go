package codec

import (
	"github.com/arloliu/cramcodec/format"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	directionDecode = "decode"
	directionEncode = "encode"

	resultOK    = "ok"
	resultError = "error"
)

// Metrics holds the Prometheus counters updated by a Registry and the
// codecs it builds.
type Metrics struct {
	codecInit     *prometheus.CounterVec
	valuesDecoded *prometheus.CounterVec
}

// NewMetrics creates the codec metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	codecInit := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cramcodec_codec_init_total",
		Help: "Codec constructions by kind, direction and result",
	}, []string{"kind", "direction", "result"})

	valuesDecoded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cramcodec_values_decoded_total",
		Help: "Values decoded by codec kind",
	}, []string{"kind"})

	reg.MustRegister(codecInit, valuesDecoded)

	return &Metrics{
		codecInit:     codecInit,
		valuesDecoded: valuesDecoded,
	}
}

// CodecInit returns the construction counter for one label set.
func (m *Metrics) CodecInit(kind format.CodecKind, direction, result string) prometheus.Counter {
	return m.codecInit.WithLabelValues(kind.String(), direction, result)
}

// ValuesDecoded returns the decoded value counter for kind.
func (m *Metrics) ValuesDecoded(kind format.CodecKind) prometheus.Counter {
	return m.valuesDecoded.WithLabelValues(kind.String())
}

func (m *Metrics) observeInit(kind format.CodecKind, direction string, err error) {
	if m == nil {
		return
	}

	result := resultOK
	if err != nil {
		result = resultError
	}
	m.CodecInit(kind, direction, result).Inc()
}
