// Package observability exposes conversion metrics through Prometheus.
package observability

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/unklstewy/suas-interop/pkg/coordinates"
	"github.com/unklstewy/suas-interop/pkg/imagery"
	"github.com/unklstewy/suas-interop/pkg/interop"
	"github.com/unklstewy/suas-interop/pkg/odlc"
	"github.com/unklstewy/suas-interop/pkg/timestamp"
)

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeMissingField = "missing_field"
	OutcomeFieldType    = "field_type"
	OutcomeUnknownEnum  = "unknown_enum"
	OutcomeParseError   = "parse_error"
	OutcomeCodecError   = "codec_error"
	OutcomeOutOfRange   = "out_of_range"
	OutcomeError        = "error"
)

// ConversionCollector bundles Prometheus metrics for message conversions.
// It implements interop.Recorder.
type ConversionCollector struct {
	gatherer prometheus.Gatherer

	Conversions *prometheus.CounterVec
	Durations   *prometheus.HistogramVec
}

var _ interop.Recorder = (*ConversionCollector)(nil)

// NewConversionCollector registers conversion metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewConversionCollector(reg prometheus.Registerer) (*ConversionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	conversions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "interop_conversions_total",
		Help: "Total number of interop conversions, labeled by kind and outcome.",
	}, []string{"kind", "outcome"}), "interop_conversions_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "interop_conversion_duration_seconds",
		Help:    "Interop conversion latency in seconds.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"kind"}), "interop_conversion_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &ConversionCollector{
		gatherer:    gatherer,
		Conversions: conversions,
		Durations:   durations,
	}, nil
}

// ObserveConversion records one finished conversion.
func (c *ConversionCollector) ObserveConversion(kind string, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	if c.Conversions != nil {
		c.Conversions.WithLabelValues(kind, Outcome(err)).Inc()
	}
	if c.Durations != nil {
		c.Durations.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
}

// Outcome classifies a conversion error into a metric label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}

	var (
		parseErr *timestamp.ParseError
		rangeErr *coordinates.OutOfRangeError
	)
	if _, ok := interop.IsMissingField(err); ok {
		return OutcomeMissingField
	}
	if _, ok := interop.IsFieldType(err); ok {
		return OutcomeFieldType
	}
	if _, ok := odlc.IsUnknownEnumValue(err); ok {
		return OutcomeUnknownEnum
	}
	if errors.As(err, &parseErr) {
		return OutcomeParseError
	}
	if _, ok := imagery.IsCodecError(err); ok {
		return OutcomeCodecError
	}
	if errors.As(err, &rangeErr) {
		return OutcomeOutOfRange
	}
	return OutcomeError
}

// Gather returns the current metric families.
func (c *ConversionCollector) Gather() ([]*dto.MetricFamily, error) {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return gatherer.Gather()
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (c *ConversionCollector) WriteText(w io.Writer) error {
	families, err := c.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile writes the text exposition to path, replacing any existing file.
func (c *ConversionCollector) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := c.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
