// Package interop translates between the JSON interop protocol and the
// typed records used on the vehicle.
//
// Wire distances are feet and times are ISO 8601 text; records use meters
// and epoch seconds/nanoseconds. Every conversion is a synchronous function
// of its input: it returns a complete record or an error, never a partial
// result.
package interop

import (
	"time"

	"github.com/unklstewy/suas-interop/pkg/clock"
	"github.com/unklstewy/suas-interop/pkg/logging"
	"github.com/unklstewy/suas-interop/pkg/timestamp"
)

// Conversion kinds reported to a Recorder.
const (
	KindMission      = "mission"
	KindObstacles    = "obstacles"
	KindTelemetry    = "telemetry"
	KindObjectEncode = "object_encode"
	KindObjectDecode = "object_decode"
	KindServerInfo   = "server_info"
)

// Recorder receives the outcome of every conversion.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveConversion(kind string, elapsed time.Duration, err error)
}

// Option configures a Translator.
type Option func(*Translator)

// WithClock sets the clock used for header stamps and timing.
func WithClock(c clock.Clock) Option {
	return func(t *Translator) { t.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(t *Translator) { t.logger = l }
}

// WithRecorder sets the conversion metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(t *Translator) { t.recorder = r }
}

// WithPlanarProjection makes obstacle conversions attach a UTM projection
// of every obstacle center.
func WithPlanarProjection(enabled bool) Option {
	return func(t *Translator) { t.planar = enabled }
}

// Translator converts interop messages. It holds no per-message state
// and is safe for concurrent use once constructed.
type Translator struct {
	clock    clock.Clock
	logger   logging.Logger
	recorder Recorder
	planar   bool
}

// New creates a Translator with a real clock, a no-op logger and no
// recorder unless overridden.
func New(opts ...Option) *Translator {
	t := &Translator{
		clock:  clock.Real(),
		logger: logging.Noop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = clock.Real()
	}
	if t.logger == nil {
		t.logger = logging.Noop()
	}
	return t
}

// header builds a record header stamped with the current clock time.
func (t *Translator) header(frame string) Header {
	return Header{
		Stamp:   timestamp.FromTime(t.clock.Now()),
		FrameID: frame,
	}
}

// observe reports a finished conversion to the recorder and the log.
func (t *Translator) observe(kind string, start time.Time, err error) {
	elapsed := t.clock.Now().Sub(start)
	if t.recorder != nil {
		t.recorder.ObserveConversion(kind, elapsed, err)
	}
	if err != nil {
		t.logger.Debug("conversion failed",
			logging.String("kind", kind),
			logging.Err(err))
		return
	}
	t.logger.Debug("conversion complete",
		logging.String("kind", kind),
		logging.Any("elapsed", elapsed))
}
