package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/unklstewy/suas-interop/internal/observability"
	"github.com/unklstewy/suas-interop/pkg/clock"
	"github.com/unklstewy/suas-interop/pkg/config"
	"github.com/unklstewy/suas-interop/pkg/coordinates"
	"github.com/unklstewy/suas-interop/pkg/imagery"
	"github.com/unklstewy/suas-interop/pkg/interop"
	"github.com/unklstewy/suas-interop/pkg/logging"
)

const (
	kindMission      = "mission"
	kindObstacles    = "obstacles"
	kindObject       = "object"
	kindObjectEncode = "object-encode"
	kindServerInfo   = "server-info"
	kindTelemetry    = "telemetry"
	kindImage        = "image"
)

var kinds = []string{
	kindMission, kindObstacles, kindObject, kindObjectEncode,
	kindServerInfo, kindTelemetry, kindImage,
}

func validKind(kind string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// telemetrySample is the vehicle state a telemetry report is built from.
type telemetrySample struct {
	Fix         interop.NavSatFix `json:"fix"`
	AltitudeMSL float64           `json:"altitude_msl"`

	// Orientation defaults to identity (facing east) when absent
	Orientation *coordinates.Quaternion `json:"orientation"`
}

// imageResult is a transcoded frame plus the geometry of its pixels.
type imageResult struct {
	imagery.CompressedImage
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	Encoding imagery.Encoding `json:"encoding"`
}

type converter struct {
	translator *interop.Translator
	transcoder *imagery.Transcoder
	clock      clock.Clock
	collector  *observability.ConversionCollector

	missionFrame   string
	obstaclesFrame string
	lifetime       time.Duration
}

func newConverter(cfg *config.Config, logger logging.Logger, collector *observability.ConversionCollector) *converter {
	c := clock.Real()
	opts := []interop.Option{
		interop.WithClock(c),
		interop.WithLogger(logger),
		interop.WithPlanarProjection(cfg.Obstacles.ProjectPlanar),
	}
	if collector != nil {
		opts = append(opts, interop.WithRecorder(collector))
	}

	return &converter{
		translator:     interop.New(opts...),
		transcoder:     imagery.NewTranscoder(),
		clock:          c,
		collector:      collector,
		missionFrame:   cfg.Frames.Mission,
		obstaclesFrame: cfg.Frames.Obstacles,
		lifetime:       cfg.Obstacles.ObstacleLifetime(),
	}
}

// convert turns one raw input message into its output record.
func (c *converter) convert(kind string, raw []byte) (any, error) {
	switch kind {
	case kindMission:
		return c.translator.DecodeMission(raw, c.missionFrame)

	case kindObstacles:
		return c.translator.DecodeObstacles(raw, c.obstaclesFrame, c.lifetime)

	case kindObject:
		return c.translator.DecodeObject(raw)

	case kindObjectEncode:
		var obj interop.Object
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("failed to parse target record: %w", err)
		}
		d, err := c.translator.ObjectToDict(obj)
		if err != nil {
			return nil, err
		}
		return d, nil

	case kindServerInfo:
		return c.translator.DecodeServerInfo(raw)

	case kindTelemetry:
		sample, err := parseTelemetrySample(raw)
		if err != nil {
			return nil, err
		}
		orientation := coordinates.IdentityQuaternion
		if sample.Orientation != nil {
			orientation = *sample.Orientation
		}
		return c.translator.Telemetry(sample.Fix, sample.AltitudeMSL, orientation).Dict(), nil

	case kindImage:
		return c.image(raw)
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

func parseTelemetrySample(raw []byte) (telemetrySample, error) {
	var sample telemetrySample
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sample); err != nil {
		return telemetrySample{}, fmt.Errorf("failed to parse telemetry sample: %w", err)
	}
	return sample, nil
}

func (c *converter) image(raw []byte) (result *imageResult, err error) {
	start := c.clock.Now()
	defer func() {
		if c.collector != nil {
			c.collector.ObserveConversion(kindImage, c.clock.Now().Sub(start), err)
		}
	}()

	decoded, err := c.transcoder.Decode(raw)
	if err != nil {
		return nil, err
	}
	png, err := c.transcoder.Encode(decoded)
	if err != nil {
		return nil, err
	}
	return &imageResult{
		CompressedImage: imagery.CompressedImage{Format: imagery.FormatPNG, Data: png},
		Width:           decoded.Width,
		Height:          decoded.Height,
		Encoding:        decoded.Encoding,
	}, nil
}
