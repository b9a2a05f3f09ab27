package interop

import (
	"github.com/unklstewy/suas-interop/pkg/coordinates"
)

// Telemetry builds the outbound telemetry report.
//
// altitudeMSL is meters above mean sea level and is reported in feet.
// The heading is derived from the vehicle orientation in the
// east-counter-clockwise frame and reported as a compass heading.
// Latitude and longitude pass through unchanged.
func (t *Translator) Telemetry(fix NavSatFix, altitudeMSL float64, orientation coordinates.Quaternion) Telemetry {
	start := t.clock.Now()
	report := Telemetry{
		Latitude:    fix.Latitude,
		Longitude:   fix.Longitude,
		AltitudeMSL: coordinates.MetersToFeet(altitudeMSL),
		UASHeading:  coordinates.HeadingFromQuaternion(orientation),
	}
	t.observe(KindTelemetry, start, nil)
	return report
}

// Dict returns the report in interop wire form.
func (tm Telemetry) Dict() Dict {
	return Dict{
		"latitude":     tm.Latitude,
		"longitude":    tm.Longitude,
		"altitude_msl": tm.AltitudeMSL,
		"uas_heading":  tm.UASHeading,
	}
}
