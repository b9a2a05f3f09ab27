package coordinates

import (
	"math"
	"testing"
)

// TestFeetMetersRoundTrip verifies the conversion pair is an exact inverse
// up to floating-point rounding.
func TestFeetMetersRoundTrip(t *testing.T) {
	values := []float64{0, 1, 0.3048, 30.48, 100, 228.6, 1234.5678, 1e6, 1e-9}

	for _, m := range values {
		got := FeetToMeters(MetersToFeet(m))
		if math.Abs(got-m) > 1e-9*math.Max(1, m) {
			t.Errorf("FeetToMeters(MetersToFeet(%v)) = %v", m, got)
		}
	}
}

func TestFeetToMeters(t *testing.T) {
	tests := []struct {
		name string
		ft   float64
		want float64
	}{
		{"zero", 0, 0},
		{"one foot", 1, 0.3048},
		{"obstacle height", 750, 228.6},
		{"obstacle radius", 300, 91.44},
		{"negative", -100, -30.48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FeetToMeters(tt.ft)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FeetToMeters(%v) = %v, want %v", tt.ft, got, tt.want)
			}
		})
	}

	if got := MetersToFeet(30.48); math.Abs(got-100) > 1e-9 {
		t.Errorf("MetersToFeet(30.48) = %v, want 100", got)
	}
}

func TestNewGeoPoint(t *testing.T) {
	p := NewGeoPoint(38.14, -76.43)
	if p.HasAltitude() {
		t.Error("Expected no altitude")
	}
	if p.AltitudeOr(-1) != -1 {
		t.Errorf("AltitudeOr = %v, want -1", p.AltitudeOr(-1))
	}

	q := NewGeoPointFeet(38.14, -76.43, 200)
	if !q.HasAltitude() {
		t.Fatal("Expected altitude")
	}
	if math.Abs(*q.Altitude-60.96) > 1e-9 {
		t.Errorf("Altitude = %v, want 60.96", *q.Altitude)
	}
	if q.Latitude != 38.14 || q.Longitude != -76.43 {
		t.Errorf("Lat/lon changed: %v", q)
	}
}

// TestHeadingFromQuaternion checks the east-CCW to north-CW remap.
func TestHeadingFromQuaternion(t *testing.T) {
	yaw := func(deg float64) Quaternion {
		half := deg * DegreesToRadians / 2
		return Quaternion{Z: math.Sin(half), W: math.Cos(half)}
	}

	tests := []struct {
		name string
		q    Quaternion
		want float64
	}{
		{"identity faces east", IdentityQuaternion, 90},
		{"yaw 90 faces north", yaw(90), 0},
		{"yaw 180 faces west", yaw(180), 270},
		{"yaw -90 faces south", yaw(-90), 180},
		{"yaw 45 faces north-east", yaw(45), 45},
		{"yaw 135 faces north-west", yaw(135), 315},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeadingFromQuaternion(tt.q)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HeadingFromQuaternion = %.6f, want %.6f", got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("Heading %.6f outside [0, 360)", got)
			}
		})
	}
}

func TestNormalizeAzimuth(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-360, 0},
		{719.5, 359.5},
	}

	for _, tt := range tests {
		if got := NormalizeAzimuth(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAzimuth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPathLengthMeters(t *testing.T) {
	// One degree of latitude is roughly 111.2 km on the mean sphere
	path := []GeoPoint{
		NewGeoPoint(0, 0),
		NewGeoPoint(1, 0),
		NewGeoPoint(2, 0),
	}
	got := PathLengthMeters(path)
	want := 2 * EarthRadiusKm * 1000 * DegreesToRadians
	if math.Abs(got-want) > 1 {
		t.Errorf("PathLengthMeters = %.1f, want %.1f", got, want)
	}

	if PathLengthMeters(nil) != 0 {
		t.Error("Expected zero length for empty path")
	}
}
