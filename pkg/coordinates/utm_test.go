package coordinates

import (
	"errors"
	"math"
	"testing"
)

// TestProjectKnownValues compares against published reference points.
func TestProjectKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		easting  float64
		northing float64
		zone     int
		letter   string
	}{
		{"Aachen", 50.77535, 6.08389, 294409, 5628898, 32, "U"},
		{"New York", 40.71435, -74.00597, 583960, 4507523, 18, "T"},
		{"Wellington", -41.28646, 174.77624, 313784, 5427057, 60, "G"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Project(tt.lat, tt.lon)
			if err != nil {
				t.Fatalf("Project: %v", err)
			}
			if got.ZoneNumber != tt.zone || got.ZoneLetter != tt.letter {
				t.Errorf("Zone = %d%s, want %d%s", got.ZoneNumber, got.ZoneLetter, tt.zone, tt.letter)
			}
			if math.Abs(got.Easting-tt.easting) > 1 {
				t.Errorf("Easting = %.1f, want %.0f (±1m)", got.Easting, tt.easting)
			}
			if math.Abs(got.Northing-tt.northing) > 1 {
				t.Errorf("Northing = %.1f, want %.0f (±1m)", got.Northing, tt.northing)
			}
		})
	}
}

func TestProjectRoundTrip(t *testing.T) {
	points := [][2]float64{
		{38.140578, -76.428997},
		{38.149156, -76.430622},
		{-33.8688, 151.2093},
		{0.5, 0.5},
		{60.0, 5.0},  // Norway exception
		{78.0, 15.0}, // Svalbard exception
	}

	for _, p := range points {
		u, err := Project(p[0], p[1])
		if err != nil {
			t.Fatalf("Project(%v): %v", p, err)
		}
		lat, lon, err := Unproject(u)
		if err != nil {
			t.Fatalf("Unproject(%v): %v", u, err)
		}
		if math.Abs(lat-p[0]) > 1e-5 || math.Abs(lon-p[1]) > 1e-5 {
			t.Errorf("round trip %v -> %v -> (%.7f, %.7f)", p, u, lat, lon)
		}
	}
}

func TestProjectAntimeridian(t *testing.T) {
	east, err := Project(10, 180)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	west, err := Project(10, -180)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if east != west {
		t.Errorf("Expected 180 and -180 to project identically, got %v and %v", east, west)
	}
	lat, lon, err := Unproject(east)
	if err != nil {
		t.Fatalf("Unproject: %v", err)
	}
	if math.Abs(lat-10) > 1e-6 || math.Abs(normalizeLongitude(lon+180)) > 1e-6 {
		t.Errorf("Expected (10, -180), got (%.7f, %.7f)", lat, lon)
	}
}

func TestProjectDeterministic(t *testing.T) {
	a, _ := Project(38.140578, -76.428997)
	b, _ := Project(38.140578, -76.428997)
	if a != b {
		t.Errorf("Project not deterministic: %v vs %v", a, b)
	}
	if a.ZoneNumber != 18 || a.ZoneLetter != "S" {
		t.Errorf("Zone = %d%s, want 18S", a.ZoneNumber, a.ZoneLetter)
	}
	if !a.Northern() {
		t.Error("Expected northern hemisphere")
	}
}

func TestZoneExceptions(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     int
	}{
		{60, 5, 32},   // Norway widens 32V
		{60, 2, 31},   // west of the exception
		{75, 8, 31},   // Svalbard
		{75, 10, 33},  // Svalbard
		{75, 25, 35},  // Svalbard
		{75, 40, 37},  // Svalbard
		{0, 180, 1},   // same meridian as -180
		{0, -180, 1},  // antimeridian
		{0, 179.9, 60},
		{0, -76.4, 18},
		{85, 0, 0},    // outside the projection
	}

	for _, tt := range tests {
		if got := ZoneNumber(tt.lat, tt.lon); got != tt.want {
			t.Errorf("ZoneNumber(%v, %v) = %d, want %d", tt.lat, tt.lon, got, tt.want)
		}
	}

	if ZoneLetter(84) != "X" {
		t.Errorf("ZoneLetter(84) = %q, want X", ZoneLetter(84))
	}
	if ZoneLetter(-80) != "C" {
		t.Errorf("ZoneLetter(-80) = %q, want C", ZoneLetter(-80))
	}
	if ZoneLetter(85) != "" {
		t.Errorf("ZoneLetter(85) = %q, want empty", ZoneLetter(85))
	}
}

func TestProjectOutOfRange(t *testing.T) {
	for _, p := range [][2]float64{{85, 0}, {-81, 0}, {0, 181}, {0, -200}} {
		_, err := Project(p[0], p[1])
		var oor *OutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("Project(%v) error = %v, want *OutOfRangeError", p, err)
		}
	}

	if _, _, err := Unproject(UTM{ZoneNumber: 0, ZoneLetter: "T"}); err == nil {
		t.Error("Expected error for zone 0")
	}
	if _, _, err := Unproject(UTM{Easting: 500000, Northing: 4000000, ZoneNumber: 18, ZoneLetter: "I"}); err == nil {
		t.Error("Expected error for zone letter I")
	}
	if _, _, err := Unproject(UTM{Easting: 50, Northing: 4000000, ZoneNumber: 18, ZoneLetter: "S"}); err == nil {
		t.Error("Expected error for easting outside the zone")
	}
}
