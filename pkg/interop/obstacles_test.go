package interop

import (
	"math"
	"testing"
	"time"

	"github.com/unklstewy/suas-interop/pkg/coordinates"
)

const obstaclesJSON = `{
	"stationary_obstacles": [
		{"cylinder_height": 750.0, "cylinder_radius": 300.0, "latitude": 38.140578, "longitude": -76.428997},
		{"cylinder_height": 400.0, "cylinder_radius": 100.0, "latitude": 38.149156, "longitude": -76.430622}
	]
}`

func TestObstacles(t *testing.T) {
	tr := newTestTranslator()

	obs, err := tr.DecodeObstacles([]byte(obstaclesJSON), "odom", time.Second)
	if err != nil {
		t.Fatalf("Obstacles failed: %v", err)
	}
	if obs.Header.FrameID != "odom" {
		t.Errorf("Expected frame odom, got %q", obs.Header.FrameID)
	}
	if obs.Lifetime != time.Second {
		t.Errorf("Expected lifetime 1s, got %v", obs.Lifetime)
	}
	if len(obs.Cylinders) != 2 {
		t.Fatalf("Expected 2 cylinders, got %d", len(obs.Cylinders))
	}
	if len(obs.Spheres) != 0 {
		t.Errorf("Expected no spheres, got %d", len(obs.Spheres))
	}

	first := obs.Cylinders[0]
	if math.Abs(first.Height-228.6) > 1e-9 {
		t.Errorf("Expected height 228.6 m, got %v", first.Height)
	}
	if math.Abs(first.Radius-91.44) > 1e-9 {
		t.Errorf("Expected radius 91.44 m, got %v", first.Radius)
	}
	if first.Center.Latitude != 38.140578 || first.Center.Longitude != -76.428997 {
		t.Errorf("Center changed: %v", first.Center)
	}
	if first.Center.HasAltitude() {
		t.Error("Cylinder center should carry no altitude")
	}
	if first.Planar != nil {
		t.Error("Expected no planar projection by default")
	}

	second := obs.Cylinders[1]
	if second.Radius != coordinates.FeetToMeters(100) || second.Height != coordinates.FeetToMeters(400) {
		t.Errorf("Unexpected second cylinder %+v", second)
	}
}

func TestObstaclesAbsentList(t *testing.T) {
	tr := newTestTranslator()

	tests := []struct {
		name string
		data Dict
	}{
		{"Empty message", Dict{}},
		{"Null list", Dict{"stationary_obstacles": nil, "moving_obstacles": nil}},
		{"Empty list", Dict{"stationary_obstacles": []any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := tr.Obstacles(tt.data, "odom", 100*time.Millisecond)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(obs.Cylinders) != 0 || len(obs.Spheres) != 0 {
				t.Errorf("Expected no obstacles, got %+v", obs)
			}
		})
	}
}

func TestObstaclesMoving(t *testing.T) {
	tr := newTestTranslator()

	obs, err := tr.Obstacles(Dict{
		"moving_obstacles": []map[string]any{
			{"latitude": 38.141, "longitude": -76.43, "altitude_msl": 100.0, "sphere_radius": 50.0},
		},
	}, "odom", time.Second)
	if err != nil {
		t.Fatalf("Obstacles failed: %v", err)
	}
	if len(obs.Spheres) != 1 {
		t.Fatalf("Expected 1 sphere, got %d", len(obs.Spheres))
	}
	s := obs.Spheres[0]
	if s.Radius != coordinates.FeetToMeters(50) {
		t.Errorf("Expected radius %v, got %v", coordinates.FeetToMeters(50), s.Radius)
	}
	if s.Center.AltitudeOr(-1) != coordinates.FeetToMeters(100) {
		t.Errorf("Expected altitude %v, got %v", coordinates.FeetToMeters(100), s.Center.AltitudeOr(-1))
	}
}

func TestObstaclesPlanarProjection(t *testing.T) {
	tr := newTestTranslator(WithPlanarProjection(true))

	obs, err := tr.DecodeObstacles([]byte(obstaclesJSON), "odom", time.Second)
	if err != nil {
		t.Fatalf("Obstacles failed: %v", err)
	}
	for i, c := range obs.Cylinders {
		if c.Planar == nil {
			t.Fatalf("Cylinder %d: expected planar projection", i)
		}
		if c.Planar.ZoneNumber != 18 || c.Planar.ZoneLetter != "S" {
			t.Errorf("Cylinder %d: expected zone 18S, got %d%s", i, c.Planar.ZoneNumber, c.Planar.ZoneLetter)
		}
		lat, lon, err := coordinates.Unproject(*c.Planar)
		if err != nil {
			t.Fatalf("Unproject failed: %v", err)
		}
		if math.Abs(lat-c.Center.Latitude) > 1e-5 || math.Abs(lon-c.Center.Longitude) > 1e-5 {
			t.Errorf("Cylinder %d: projection does not round trip: (%v, %v)", i, lat, lon)
		}
	}
}

func TestObstaclesErrors(t *testing.T) {
	tr := newTestTranslator(WithPlanarProjection(true))

	t.Run("Missing radius", func(t *testing.T) {
		_, err := tr.Obstacles(Dict{
			"stationary_obstacles": []any{
				map[string]any{"latitude": 38.0, "longitude": -76.0, "cylinder_height": 10.0},
			},
		}, "odom", time.Second)
		mfe, ok := IsMissingField(err)
		if !ok {
			t.Fatalf("Expected MissingFieldError, got %v", err)
		}
		if mfe.Path != "stationary_obstacles[0].cylinder_radius" {
			t.Errorf("Unexpected path %q", mfe.Path)
		}
	})

	t.Run("Not a list", func(t *testing.T) {
		_, err := tr.Obstacles(Dict{"stationary_obstacles": 3.0}, "odom", time.Second)
		if _, ok := IsFieldType(err); !ok {
			t.Fatalf("Expected FieldTypeError, got %v", err)
		}
	})

	t.Run("Outside projection range", func(t *testing.T) {
		_, err := tr.Obstacles(Dict{
			"stationary_obstacles": []any{
				map[string]any{"latitude": 85.0, "longitude": 0.0, "cylinder_height": 10.0, "cylinder_radius": 10.0},
			},
		}, "odom", time.Second)
		if err == nil {
			t.Fatal("Expected projection error above 84N")
		}
	})
}
