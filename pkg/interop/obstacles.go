package interop

import (
	"fmt"
	"time"

	"github.com/unklstewy/suas-interop/pkg/coordinates"
)

// Obstacles converts an obstacle report into typed records stamped with frame.
//
// Both "stationary_obstacles" and "moving_obstacles" are optional: the
// server reports obstacles intermittently and an absent list means no
// obstacles of that kind. Radii and heights are converted from feet to
// meters. Obstacle order is preserved.
func (t *Translator) Obstacles(data Dict, frame string, lifetime time.Duration) (obstacles *ObstacleArray, err error) {
	start := t.clock.Now()
	defer func() { t.observe(KindObstacles, start, err) }()

	stationary, err := optionalList(data, "", "stationary_obstacles")
	if err != nil {
		return nil, err
	}
	moving, err := optionalList(data, "", "moving_obstacles")
	if err != nil {
		return nil, err
	}

	result := &ObstacleArray{
		Header:    t.header(frame),
		Lifetime:  lifetime,
		Cylinders: make([]Cylinder, 0, len(stationary)),
		Spheres:   make([]Sphere, 0, len(moving)),
	}

	for i, item := range stationary {
		cylinder, err := t.parseCylinder(item, indexPath("stationary_obstacles", i))
		if err != nil {
			return nil, err
		}
		result.Cylinders = append(result.Cylinders, cylinder)
	}

	for i, item := range moving {
		sphere, err := t.parseSphere(item, indexPath("moving_obstacles", i))
		if err != nil {
			return nil, err
		}
		result.Spheres = append(result.Spheres, sphere)
	}

	return result, nil
}

func (t *Translator) parseCylinder(d Dict, path string) (Cylinder, error) {
	center, err := parseSurfacePoint(d, path)
	if err != nil {
		return Cylinder{}, err
	}
	radiusFt, err := requireFloat(d, path, "cylinder_radius")
	if err != nil {
		return Cylinder{}, err
	}
	heightFt, err := requireFloat(d, path, "cylinder_height")
	if err != nil {
		return Cylinder{}, err
	}

	planar, err := t.project(center, path)
	if err != nil {
		return Cylinder{}, err
	}

	return Cylinder{
		Center: center,
		Radius: coordinates.FeetToMeters(radiusFt),
		Height: coordinates.FeetToMeters(heightFt),
		Planar: planar,
	}, nil
}

func (t *Translator) parseSphere(d Dict, path string) (Sphere, error) {
	surface, err := parseSurfacePoint(d, path)
	if err != nil {
		return Sphere{}, err
	}
	altFt, err := requireFloat(d, path, "altitude_msl")
	if err != nil {
		return Sphere{}, err
	}
	radiusFt, err := requireFloat(d, path, "sphere_radius")
	if err != nil {
		return Sphere{}, err
	}

	planar, err := t.project(surface, path)
	if err != nil {
		return Sphere{}, err
	}

	return Sphere{
		Center: coordinates.NewGeoPointFeet(surface.Latitude, surface.Longitude, altFt),
		Radius: coordinates.FeetToMeters(radiusFt),
		Planar: planar,
	}, nil
}

// project returns the UTM position of p when planar projection is enabled.
func (t *Translator) project(p coordinates.GeoPoint, path string) (*coordinates.UTM, error) {
	if !t.planar {
		return nil, nil
	}
	u, err := coordinates.Project(p.Latitude, p.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &u, nil
}
