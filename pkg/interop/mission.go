package interop

import (
	"fmt"

	"github.com/unklstewy/suas-interop/pkg/coordinates"
)

// missionKeys are the top-level sections every mission message carries.
// Their absence is a protocol violation, not an empty mission.
var missionKeys = []string{
	"fly_zones",
	"search_grid_points",
	"mission_waypoints",
	"air_drop_pos",
	"off_axis_odlc_pos",
	"emergent_last_known_pos",
	"home_pos",
}

// Mission converts a mission message into typed records stamped with frame.
//
// All seven sections must be present (lists may be empty). Vertex order
// of every fly zone, the search grid and the waypoint path is preserved
// exactly as received. Altitudes are converted from feet to meters.
func (t *Translator) Mission(data Dict, frame string) (mission *Mission, err error) {
	start := t.clock.Now()
	defer func() { t.observe(KindMission, start, err) }()

	for _, key := range missionKeys {
		if _, ok := data[key]; !ok {
			return nil, &MissingFieldError{Path: key}
		}
	}

	header := t.header(frame)

	zones, err := parseFlyZones(data)
	if err != nil {
		return nil, err
	}

	grid, err := parseAltitudePoints(data, "search_grid_points")
	if err != nil {
		return nil, err
	}

	waypoints, err := parseAltitudePoints(data, "mission_waypoints")
	if err != nil {
		return nil, err
	}

	named := make(map[PointRole]NamedPoint, 4)
	for _, np := range []struct {
		key  string
		role PointRole
	}{
		{"air_drop_pos", RoleAirDrop},
		{"off_axis_odlc_pos", RoleOffAxis},
		{"emergent_last_known_pos", RoleEmergent},
		{"home_pos", RoleHome},
	} {
		pos, err := requireDict(data, "", np.key)
		if err != nil {
			return nil, err
		}
		point, err := parseSurfacePoint(pos, np.key)
		if err != nil {
			return nil, err
		}
		named[np.role] = NamedPoint{Header: header, Role: np.role, Position: point}
	}

	return &Mission{
		FlyZones:   FlyZoneArray{Header: header, FlyZones: zones},
		SearchGrid: GeoPolygon{Header: header, Points: grid},
		Waypoints:  WayPoints{Header: header, Waypoints: waypoints},
		AirDrop:    named[RoleAirDrop],
		OffAxis:    named[RoleOffAxis],
		Emergent:   named[RoleEmergent],
		Home:       named[RoleHome],
	}, nil
}

func parseFlyZones(data Dict) ([]FlyZone, error) {
	items, err := requireList(data, "", "fly_zones")
	if err != nil {
		return nil, err
	}

	zones := make([]FlyZone, 0, len(items))
	for i, item := range items {
		path := indexPath("fly_zones", i)

		maxFt, err := requireFloat(item, path, "altitude_msl_max")
		if err != nil {
			return nil, err
		}
		minFt, err := requireFloat(item, path, "altitude_msl_min")
		if err != nil {
			return nil, err
		}

		boundaryPath := joinPath(path, "boundary_pts")
		pts, err := requireList(item, path, "boundary_pts")
		if err != nil {
			return nil, err
		}
		boundary := make([]coordinates.GeoPoint, 0, len(pts))
		for k, pt := range pts {
			point, err := parseSurfacePoint(pt, indexPath(boundaryPath, k))
			if err != nil {
				return nil, err
			}
			boundary = append(boundary, point)
		}

		zones = append(zones, FlyZone{
			MaxAltitude: coordinates.FeetToMeters(maxFt),
			MinAltitude: coordinates.FeetToMeters(minFt),
			Boundary:    boundary,
		})
	}
	return zones, nil
}

// parseAltitudePoints converts an ordered list of points whose altitude
// is mandatory.
func parseAltitudePoints(data Dict, key string) ([]coordinates.GeoPoint, error) {
	items, err := requireList(data, "", key)
	if err != nil {
		return nil, err
	}

	points := make([]coordinates.GeoPoint, 0, len(items))
	for i, item := range items {
		path := indexPath(key, i)
		point, err := parseSurfacePoint(item, path)
		if err != nil {
			return nil, err
		}
		altFt, err := requireFloat(item, path, "altitude_msl")
		if err != nil {
			return nil, err
		}
		points = append(points, coordinates.NewGeoPointFeet(point.Latitude, point.Longitude, altFt))
	}
	return points, nil
}

// parseSurfacePoint reads latitude and longitude; no altitude.
func parseSurfacePoint(d Dict, path string) (coordinates.GeoPoint, error) {
	lat, err := requireFloat(d, path, "latitude")
	if err != nil {
		return coordinates.GeoPoint{}, err
	}
	lon, err := requireFloat(d, path, "longitude")
	if err != nil {
		return coordinates.GeoPoint{}, err
	}
	if lat < -90 || lat > 90 {
		return coordinates.GeoPoint{}, fmt.Errorf("%s: %w", path,
			&coordinates.OutOfRangeError{Quantity: "latitude", Value: lat, Min: -90, Max: 90})
	}
	if lon < -180 || lon > 180 {
		return coordinates.GeoPoint{}, fmt.Errorf("%s: %w", path,
			&coordinates.OutOfRangeError{Quantity: "longitude", Value: lon, Min: -180, Max: 180})
	}
	return coordinates.NewGeoPoint(lat, lon), nil
}
