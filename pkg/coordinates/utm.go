package coordinates

import (
	"fmt"
	"math"

	utm "github.com/im7mortal/UTM"
)

// UTM is only defined between these latitudes; the poles use UPS.
const (
	utmMinLatitude = -80.0
	utmMaxLatitude = 84.0
)

// UTM is a planar position in a Universal Transverse Mercator zone.
type UTM struct {
	// Easting in meters, including the 500 km false easting
	Easting float64 `json:"easting"`

	// Northing in meters; southern hemisphere values include the
	// 10 000 km false northing
	Northing float64 `json:"northing"`

	// ZoneNumber is the 6° longitude zone (1-60)
	ZoneNumber int `json:"zone_number"`

	// ZoneLetter is the 8° latitude band (C-X, without I and O)
	ZoneLetter string `json:"zone_letter"`
}

// Northern reports whether the zone letter lies in the northern hemisphere.
func (u UTM) Northern() bool {
	return u.ZoneLetter >= "N"
}

// String formats the position as "18T 583960E 4507523N".
func (u UTM) String() string {
	return fmt.Sprintf("%d%s %.0fE %.0fN", u.ZoneNumber, u.ZoneLetter, u.Easting, u.Northing)
}

// OutOfRangeError reports coordinates outside what the projection covers.
type OutOfRangeError struct {
	Quantity string
	Value    float64
	Min, Max float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %.6f out of range [%g, %g]", e.Quantity, e.Value, e.Min, e.Max)
}

// Project converts WGS84 latitude/longitude into UTM easting and northing.
//
// The zone follows the standard grid including the Norway (32V) and
// Svalbard (31X, 33X, 35X, 37X) exceptions. Latitudes outside
// [-80, 84] return an *OutOfRangeError. Longitude 180 is the same
// meridian as -180 and lands in zone 1.
func Project(lat, lon float64) (UTM, error) {
	if lat < utmMinLatitude || lat > utmMaxLatitude || math.IsNaN(lat) {
		return UTM{}, &OutOfRangeError{Quantity: "latitude", Value: lat, Min: utmMinLatitude, Max: utmMaxLatitude}
	}
	if lon < -180 || lon > 180 || math.IsNaN(lon) {
		return UTM{}, &OutOfRangeError{Quantity: "longitude", Value: lon, Min: -180, Max: 180}
	}

	easting, northing, zone, letter, err := utm.FromLatLon(lat, normalizeLongitude(lon), false)
	if err != nil {
		return UTM{}, fmt.Errorf("project (%f, %f): %w", lat, lon, err)
	}
	return UTM{
		Easting:    easting,
		Northing:   northing,
		ZoneNumber: zone,
		ZoneLetter: letter,
	}, nil
}

// Unproject converts a UTM position back to WGS84 latitude/longitude.
func Unproject(u UTM) (lat, lon float64, err error) {
	if u.ZoneNumber < 1 || u.ZoneNumber > 60 {
		return 0, 0, &OutOfRangeError{Quantity: "zone number", Value: float64(u.ZoneNumber), Min: 1, Max: 60}
	}
	if len(u.ZoneLetter) != 1 {
		return 0, 0, fmt.Errorf("invalid zone letter %q", u.ZoneLetter)
	}

	lat, lon, err = utm.ToLatLon(u.Easting, u.Northing, u.ZoneNumber, u.ZoneLetter)
	if err != nil {
		return 0, 0, fmt.Errorf("unproject %s: %w", u, err)
	}
	return lat, normalizeLongitude(lon), nil
}

// ZoneNumber returns the UTM zone for a latitude/longitude pair, or 0
// outside the projection's range.
func ZoneNumber(lat, lon float64) int {
	u, err := Project(lat, lon)
	if err != nil {
		return 0
	}
	return u.ZoneNumber
}

// ZoneLetter returns the latitude band letter, or "" outside [-80, 84].
func ZoneLetter(lat float64) string {
	u, err := Project(lat, 0)
	if err != nil {
		return ""
	}
	return u.ZoneLetter
}

// normalizeLongitude maps degrees into [-180, 180).
func normalizeLongitude(lon float64) float64 {
	return math.Mod(math.Mod(lon+180, 360)+360, 360) - 180
}
