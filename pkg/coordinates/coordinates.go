package coordinates

import (
	"fmt"
	"math"
)

// Constants for coordinate calculations
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// EarthRadiusKm is the Earth's radius in kilometers (WGS84 mean radius)
	EarthRadiusKm = 6371.0

	// MetersPerFoot is the exact international foot.
	// The interop protocol reports every distance in feet.
	MetersPerFoot = 0.3048
)

// GeoPoint is a position on Earth's surface in WGS84.
// Latitude and longitude are carried verbatim from the wire; only the
// altitude is unit-converted.
type GeoPoint struct {
	// Latitude in decimal degrees (-90 to +90)
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64 `json:"longitude"`

	// Altitude in meters above mean sea level (MSL).
	// Nil for point kinds that carry no altitude (boundary vertices,
	// obstacle centers, named mission points).
	Altitude *float64 `json:"altitude,omitempty"`
}

// Quaternion is an orientation in the vehicle's local frame.
// Yaw is measured counter-clockwise from east (ENU convention).
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// IdentityQuaternion is the orientation with no rotation.
var IdentityQuaternion = Quaternion{W: 1}

// FeetToMeters converts a distance in feet to meters.
func FeetToMeters(ft float64) float64 {
	return ft * MetersPerFoot
}

// MetersToFeet converts a distance in meters to feet.
func MetersToFeet(m float64) float64 {
	return m / MetersPerFoot
}

// NewGeoPoint returns a point without altitude.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Latitude: lat, Longitude: lon}
}

// NewGeoPointFeet returns a point whose altitude is given in feet MSL.
// The stored altitude is in meters.
func NewGeoPointFeet(lat, lon, altitudeFt float64) GeoPoint {
	alt := FeetToMeters(altitudeFt)
	return GeoPoint{Latitude: lat, Longitude: lon, Altitude: &alt}
}

// HasAltitude reports whether the point carries an altitude.
func (g GeoPoint) HasAltitude() bool {
	return g.Altitude != nil
}

// AltitudeOr returns the altitude in meters, or def when the point has none.
func (g GeoPoint) AltitudeOr(def float64) float64 {
	if g.Altitude == nil {
		return def
	}
	return *g.Altitude
}

// String formats the point for logs and summaries.
func (g GeoPoint) String() string {
	if g.Altitude == nil {
		return fmt.Sprintf("%.6f, %.6f", g.Latitude, g.Longitude)
	}
	return fmt.Sprintf("%.6f, %.6f @ %.1fm", g.Latitude, g.Longitude, *g.Altitude)
}

// ToRadians converts the point coordinates to radians.
// Returns (latRad, lonRad).
func (g GeoPoint) ToRadians() (float64, float64) {
	return g.Latitude * DegreesToRadians, g.Longitude * DegreesToRadians
}

// NormalizeAzimuth ensures azimuth is in the range [0, 360).
func NormalizeAzimuth(azimuth float64) float64 {
	az := math.Mod(azimuth, 360.0)
	if az < 0 {
		az += 360.0
	}
	// math.Mod can hand back -0 or a value that rounds up to 360
	if az >= 360.0 || az == 0 {
		return 0
	}
	return az
}

// Yaw returns the rotation about the vertical axis in radians,
// counter-clockwise from east, in (-π, π].
func (q Quaternion) Yaw() float64 {
	sinyCosp := 2 * (q.W*q.Z + q.X*q.Y)
	cosyCosp := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	return math.Atan2(sinyCosp, cosyCosp)
}

// HeadingFromQuaternion converts an orientation to a compass heading.
//
// The yaw is extracted in the east-counter-clockwise convention and
// remapped to north-clockwise: heading = (450 - yaw) mod 360.
// The identity quaternion therefore faces east, heading 90.
//
// Returns heading in degrees [0, 360), 0 = North, 90 = East.
func HeadingFromQuaternion(q Quaternion) float64 {
	yawDegrees := q.Yaw() * RadiansToDegrees
	return NormalizeAzimuth(450.0 - yawDegrees)
}

// DistanceMeters calculates the great-circle distance between two points.
// Uses the Haversine formula; altitude is ignored.
func DistanceMeters(from, to GeoPoint) float64 {
	lat1Rad, lon1Rad := from.ToRadians()
	lat2Rad, lon2Rad := to.ToRadians()

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c * 1000.0
}

// PathLengthMeters sums the great-circle legs of an ordered path.
func PathLengthMeters(points []GeoPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += DistanceMeters(points[i-1], points[i])
	}
	return total
}
