package interop

import (
	"time"

	"github.com/unklstewy/suas-interop/pkg/coordinates"
	"github.com/unklstewy/suas-interop/pkg/odlc"
	"github.com/unklstewy/suas-interop/pkg/timestamp"
)

// Dict is a decoded JSON object as exchanged with the interop server.
type Dict = map[string]any

// Header stamps every record produced from a server message.
type Header struct {
	// Stamp is when the record was produced, taken from the translator's clock
	Stamp timestamp.TimePoint `json:"stamp"`

	// FrameID names the reference frame downstream consumers attach the record to
	FrameID string `json:"frame_id"`
}

// FlyZone is a polygonal flight boundary with an altitude band.
type FlyZone struct {
	// MaxAltitude in meters MSL
	MaxAltitude float64 `json:"max_alt"`

	// MinAltitude in meters MSL
	MinAltitude float64 `json:"min_alt"`

	// Boundary vertices in the order received; the order defines the path.
	// Vertices carry no altitude.
	Boundary []coordinates.GeoPoint `json:"boundary"`
}

// FlyZoneArray holds every fly zone of a mission.
type FlyZoneArray struct {
	Header   Header    `json:"header"`
	FlyZones []FlyZone `json:"fly_zones"`
}

// GeoPolygon is an ordered polygon of points with altitude.
// Used for the search grid.
type GeoPolygon struct {
	Header Header                 `json:"header"`
	Points []coordinates.GeoPoint `json:"points"`
}

// WayPoints is the ordered flight path of a mission.
type WayPoints struct {
	Header    Header                 `json:"header"`
	Waypoints []coordinates.GeoPoint `json:"waypoints"`
}

// PointRole tags what a named mission point is for.
type PointRole string

const (
	RoleAirDrop  PointRole = "air_drop"
	RoleOffAxis  PointRole = "off_axis"
	RoleEmergent PointRole = "emergent"
	RoleHome     PointRole = "home"
)

// NamedPoint is a single mission location without altitude.
type NamedPoint struct {
	Header   Header               `json:"header"`
	Role     PointRole            `json:"role"`
	Position coordinates.GeoPoint `json:"position"`
}

// Mission is every record produced from one mission message.
type Mission struct {
	FlyZones   FlyZoneArray `json:"fly_zones"`
	SearchGrid GeoPolygon   `json:"search_grid"`
	Waypoints  WayPoints    `json:"waypoints"`
	AirDrop    NamedPoint   `json:"air_drop"`
	OffAxis    NamedPoint   `json:"off_axis"`
	Emergent   NamedPoint   `json:"emergent"`
	Home       NamedPoint   `json:"home"`
}

// Cylinder is a stationary obstacle.
type Cylinder struct {
	// Center carries no altitude; the cylinder rises from the ground
	Center coordinates.GeoPoint `json:"center"`

	// Radius in meters
	Radius float64 `json:"radius"`

	// Height in meters
	Height float64 `json:"height"`

	// Planar is the UTM projection of Center when requested
	Planar *coordinates.UTM `json:"planar,omitempty"`
}

// Sphere is a moving obstacle.
type Sphere struct {
	// Center altitude is meters MSL
	Center coordinates.GeoPoint `json:"center"`

	// Radius in meters
	Radius float64 `json:"radius"`

	Planar *coordinates.UTM `json:"planar,omitempty"`
}

// ObstacleArray holds one obstacle report.
type ObstacleArray struct {
	Header Header `json:"header"`

	// Lifetime is how long consumers should keep showing the obstacles
	// before a fresher report is expected
	Lifetime time.Duration `json:"lifetime"`

	Cylinders []Cylinder `json:"cylinders"`
	Spheres   []Sphere   `json:"spheres"`
}

// NavSatFix is a GNSS position as reported by the vehicle.
type NavSatFix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Altitude in meters above the WGS84 ellipsoid
	Altitude float64 `json:"altitude"`
}

// Telemetry is the outbound UAS telemetry report.
type Telemetry struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// AltitudeMSL in feet
	AltitudeMSL float64 `json:"altitude_msl"`

	// UASHeading in compass degrees [0, 360)
	UASHeading float64 `json:"uas_heading"`
}

// Object is an ODLC target report.
type Object struct {
	Type              odlc.ObjectType  `json:"type"`
	Latitude          float64          `json:"latitude"`
	Longitude         float64          `json:"longitude"`
	Orientation       odlc.Orientation `json:"orientation"`
	Shape             odlc.Shape       `json:"shape"`
	BackgroundColor   odlc.Color       `json:"background_color"`
	AlphanumericColor odlc.Color       `json:"alphanumeric_color"`
	Alphanumeric      string           `json:"alphanumeric"`
	Description       string           `json:"description"`
	Autonomous        bool             `json:"autonomous"`
}

// ServerInfo is the server status message.
type ServerInfo struct {
	Message          string              `json:"message"`
	MessageTimestamp timestamp.TimePoint `json:"message_timestamp"`
	ServerTime       timestamp.TimePoint `json:"server_time"`
}
