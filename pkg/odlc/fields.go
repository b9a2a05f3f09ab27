package odlc

// ObjectType classifies how a target was tasked.
type ObjectType uint8

const (
	ObjectTypeUnset ObjectType = iota
	ObjectTypeStandard
	ObjectTypeOffAxis
	ObjectTypeEmergent
)

var objectTypes = newTable("type", "standard", "off_axis", "emergent")

// ParseObjectType decodes an interop type token.
func ParseObjectType(token string) (ObjectType, error) {
	v, err := objectTypes.decode(token)
	return ObjectType(v), err
}

// String returns the canonical token, or "" when unset.
func (o ObjectType) String() string { return objectTypes.encode(int(o)) }

// Valid reports whether o is a set member of the enumeration.
func (o ObjectType) Valid() bool { return objectTypes.valid(int(o)) }

// MarshalText encodes the canonical token. Values outside the table fail.
func (o ObjectType) MarshalText() ([]byte, error) { return objectTypes.marshal(int(o)) }

// UnmarshalText decodes a token; the empty string clears the field.
func (o *ObjectType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*o = ObjectTypeUnset
		return nil
	}
	v, err := ParseObjectType(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ObjectTypeTokens lists every accepted type token.
func ObjectTypeTokens() []string { return objectTypes.values() }

// Orientation is the compass direction the top of the alphanumeric faces.
type Orientation uint8

const (
	OrientationUnset Orientation = iota
	OrientationNorth
	OrientationNorthEast
	OrientationEast
	OrientationSouthEast
	OrientationSouth
	OrientationSouthWest
	OrientationWest
	OrientationNorthWest
)

var orientations = newTable("orientation", "n", "ne", "e", "se", "s", "sw", "w", "nw")

// ParseOrientation decodes an interop orientation token.
func ParseOrientation(token string) (Orientation, error) {
	v, err := orientations.decode(token)
	return Orientation(v), err
}

func (o Orientation) String() string { return orientations.encode(int(o)) }

func (o Orientation) Valid() bool { return orientations.valid(int(o)) }

func (o Orientation) MarshalText() ([]byte, error) { return orientations.marshal(int(o)) }

func (o *Orientation) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*o = OrientationUnset
		return nil
	}
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Degrees returns the compass bearing of the orientation.
// Unset returns -1.
func (o Orientation) Degrees() float64 {
	if !o.Valid() {
		return -1
	}
	return float64(o-OrientationNorth) * 45.0
}

func OrientationTokens() []string { return orientations.values() }

// Shape is the geometric outline of a standard target.
type Shape uint8

const (
	ShapeUnset Shape = iota
	ShapeCircle
	ShapeSemicircle
	ShapeQuarterCircle
	ShapeTriangle
	ShapeSquare
	ShapeRectangle
	ShapeTrapezoid
	ShapePentagon
	ShapeHexagon
	ShapeHeptagon
	ShapeOctagon
	ShapeStar
	ShapeCross
)

var shapes = newTable("shape",
	"circle", "semicircle", "quarter_circle", "triangle", "square",
	"rectangle", "trapezoid", "pentagon", "hexagon", "heptagon",
	"octagon", "star", "cross")

// ParseShape decodes an interop shape token.
func ParseShape(token string) (Shape, error) {
	v, err := shapes.decode(token)
	return Shape(v), err
}

func (s Shape) String() string { return shapes.encode(int(s)) }

func (s Shape) Valid() bool { return shapes.valid(int(s)) }

func (s Shape) MarshalText() ([]byte, error) { return shapes.marshal(int(s)) }

func (s *Shape) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ShapeUnset
		return nil
	}
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ShapeTokens() []string { return shapes.values() }

// Color is used for both the shape background and the alphanumeric.
type Color uint8

const (
	ColorUnset Color = iota
	ColorWhite
	ColorBlack
	ColorGray
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorBrown
	ColorOrange
)

var colors = newTable("color",
	"white", "black", "gray", "red", "blue",
	"green", "yellow", "purple", "brown", "orange")

// ParseColor decodes an interop color token.
func ParseColor(token string) (Color, error) {
	v, err := colors.decode(token)
	return Color(v), err
}

func (c Color) String() string { return colors.encode(int(c)) }

func (c Color) Valid() bool { return colors.valid(int(c)) }

func (c Color) MarshalText() ([]byte, error) { return colors.marshal(int(c)) }

func (c *Color) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = ColorUnset
		return nil
	}
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func ColorTokens() []string { return colors.values() }
