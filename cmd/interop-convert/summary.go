package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unklstewy/suas-interop/pkg/coordinates"
	"github.com/unklstewy/suas-interop/pkg/interop"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(20)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	unsetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	boxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// renderSummary formats a converted record for a terminal.
func renderSummary(record any) string {
	var title string
	var rows []string

	switch r := record.(type) {
	case *interop.Mission:
		title, rows = summarizeMission(r)
	case *interop.ObstacleArray:
		title, rows = summarizeObstacles(r)
	case interop.Object:
		title, rows = summarizeObject(r)
	case *interop.ServerInfo:
		title, rows = summarizeServerInfo(r)
	case interop.Dict:
		title, rows = "Dictionary", summarizeDict(r)
	case *imageResult:
		title = "Image"
		rows = []string{
			row("Size", fmt.Sprintf("%dx%d", r.Width, r.Height)),
			row("Encoding", string(r.Encoding)),
			row("Format", r.Format),
			row("Compressed", fmt.Sprintf("%d bytes", len(r.Data))),
		}
	default:
		title, rows = "Record", []string{fmt.Sprintf("%+v", record)}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{titleStyle.Render(title)}, rows...)...)
	return boxStyle.Render(body)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func unsetRow(label string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), unsetStyle.Render("unset"))
}

func summarizeMission(m *interop.Mission) (string, []string) {
	rows := []string{row("Fly zones", fmt.Sprintf("%d", len(m.FlyZones.FlyZones)))}
	for i, zone := range m.FlyZones.FlyZones {
		rows = append(rows, row(fmt.Sprintf("  zone %d", i+1),
			fmt.Sprintf("%d vertices, %.1f-%.1f m MSL, perimeter %.0f m",
				len(zone.Boundary), zone.MinAltitude, zone.MaxAltitude, perimeter(zone.Boundary))))
	}

	rows = append(rows,
		row("Search grid", fmt.Sprintf("%d points, perimeter %.0f m", len(m.SearchGrid.Points), perimeter(m.SearchGrid.Points))),
		row("Waypoints", fmt.Sprintf("%d points, path %.0f m", len(m.Waypoints.Waypoints), coordinates.PathLengthMeters(m.Waypoints.Waypoints))),
		row("Air drop", m.AirDrop.Position.String()),
		row("Off axis", m.OffAxis.Position.String()),
		row("Emergent", m.Emergent.Position.String()),
		row("Home", m.Home.Position.String()),
	)
	return fmt.Sprintf("Mission (frame %s)", m.FlyZones.Header.FrameID), rows
}

// perimeter is the length of the closed polygon through points.
func perimeter(points []coordinates.GeoPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	closed := append(append([]coordinates.GeoPoint{}, points...), points[0])
	return coordinates.PathLengthMeters(closed)
}

func summarizeObstacles(o *interop.ObstacleArray) (string, []string) {
	rows := []string{row("Stationary", fmt.Sprintf("%d", len(o.Cylinders)))}
	for i, c := range o.Cylinders {
		value := fmt.Sprintf("%s r=%.1f m h=%.1f m", c.Center, c.Radius, c.Height)
		if c.Planar != nil {
			value += " utm " + c.Planar.String()
		}
		rows = append(rows, row(fmt.Sprintf("  cylinder %d", i+1), value))
	}

	rows = append(rows, row("Moving", fmt.Sprintf("%d", len(o.Spheres))))
	for i, s := range o.Spheres {
		value := fmt.Sprintf("%s r=%.1f m", s.Center, s.Radius)
		if s.Planar != nil {
			value += " utm " + s.Planar.String()
		}
		rows = append(rows, row(fmt.Sprintf("  sphere %d", i+1), value))
	}

	return fmt.Sprintf("Obstacles (frame %s, lifetime %s)", o.Header.FrameID, o.Lifetime), rows
}

func summarizeObject(o interop.Object) (string, []string) {
	categorical := func(label, token string) string {
		if token == "" {
			return unsetRow(label)
		}
		return row(label, token)
	}

	rows := []string{
		categorical("Type", o.Type.String()),
		row("Position", coordinates.NewGeoPoint(o.Latitude, o.Longitude).String()),
		categorical("Orientation", o.Orientation.String()),
		categorical("Shape", o.Shape.String()),
		categorical("Background", o.BackgroundColor.String()),
		categorical("Alphanumeric color", o.AlphanumericColor.String()),
		categorical("Alphanumeric", o.Alphanumeric),
		categorical("Description", o.Description),
		row("Autonomous", fmt.Sprintf("%t", o.Autonomous)),
	}
	return "ODLC target", rows
}

func summarizeServerInfo(s *interop.ServerInfo) (string, []string) {
	skew := s.ServerTime.Time().Sub(s.MessageTimestamp.Time())
	rows := []string{
		row("Message", s.Message),
		row("Message time", s.MessageTimestamp.String()),
		row("Server time", s.ServerTime.String()),
		row("Message age", skew.String()),
	}
	return "Server info", rows
}

func summarizeDict(d interop.Dict) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]string, 0, len(keys))
	for _, k := range keys {
		if d[k] == nil {
			rows = append(rows, unsetRow(k))
			continue
		}
		rows = append(rows, row(k, strings.TrimSpace(fmt.Sprintf("%v", d[k]))))
	}
	return rows
}
