package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unklstewy/suas-interop/internal/codec"
	"github.com/unklstewy/suas-interop/pkg/interop"
)

const obstaclesMessage = `{"stationary_obstacles": [
	{"cylinder_height": 750.0, "cylinder_radius": 300.0, "latitude": 38.140578, "longitude": -76.428997},
	{"cylinder_height": 400.0, "cylinder_radius": 100.0, "latitude": 38.149156, "longitude": -76.430622}
]}`

func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunObstaclesJSON(t *testing.T) {
	out, _, err := runCommand(t, obstaclesMessage, "--kind", "obstacles", "--frame", "world")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	cylinders, ok := record["cylinders"].([]any)
	if !ok || len(cylinders) != 2 {
		t.Fatalf("Expected 2 cylinders, got %v", record["cylinders"])
	}
	header := record["header"].(map[string]any)
	if header["frame_id"] != "world" {
		t.Errorf("Expected frame_id world, got %v", header["frame_id"])
	}
}

func TestRunInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing kind", nil, "--kind must be one of"},
		{"unknown kind", []string{"--kind", "weather"}, "--kind must be one of"},
		{"stream image", []string{"--kind", "image", "--stream"}, "not supported"},
		{"extra argument", []string{"--kind", "mission", "extra"}, "unexpected argument"},
		{"bad format", []string{"--kind", "mission", "-f", "xml"}, "format"},
		{"bad compression", []string{"--kind", "mission", "--compress", "lz4"}, "compression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, "{}", tt.args...)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	_, stderr, err := runCommand(t, "", "--help")
	if err != nil {
		t.Fatalf("Expected help to succeed, got %v", err)
	}
	if !strings.Contains(stderr, "interop-convert --kind KIND") {
		t.Errorf("Expected usage text, got:\n%s", stderr)
	}
}

func TestRunMissingFieldFails(t *testing.T) {
	_, _, err := runCommand(t, `{"home_pos": {"latitude": 1, "longitude": 2}}`, "--kind", "mission")
	if err == nil {
		t.Fatal("Expected error for incomplete mission, got nil")
	}
	missing, ok := interop.IsMissingField(err)
	if !ok {
		t.Fatalf("Expected MissingFieldError, got %v", err)
	}
	if missing.Path != "fly_zones" {
		t.Errorf("Expected missing fly_zones, got %q", missing.Path)
	}
}

func TestRunStream(t *testing.T) {
	input := strings.Join([]string{
		`{"stationary_obstacles": []}`,
		``,
		`not json`,
		`{"moving_obstacles": [{"altitude_msl": 100.0, "latitude": 38.1, "longitude": -76.4, "sphere_radius": 50.0}]}`,
	}, "\n")

	out, stderr, err := runCommand(t, input, "--kind", "obstacles", "--stream")
	if err == nil {
		t.Fatal("Expected error for rejected line, got nil")
	}
	if !strings.Contains(err.Error(), "1 of 3 messages rejected") {
		t.Errorf("Expected rejection count, got %v", err)
	}
	if !strings.Contains(stderr, "rejected message") {
		t.Errorf("Expected rejected message log, got:\n%s", stderr)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 output lines, got %d:\n%s", len(lines), out)
	}
	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("Second line is not JSON: %v", err)
	}
	if spheres, _ := second["spheres"].([]any); len(spheres) != 1 {
		t.Errorf("Expected 1 sphere on second record, got %v", second["spheres"])
	}
}

func TestRunStreamAllAccepted(t *testing.T) {
	input := `{"message": "a", "message_timestamp": "2015-06-14 18:18:55.642000+00:00", "server_time": "2015-06-14 18:18:56.000000+00:00"}
{"message": "b", "message_timestamp": "2015-06-14 18:18:55.642000+00:00", "server_time": "2015-06-14 18:18:57.000000+00:00"}
`
	out, _, err := runCommand(t, input, "--kind", "server-info", "--stream")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n := strings.Count(strings.TrimSpace(out), "\n") + 1; n != 2 {
		t.Errorf("Expected 2 records, got %d", n)
	}
}

func TestRunCBORZstd(t *testing.T) {
	out, _, err := runCommand(t, obstaclesMessage, "--kind", "obstacles", "-f", "cbor", "--compress", "zstd")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	r, err := codec.NewReader(strings.NewReader(out), codec.CompressionZstd)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	var record map[string]any
	if err := codec.Unmarshal(raw, &record); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	cylinders, ok := record["cylinders"].([]any)
	if !ok || len(cylinders) != 2 {
		t.Fatalf("Expected 2 cylinders, got %v", record["cylinders"])
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "obstacles.json")
	output := filepath.Join(dir, "obstacles.out.json")
	metrics := filepath.Join(dir, "metrics.prom")

	if err := os.WriteFile(input, []byte(obstaclesMessage), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	_, _, err := runCommand(t, "", "--kind", "obstacles", "-i", input, "-o", output, "--metrics-file", metrics)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("Expected JSON output, got:\n%s", data)
	}

	exposition, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	want := `interop_conversions_total{kind="obstacles",outcome="ok"} 1`
	if !strings.Contains(string(exposition), want) {
		t.Errorf("Expected %q in metrics, got:\n%s", want, exposition)
	}
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interop.yaml")
	cfg := "frames:\n  mission: field\n  obstacles: field\noutput:\n  format: summary\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCommand(t, obstaclesMessage, "--kind", "obstacles", "-c", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"Obstacles (frame field", "cylinder 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in summary, got:\n%s", want, out)
		}
	}
}

func TestRunMissingInputFile(t *testing.T) {
	_, _, err := runCommand(t, "", "--kind", "mission", "-i", filepath.Join(t.TempDir(), "absent.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to open input") {
		t.Errorf("Expected open error, got %v", err)
	}
}
