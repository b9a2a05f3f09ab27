package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/unklstewy/suas-interop/internal/codec"
	"github.com/unklstewy/suas-interop/internal/observability"
	"github.com/unklstewy/suas-interop/pkg/config"
	"github.com/unklstewy/suas-interop/pkg/imagery"
	"github.com/unklstewy/suas-interop/pkg/logging"
)

// interop-convert reads interop server messages (or vehicle samples) and
// writes the converted records as JSON, CBOR or a terminal summary.
func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the command line. Empty strings defer to the config file.
type options struct {
	kind        string
	input       string
	output      string
	format      string
	compress    string
	frame       string
	configPath  string
	metricsFile string
	logLevel    string
	stream      bool
	planar      bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("interop-convert", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.kind, "kind", "", "message kind: "+strings.Join(kinds, ", "))
	flagSet.StringVarP(&opts.input, "input", "i", "-", "input file (- for stdin)")
	flagSet.StringVarP(&opts.output, "output", "o", "-", "output file (- for stdout)")
	flagSet.StringVarP(&opts.format, "format", "f", "", "output format: json, cbor or summary (default from config)")
	flagSet.StringVar(&opts.compress, "compress", "", "output compression: none or zstd (default from config)")
	flagSet.BoolVar(&opts.stream, "stream", false, "treat input as newline-delimited JSON, one message per line")
	flagSet.StringVar(&opts.frame, "frame", "", "reference frame for mission and obstacle records (default from config)")
	flagSet.BoolVar(&opts.planar, "planar", false, "attach UTM projections to obstacle centers")
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "path to YAML or JSON configuration file")
	flagSet.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus text metrics to this file on exit")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if !validKind(opts.kind) {
		return fmt.Errorf("--kind must be one of %s", strings.Join(kinds, ", "))
	}
	if opts.stream && opts.kind == kindImage {
		return fmt.Errorf("--stream is not supported for image input")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	opts.applyTo(cfg, flagSet)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewWithWriter(stderr, logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}).With(logging.String("kind", opts.kind))

	var collector *observability.ConversionCollector
	if cfg.Metrics.MetricsEnabled() {
		collector, err = observability.NewConversionCollector(prometheus.NewRegistry())
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	conv := newConverter(cfg, logger, collector)

	in, closeIn, err := openInput(opts.input, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(opts.output, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	compression, err := codec.ParseCompression(cfg.Output.Compression)
	if err != nil {
		return err
	}
	framed, err := codec.NewWriter(out, compression)
	if err != nil {
		return err
	}

	sink, err := newSink(cfg.Output.Format, framed, opts.stream)
	if err != nil {
		return err
	}

	var runErr error
	if opts.stream {
		runErr = runStream(in, opts.kind, conv, sink, logger)
	} else {
		runErr = runSingle(in, opts.kind, conv, sink)
	}

	if err := framed.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to flush output: %w", err)
	}

	if collector != nil && cfg.Metrics.File != "" {
		if err := collector.WriteFile(cfg.Metrics.File); err != nil {
			logger.Warn("failed to write metrics", logging.Err(err))
		} else {
			logger.Debug("metrics written", logging.String("path", cfg.Metrics.File))
		}
	}

	return runErr
}

// applyTo overrides configuration values with flags the user set.
func (o *options) applyTo(cfg *config.Config, flagSet *pflag.FlagSet) {
	if flagSet.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flagSet.Changed("compress") {
		cfg.Output.Compression = o.compress
	}
	if flagSet.Changed("frame") {
		cfg.Frames.Mission = o.frame
		cfg.Frames.Obstacles = o.frame
	}
	if flagSet.Changed("planar") {
		cfg.Obstacles.ProjectPlanar = o.planar
	}
	if flagSet.Changed("metrics-file") {
		cfg.Metrics.File = o.metricsFile
	}
	if flagSet.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
}

func runSingle(in io.Reader, kind string, conv *converter, sink recordSink) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	record, err := conv.convert(kind, raw)
	if err != nil {
		return err
	}
	return sink.write(record)
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `interop-convert converts interop server messages into vehicle records.

Input is a single JSON message, or one message per line with --stream.
Distances in the input are feet and times are ISO 8601; records carry
meters and epoch seconds/nanoseconds.

Kinds:
  mission        mission message -> fly zones, search grid, waypoints, points
  obstacles      obstacle report -> cylinders and spheres
  object         ODLC target dictionary -> typed target record
  object-encode  typed target record -> ODLC target dictionary
  server-info    server status message -> text and timestamps
  telemetry      {"fix": {...}, "altitude_msl": m, "orientation": {x,y,z,w}}
                 -> outbound telemetry dictionary
  image          PNG, JPEG or GIF bytes -> lossless PNG (%s)

Usage:
  interop-convert --kind KIND [flags]

Examples:
  # Convert a mission with the default frames
  interop-convert --kind mission -i mission.json

  # Summarize a live obstacle feed
  curl -sN $SERVER/api/obstacles | interop-convert --kind obstacles --stream -f summary

  # CBOR records framed with zstd
  interop-convert --kind obstacles -f cbor --compress zstd -o obstacles.cbor.zst < obstacles.json

Flags:
`, imagery.FormatPNG)
	fmt.Fprint(w, flagSet.FlagUsages())
}
