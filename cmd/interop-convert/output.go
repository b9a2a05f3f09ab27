package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/unklstewy/suas-interop/internal/codec"
	"github.com/unklstewy/suas-interop/pkg/logging"
)

// recordSink writes converted records in one output format.
type recordSink interface {
	write(record any) error
}

func newSink(format string, w io.Writer, stream bool) (recordSink, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		if !stream {
			enc.SetIndent("", "  ")
		}
		return jsonSink{enc: enc}, nil
	case "cbor":
		return cborSink{enc: codec.NewEncoder(w)}, nil
	case "summary":
		return summarySink{w: w}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// jsonSink writes one JSON document per record; in stream mode the
// output is newline-delimited JSON.
type jsonSink struct {
	enc *json.Encoder
}

func (s jsonSink) write(record any) error {
	return s.enc.Encode(record)
}

// cborSink writes a CBOR sequence, one deterministic item per record.
type cborSink struct {
	enc *codec.Encoder
}

func (s cborSink) write(record any) error {
	return s.enc.Encode(record)
}

type summarySink struct {
	w io.Writer
}

func (s summarySink) write(record any) error {
	_, err := fmt.Fprintln(s.w, renderSummary(record))
	return err
}

// maxLineBytes bounds a single NDJSON message; mission messages with large
// search grids stay well below it.
const maxLineBytes = 16 << 20

// runStream converts newline-delimited messages. A rejected line is logged
// and skipped; the stream fails at the end if any line was rejected.
func runStream(in io.Reader, kind string, conv *converter, sink recordSink, logger logging.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	// A misbehaving feed can reject every line; keep the log readable
	rejectLog := rate.Sometimes{First: 5, Interval: 10 * time.Second}

	var line, records, rejected int
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		records++

		record, err := conv.convert(kind, raw)
		if err != nil {
			rejected++
			rejectLog.Do(func() {
				logger.Warn("rejected message",
					logging.Int("line", line),
					logging.Int("rejected", rejected),
					logging.Err(err))
			})
			continue
		}
		if err := sink.write(record); err != nil {
			return fmt.Errorf("failed to write record from line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	logger.Info("stream complete",
		logging.Int("records", records),
		logging.Int("rejected", rejected))

	if rejected > 0 {
		return fmt.Errorf("%d of %d messages rejected", rejected, records)
	}
	return nil
}
