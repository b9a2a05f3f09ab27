package interop

import (
	"errors"
	"testing"

	"github.com/unklstewy/suas-interop/pkg/timestamp"
)

func TestServerInfo(t *testing.T) {
	tr := newTestTranslator()

	info, err := tr.DecodeServerInfo([]byte(`{
		"message": "Fly Safe",
		"message_timestamp": "2015-06-14 18:18:55.642000+00:00",
		"server_time": "2015-08-14 03:37:13.331402"
	}`))
	if err != nil {
		t.Fatalf("ServerInfo failed: %v", err)
	}

	if info.Message != "Fly Safe" {
		t.Errorf("Expected message %q, got %q", "Fly Safe", info.Message)
	}
	wantMsg := timestamp.TimePoint{Secs: 1434305935, Nsecs: 642000000}
	if info.MessageTimestamp != wantMsg {
		t.Errorf("Expected message timestamp %+v, got %+v", wantMsg, info.MessageTimestamp)
	}
	wantServer := timestamp.TimePoint{Secs: 1439523433, Nsecs: 331402000}
	if info.ServerTime != wantServer {
		t.Errorf("Expected server time %+v, got %+v", wantServer, info.ServerTime)
	}
}

func TestServerInfoErrors(t *testing.T) {
	tr := newTestTranslator()

	valid := func() Dict {
		return Dict{
			"message":           "hello",
			"message_timestamp": "2015-06-14T18:18:55Z",
			"server_time":       "2015-06-14T18:18:56Z",
		}
	}

	t.Run("Missing keys", func(t *testing.T) {
		for _, key := range []string{"message", "message_timestamp", "server_time"} {
			d := valid()
			delete(d, key)
			_, err := tr.ServerInfo(d)
			mfe, ok := IsMissingField(err)
			if !ok {
				t.Fatalf("%s: expected MissingFieldError, got %v", key, err)
			}
			if mfe.Path != key {
				t.Errorf("Expected path %q, got %q", key, mfe.Path)
			}
		}
	})

	t.Run("Malformed timestamp", func(t *testing.T) {
		d := valid()
		d["server_time"] = "yesterday"
		_, err := tr.ServerInfo(d)
		var pe *timestamp.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Expected ParseError, got %v", err)
		}
		if pe.Text != "yesterday" {
			t.Errorf("Expected text %q, got %q", "yesterday", pe.Text)
		}
	})

	t.Run("Message not a string", func(t *testing.T) {
		d := valid()
		d["message"] = 42.0
		_, err := tr.ServerInfo(d)
		if _, ok := IsFieldType(err); !ok {
			t.Fatalf("Expected FieldTypeError, got %v", err)
		}
	})
}
