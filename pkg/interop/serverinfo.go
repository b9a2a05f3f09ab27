package interop

import (
	"fmt"

	"github.com/unklstewy/suas-interop/pkg/timestamp"
)

// ServerInfo converts a server status message. The message text and both
// timestamps are required.
func (t *Translator) ServerInfo(data Dict) (info *ServerInfo, err error) {
	start := t.clock.Now()
	defer func() { t.observe(KindServerInfo, start, err) }()

	message, err := requireString(data, "", "message")
	if err != nil {
		return nil, err
	}
	messageStamp, err := requireTimestamp(data, "message_timestamp")
	if err != nil {
		return nil, err
	}
	serverTime, err := requireTimestamp(data, "server_time")
	if err != nil {
		return nil, err
	}

	return &ServerInfo{
		Message:          message,
		MessageTimestamp: messageStamp,
		ServerTime:       serverTime,
	}, nil
}

func requireTimestamp(d Dict, key string) (timestamp.TimePoint, error) {
	text, err := requireString(d, "", key)
	if err != nil {
		return timestamp.TimePoint{}, err
	}
	tp, err := timestamp.Parse(text)
	if err != nil {
		return timestamp.TimePoint{}, fmt.Errorf("%s: %w", key, err)
	}
	return tp, nil
}
