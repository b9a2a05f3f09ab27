package interop

import "time"

// DecodeMission parses raw JSON and converts it with Mission.
func (t *Translator) DecodeMission(raw []byte, frame string) (*Mission, error) {
	d, err := DecodeDict(raw)
	if err != nil {
		return nil, err
	}
	return t.Mission(d, frame)
}

// DecodeObstacles parses raw JSON and converts it with Obstacles.
func (t *Translator) DecodeObstacles(raw []byte, frame string, lifetime time.Duration) (*ObstacleArray, error) {
	d, err := DecodeDict(raw)
	if err != nil {
		return nil, err
	}
	return t.Obstacles(d, frame, lifetime)
}

// DecodeObject parses raw JSON and converts it with ObjectFromDict.
func (t *Translator) DecodeObject(raw []byte) (Object, error) {
	d, err := DecodeDict(raw)
	if err != nil {
		return Object{}, err
	}
	return t.ObjectFromDict(d)
}

// DecodeServerInfo parses raw JSON and converts it with ServerInfo.
func (t *Translator) DecodeServerInfo(raw []byte) (*ServerInfo, error) {
	d, err := DecodeDict(raw)
	if err != nil {
		return nil, err
	}
	return t.ServerInfo(d)
}
