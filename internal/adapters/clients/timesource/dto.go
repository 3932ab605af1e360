package timesource

import (
	"errors"
	"fmt"
	"time"
)

var errNoInstant = errors.New("response carries neither utc_datetime nor unixtime")

// timeResponseDTO is the body of the remote time endpoint. Only the fields
// needed to recover the instant are decoded.
type timeResponseDTO struct {
	UTCDatetime string `json:"utc_datetime"`
	UnixTime    int64  `json:"unixtime"`
}

// toInstant prefers the RFC 3339 timestamp, which keeps sub-second precision,
// and falls back to the Unix seconds field.
func toInstant(dto timeResponseDTO) (time.Time, error) {
	if dto.UTCDatetime != "" {
		t, err := time.Parse(time.RFC3339Nano, dto.UTCDatetime)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing utc_datetime %q: %w", dto.UTCDatetime, err)
		}
		return t.UTC(), nil
	}
	if dto.UnixTime > 0 {
		return time.Unix(dto.UnixTime, 0).UTC(), nil
	}
	return time.Time{}, errNoInstant
}
