package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2025-06-01T14:30:00Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeRFC3339Nano(t *testing.T) {
	got, ok := ParseTime("2025-06-01T14:30:00.123456789Z")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Nanosecond() != 123456789 {
		t.Fatalf("nanoseconds lost: %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeGarbage(t *testing.T) {
	if _, ok := ParseTime("not-a-timestamp"); ok {
		t.Fatalf("garbage must not parse")
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	if got := ParseTimeDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default for empty input")
	}
	if got := ParseTimeDefault("garbage", def); !got.Equal(def) {
		t.Fatalf("expected default for unparseable input")
	}
}
