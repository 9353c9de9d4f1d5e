package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "ok", Status(nil))
	assert.Equal(t, "fail", Status(errors.New("boom")))
}

func TestRoundMS(t *testing.T) {
	assert.Equal(t, time.Duration(0), RoundMS(-time.Second))
	assert.Equal(t, 2*time.Millisecond, RoundMS(1900*time.Microsecond))
}

func TestBuildRID(t *testing.T) {
	assert.Equal(t, "42:7:9", BuildRID(42, 7, 9))
}

func TestRIDRoundTrip(t *testing.T) {
	ctx := WithRID(context.Background(), "rid-123")
	assert.Equal(t, "rid-123", RIDFrom(ctx))
	assert.Empty(t, RIDFrom(context.Background()))
}

func TestUpdateMetaRoundTrip(t *testing.T) {
	ctx := WithUpdateMeta(context.Background(), 7, 9)
	assert.Equal(t, int64(7), UserIDFrom(ctx))
	assert.Equal(t, int64(9), ChatIDFrom(ctx))
}

func TestWithAttachesRID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithRID(context.Background(), "42:7:9")
	With(ctx, base).Info("dialog started")
	assert.Contains(t, buf.String(), "rid=42:7:9")

	buf.Reset()
	With(context.Background(), base).Info("dialog started")
	assert.NotContains(t, buf.String(), "rid=")
}

func TestSanitizeLimit(t *testing.T) {
	assert.Equal(t, "abc", SanitizeLimit("a\x00b\x1bc", 16))
	assert.Equal(t, "тел", SanitizeLimit("телефон", 3), "limit counts runes, not bytes")
	assert.Equal(t, "a\nb\tc", SanitizeLimit("a\nb\tc", 16), "tab and newline survive")
	assert.Empty(t, SanitizeLimit("anything", 0))
}
