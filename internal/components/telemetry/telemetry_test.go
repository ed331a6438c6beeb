package telemetry

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recorder := NewRecorder()
	scoped := NewScopedAPI("sundhed", NewScopedAPI("cli", recorder))

	scoped.ReportBroken("session.search", errors.New("boom"))
	scoped.ReportWarning("session.bootstrap-title")
	scoped.ReportDebug("session established", "https://www.sundhed.dk")
	scoped.ReportCount("resty.sent", 3)

	broken := recorder.Broken()
	require.Len(t, broken, 1)
	require.Equal(t, "cli: sundhed: session.search", broken[0].Id)
	require.EqualError(t, broken[0].Params[0].(error), "boom")

	require.Equal(t, "cli: sundhed: session.bootstrap-title", recorder.Warnings()[0].Id)
	require.Equal(t, "cli: sundhed: session established", recorder.Debug()[0].Id)

	n, ok := recorder.Count("cli: sundhed: resty.sent")
	require.True(t, ok)
	require.Equal(t, int64(3), n)
}

func TestSlogAPI(t *testing.T) {
	var out bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(previous)

	SlogAPI{}.ReportBroken("session.search", errors.New("search: unexpected http status 500"), 500)

	logged := out.String()
	require.Contains(t, logged, "level=ERROR")
	require.Contains(t, logged, "id=session.search")
	require.Contains(t, logged, `params.0="search: unexpected http status 500"`)
	require.Contains(t, logged, "params.1=500")
}
