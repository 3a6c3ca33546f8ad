package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/wirebuf"
)

func TestLevelsAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{
		Level: stdslog.LevelInfo,
		ReplaceAttr: func(_ []string, a stdslog.Attr) stdslog.Attr {
			if a.Key == stdslog.TimeKey {
				return stdslog.Attr{}
			}
			return a
		},
	})
	l := Logger{L: stdslog.New(h)}

	l.Debug("hidden", wirebuf.Fields{"k": 1})
	l.Warn("release rejected", wirebuf.Fields{"pins": 1, "freezes": 2})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry leaked: %s", out)
	}
	want := "level=WARN msg=\"release rejected\" freezes=2 pins=1\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}
