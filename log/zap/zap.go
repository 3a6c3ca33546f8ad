// Package zap adapts go.uber.org/zap to wirebuf.Logger.
package zap

import (
	"maps"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/wirebuf"
)

var _ wirebuf.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "wirebuf" so pool and store events are easy to filter.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("wirebuf")} }

func (z ZapLogger) Debug(msg string, f wirebuf.Fields) { z.log(zap.DebugLevel, msg, f) }
func (z ZapLogger) Info(msg string, f wirebuf.Fields)  { z.log(zap.InfoLevel, msg, f) }
func (z ZapLogger) Warn(msg string, f wirebuf.Fields)  { z.log(zap.WarnLevel, msg, f) }
func (z ZapLogger) Error(msg string, f wirebuf.Fields) { z.log(zap.ErrorLevel, msg, f) }

// log skips building fields when the level is disabled.
func (z ZapLogger) log(lvl zapcore.Level, msg string, f wirebuf.Fields) {
	if ce := z.L.Check(lvl, msg); ce != nil {
		ce.Write(zf(f)...)
	}
}

func zf(f wirebuf.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
