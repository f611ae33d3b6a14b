// Package log writes the structured action log: one JSON object per line
// with ts, level, action, optional request metadata, err and fields.
package log

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	current atomic.Pointer[zap.Logger]
	session atomic.Value // string
)

func init() {
	current.Store(zap.NewNop())
	session.Store("")
}

// Init sends log lines to w and starts a new session id.
// It returns the session id stamped on every line.
func Init(w io.Writer) string {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "action",
		EncodeTime:     func(t time.Time, pe zapcore.PrimitiveArrayEncoder) { pe.AppendString(t.UTC().Format(time.RFC3339)) },
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	})
	sid := uuid.NewString()
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)
	current.Store(zap.New(core).With(zap.String("session", sid)))
	session.Store(sid)
	return sid
}

// Discard drops every line. This is the state before Init.
func Discard() {
	current.Store(zap.NewNop())
	session.Store("")
}

// Sync flushes buffered output.
func Sync() { _ = current.Load().Sync() }

// Session is the id set by the last Init.
func Session() string { return session.Load().(string) }

func write(level zapcore.Level, c *fiber.Ctx, action string, err error, fields map[string]any, extra ...zap.Field) {
	zf := extra
	if c != nil {
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
	}
	if err != nil {
		zf = append(zf, zap.String("err", err.Error()))
	}
	if len(fields) > 0 {
		zf = append(zf, zap.Any("fields", fields))
	}
	if ce := current.Load().Check(level, action); ce != nil {
		ce.Write(zf...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, c, action, nil, fields, zap.String("kind", "audit"))
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, c, action, err, fields)
}
