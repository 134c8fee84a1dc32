package log

import (
	"os"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.Logger]

func init() { current.Store(zap.NewNop()) }

type Options struct {
	Development bool
	Level       string
	File        string
}

// Init builds the process logger. Output goes to stdout and, when set, to File.
func Init(o Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(o.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if o.Development {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, zapcore.AddSync(f))
	}

	l := zap.New(zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(sinks...), level), zap.AddCaller(), zap.AddCallerSkip(1))
	Set(l)
	return l, nil
}

// Set replaces the process logger. Tests use it to install an observer core.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

func L() *zap.Logger { return current.Load() }

func write(level zapcore.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	l := L()
	if ce := l.Check(level, action); ce != nil {
		zf := make([]zap.Field, 0, 8+len(fields))
		zf = append(zf, zap.String("action", action))
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
			if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
				zf = append(zf, zap.String("user_id", uid))
			}
		}
		if err != nil {
			zf = append(zf, zap.Error(err))
		}
		if len(fields) > 0 {
			zf = append(zf, zap.Any("fields", fields))
		}
		ce.Write(zf...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zap.InfoLevel, c, action, nil, fields)
}

// Audit records a state change made by an authenticated actor.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zap.InfoLevel, c, action, nil, withKind(fields, "audit"))
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zap.WarnLevel, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zap.ErrorLevel, c, action, err, fields)
}

func withKind(fields map[string]any, kind string) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["kind"] = kind
	return out
}
