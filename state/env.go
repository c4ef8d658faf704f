// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"selkit/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	// used by render subcommand
	Overwrite bool
	NoHeader  bool

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Logger returns program logger or no-op logger if it is not configured yet.
func (e *LocalEnv) Logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
