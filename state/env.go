// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rvcss/config"
	"rvcss/engine"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by compile and prerender subcommands
	Overwrite bool

	engine        *engine.Engine
	start         time.Time
	restoreStdLog func()
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

// Engine returns style engine built from current configuration. It is
// created on first call, configuration must be loaded by then.
func (e *LocalEnv) Engine() *engine.Engine {
	if e.engine != nil {
		return e.engine
	}
	if e.Cfg == nil {
		// this should never happen
		panic("engine requested before configuration is loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	e.engine = engine.New(&e.Cfg.Styles, log)
	return e.engine
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
	}
}
