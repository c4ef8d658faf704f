package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"selkit/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if EnvFromContext(ctx) != env {
		t.Error("EnvFromContext() must return the same environment")
	}
}

func TestEnvFromContext_PanicOnMissingEnv(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_Logger(t *testing.T) {
	env := &LocalEnv{}
	if env.Logger() == nil {
		t.Fatal("Logger() returned nil without configured log")
	}

	log := zaptest.NewLogger(t)
	env.Log = log
	if env.Logger() != log {
		t.Error("Logger() must return configured log")
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Cfg: &config.Config{Version: 1},
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := 0; i < 3; i++ {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
		if env.restoreStdLog != nil {
			t.Errorf("Iteration %d: restoreStdLog not cleared", i)
		}
	}
}

func TestLocalEnv_RedirectWithoutLogger(t *testing.T) {
	env := &LocalEnv{}

	// Should not panic
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	env.RestoreStdLog()
}
