package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"selkit/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare returns our standard logger - configured zap logger for use by the program.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	consoleCoreHP, consoleCoreLP := conf.consoleCores()

	fileCore, err := conf.fileCore()
	if err != nil {
		return nil, err
	}

	core := zap.New(zapcore.NewTee(consoleCoreHP, consoleCoreLP, fileCore), zap.AddCaller())
	return core.Named(misc.GetAppName()), nil
}

// consoleCores splits console output: errors go to stderr, everything else
// allowed by level goes to stdout.
func (conf *LoggingConfig) consoleCores() (hp, lp zapcore.Core) {
	var minLevel zapcore.Level
	switch conf.ConsoleLogger.Level {
	case "normal":
		minLevel = zapcore.InfoLevel
	case "debug":
		minLevel = zapcore.DebugLevel
	default:
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}

	lp = zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return minLevel <= lvl && lvl < zapcore.ErrorLevel
		}))
	hp = zapcore.NewCore(newEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return hp, lp
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func (conf *LoggingConfig) fileCore() (zapcore.Core, error) {
	var level zap.AtomicLevel
	switch conf.FileLogger.Level {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "normal":
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		return zapcore.NewNopCore(), nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if conf.FileLogger.Mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(conf.FileLogger.Destination, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), level), nil
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			// message only, no errorVerbose field
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
