package utils

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var once sync.Once

var log zerolog.Logger

// GetLogger returns the process wide logger. Shell output never goes through
// it, so the default level is warn.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var level int = 2
		logLevel, ok := os.LookupEnv("HADOOPSH_LOG_LEVEL")
		if ok {
			val, err := strconv.Atoi(logLevel)
			if err == nil {
				level = val
			}
		}

		var output io.Writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}

		if dir, err := ConfigDir(); err == nil && os.MkdirAll(dir, 0o755) == nil {
			fileLogger := &lumberjack.Logger{
				Filename:   filepath.Join(dir, "hadoopsh.log"),
				MaxSize:    5, // megabytes
				MaxBackups: 10,
				MaxAge:     14,
				Compress:   true,
			}
			output = zerolog.MultiLevelWriter(output, fileLogger)
		}

		log = zerolog.New(output).
			Level(zerolog.Level(level)).
			With().
			Timestamp().
			Logger()
	})

	return log
}

// SetLogLevel applies a configured level name such as "debug". The
// HADOOPSH_LOG_LEVEL environment variable takes precedence.
func SetLogLevel(name string) error {
	if _, ok := os.LookupEnv("HADOOPSH_LOG_LEVEL"); ok || name == "" {
		return nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	l := GetLogger()
	log = l.Level(level)
	return nil
}
