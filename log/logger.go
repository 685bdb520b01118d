package log

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

func NewLevel(l string) (Level, error) {
	l = strings.ToLower(strings.TrimSpace(l))
	for level, name := range levelNames {
		if name == l {
			return level, nil
		}
	}
	return LevelTrace, errors.Errorf("invalid log level %q", l)
}

func (l Level) String() string {
	name, ok := levelNames[l]
	if !ok {
		panic("invalid level")
	}
	return name
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelTrace:
		return logrus.TraceLevel
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.FatalLevel
	}
}

var currLevel = LevelInfo

var backend = logrus.New()

var rootLogger = &logrusLogger{
	backend: logrus.NewEntry(backend),
}

type Logger interface {
	Trace(string, ...interface{})
	Debug(string, ...interface{})
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Fatal(string, ...interface{})
	Sub(...interface{}) Logger
}

func SetLevel(level Level) {
	currLevel = level
	backend.SetLevel(level.logrus())
}

// SetOutput redirects all log output. The CLI sends logs to stderr so that
// decoded records on stdout stay machine readable.
func SetOutput(w io.Writer) {
	backend.SetOutput(w)
}

func SetJSON(enabled bool) {
	if enabled {
		backend.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	backend.SetFormatter(&logrus.TextFormatter{})
}

func WithModule(name string) Logger {
	return rootLogger.Sub("module", name)
}

func init() {
	// set log level to trace by default in test
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLevel(LevelTrace)
	}
}
