package logger

import (
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"runtime"

	"github.com/fatih/color"
	"github.com/xy-planning-network/dbenum"
)

const knownFrames = 2

var modulePathRegex = regexp.MustCompile("dbenum.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// NewLogLevel parses val, e.g., "WARN", into a LogLevel.
func NewLogLevel(val string) LogLevel {
	switch val {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

// EnumLogger implements Logger using log.
type EnumLogger struct {
	skip     int
	env      string
	l        *log.Logger
	ll       LogLevel
	colorful bool
}

// New constructs an EnumLogger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is read from ENVIRONMENT, falling back to DEVELOPMENT.
// The default log level is read from LOG_LEVEL, falling back to WARN in PRODUCTION and INFO elsewhere.
// Output is colorized only in DEVELOPMENT.
//
// When SENTRY_DSN is set, New returns a SentryLogger wrapping the EnumLogger.
func New(opts ...LoggerOptFn) Logger {
	env := dbenum.EnvVarOrEnv("ENVIRONMENT", dbenum.Development)
	l := &EnumLogger{
		env:      env.String(),
		l:        log.New(os.Stdout, "", log.LstdFlags),
		ll:       LogLevelInfo,
		colorful: env.IsDevelopment(),
	}

	if env.IsProduction() {
		l.ll = LogLevelWarn
	}

	if ll := NewLogLevel(os.Getenv("LOG_LEVEL")); ll != LogLevelUnk {
		l.ll = ll
	}

	for _, opt := range opts {
		opt(l)
	}

	if sentryDsn := os.Getenv("SENTRY_DSN"); sentryDsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, sentryDsn)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *EnumLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *EnumLogger) Debug(msg string, ctx *LogContext) {
	if l.ll > LogLevelDebug {
		return
	}

	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *EnumLogger) Error(msg string, ctx *LogContext) {
	if l.ll > LogLevelError {
		return
	}

	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
func (l *EnumLogger) Fatal(msg string, ctx *LogContext) {
	if l.ll > LogLevelFatal {
		return
	}

	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *EnumLogger) Info(msg string, ctx *LogContext) {
	if l.ll > LogLevelInfo {
		return
	}

	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *EnumLogger) Warn(msg string, ctx *LogContext) {
	if l.ll > LogLevelWarn {
		return
	}

	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the EnumLogger.
func (l *EnumLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *EnumLogger) Skip() int { return l.skip }

// log executes printing the log message,
// including any context if available.
func (l *EnumLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	var toPrint string
	if ctx != nil && ctx.Caller != "" {
		toPrint = ctx.Caller
	} else {
		// NOTE: skip the frames of the EnumLogger itself
		// and however many the EnumLogger is configured with
		_, file, line, _ := runtime.Caller(knownFrames + l.skip)
		toPrint = callSite(file, line)
	}

	if !l.colorful {
		colorizer = fmt.Sprintf
	}

	msg = colorizer("%s %s '%s'", level, toPrint, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// callSite trims file down to something readable:
//
//	/home/dev/dbenum/form/guesser.go => dbenum/form/guesser.go
//	/home/dev/my-project/main.go => my-project/main.go
func callSite(file string, line int) string {
	if match := modulePathRegex.FindString(file); match != "" {
		return fmt.Sprintf(callerTmpl, match, line)
	}

	dir, base := path.Split(file)
	return fmt.Sprintf(callerTmpl, path.Base(dir)+"/"+base, line)
}
