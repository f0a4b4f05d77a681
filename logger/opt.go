package logger

import "log"

// A LoggerOptFn is a functional option configuring an EnumLogger when constructing a new one.
type LoggerOptFn func(*EnumLogger)

// WithColor toggles colorizing log messages.
func WithColor(on bool) LoggerOptFn {
	return func(l *EnumLogger) {
		l.colorful = on
	}
}

// WithEnv sets the environment EnumLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *EnumLogger) {
		l.env = env
	}
}

// WithLevel sets the log level EnumLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *EnumLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger EnumLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *EnumLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *EnumLogger) {
		l.skip = skip
	}
}
