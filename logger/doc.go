/*
Package logger provides leveled logging for applications and tools built on dbenum
by defining the required behavior in [Logger]
and providing an implementation of it with [EnumLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
[EnumLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*EnumLogger.Warn], [*EnumLogger.Error], and [*EnumLogger.Fatal] produce messages.

Log messages emitted by [EnumLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2024/04/28 15:55:21 [WARN] dbenum/form/guesser.go:88 'no enum registered for field' log_context: {"data":{"field":"Status"},"enum":"Status"}

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] wraps the [EnumLogger] in a [SentryLogger],
which forwards the error in a [LogContext] to Sentry for WARN, ERROR and FATAL messages.
*/
package logger
