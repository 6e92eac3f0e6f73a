// Copyright 2025 Sonic Labs
// This file is part of Alea Stochastic Analysis Infrastructure for Sonic
//
// Alea is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Alea is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Alea. If not, see <http://www.gnu.org/licenses/>.

package logger

import (
	"os"
	"time"

	"github.com/op/go-logging"
)

// defaultLogFormat is used when creating new loggers.
const defaultLogFormat = "%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset}: %{message}"

// Logger is the logging interface handed to all components.
//
//go:generate mockgen -source logger.go -destination logger_mock.go -package logger
type Logger interface {
	// Critical logs a message using CRITICAL as log level.
	Critical(args ...interface{})
	// Criticalf logs a formatted message using CRITICAL as log level.
	Criticalf(format string, args ...interface{})
	// Error logs a message using ERROR as log level.
	Error(args ...interface{})
	// Errorf logs a formatted message using ERROR as log level.
	Errorf(format string, args ...interface{})
	// Warning logs a message using WARNING as log level.
	Warning(args ...interface{})
	// Warningf logs a formatted message using WARNING as log level.
	Warningf(format string, args ...interface{})
	// Notice logs a message using NOTICE as log level.
	Notice(args ...interface{})
	// Noticef logs a formatted message using NOTICE as log level.
	Noticef(format string, args ...interface{})
	// Info logs a message using INFO as log level.
	Info(args ...interface{})
	// Infof logs a formatted message using INFO as log level.
	Infof(format string, args ...interface{})
	// Debug logs a message using DEBUG as log level.
	Debug(args ...interface{})
	// Debugf logs a formatted message using DEBUG as log level.
	Debugf(format string, args ...interface{})
	// Fatal is equivalent to Critical followed by a call to os.Exit(1).
	Fatal(args ...interface{})
	// Fatalf is equivalent to Criticalf followed by a call to os.Exit(1).
	Fatalf(format string, args ...interface{})
	// IsEnabledFor reports whether messages at the given level get emitted.
	IsEnabledFor(level logging.Level) bool
}

// NewLogger creates a new logger for the given module. An unknown
// level string falls back to INFO.
func NewLogger(level string, module string) Logger {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	fm := logging.MustStringFormatter(defaultLogFormat)
	fmtBackend := logging.NewBackendFormatter(backend, fm)

	lvlBackend := logging.AddModuleLevel(fmtBackend)
	lvlBackend.SetLevel(lvl, "")

	logging.SetBackend(lvlBackend)
	return logging.MustGetLogger(module)
}

// ParseTime decomposes an elapsed duration into hours, minutes and seconds
// for progress reports.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	seconds := uint32(elapsed.Round(time.Second).Seconds())
	hours := seconds / 3600
	seconds -= hours * 3600
	minutes := seconds / 60
	seconds -= minutes * 60
	return hours, minutes, seconds
}
