/* Copyright (c) 2017 Jason Ish
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions
 * are met:
 *
 * 1. Redistributions of source code must retain the above copyright
 *    notice, this list of conditions and the following disclaimer.
 * 2. Redistributions in binary form must reproduce the above copyright
 *    notice, this list of conditions and the following disclaimer in the
 *    documentation and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED ``AS IS'' AND ANY EXPRESS OR IMPLIED
 * WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
 * DISCLAIMED. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY DIRECT,
 * INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES
 * (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
 * SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION)
 * HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT,
 * STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING
 * IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARNING
	INFO
	DEBUG
)

var levels = map[LogLevel]logrus.Level{
	ERROR:   logrus.ErrorLevel,
	WARNING: logrus.WarnLevel,
	INFO:    logrus.InfoLevel,
	DEBUG:   logrus.DebugLevel,
}

var logger = newLogger()

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Level = logrus.InfoLevel
	logger.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   !isatty.IsTerminal(os.Stderr.Fd()),
	}
	return logger
}

func SetLevel(level LogLevel) {
	if l, ok := levels[level]; ok {
		logger.SetLevel(l)
	}
}

// ParseLevel converts a level name, as found in configuration, to a
// LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch name {
	case "error":
		return ERROR, nil
	case "warning", "warn":
		return WARNING, nil
	case "info":
		return INFO, nil
	case "debug":
		return DEBUG, nil
	}
	return INFO, fmt.Errorf("unknown log level: %s", name)
}

func doLog(calldepth int, level LogLevel, format string, v ...interface{}) {
	l := levels[level]
	if !logger.IsLevelEnabled(l) {
		return
	}

	_, filename, line, _ := runtime.Caller(calldepth)

	logger.WithField("caller",
		fmt.Sprintf("%s:%d", filepath.Base(filename), line)).
		Log(l, fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	doLog(2, ERROR, format, v...)
}

func Warning(format string, v ...interface{}) {
	doLog(2, WARNING, format, v...)
}

func Info(format string, v ...interface{}) {
	doLog(2, INFO, format, v...)
}

func Debug(format string, v ...interface{}) {
	doLog(2, DEBUG, format, v...)
}

// Promote to info...
func Println(v ...interface{}) {
	doLog(2, INFO, "%s", fmt.Sprint(v...))
}

// To be compatible with standard logging, promote to info.
func Printf(format string, v ...interface{}) {
	doLog(2, INFO, format, v...)
}

func Fatal(v ...interface{}) {
	doLog(2, ERROR, "%s", fmt.Sprint(v...))
	os.Exit(1)
}
