// =================================================================================
//
//			fox-mixer - https://www.foxhollow.cc/projects/fox-mixer/
//
//		 Fox Mixer is a stereo summing mixer for the JACK audio server with
//	  per-channel fader, balance, mute, solo, mono, phase and peak metering
//
//		 Copyright (c) 2025 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package shared

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

var stockStderr *os.File
var stockStdout *os.File
var logSinks = make([]LogHandler, 0)

type LogHandler func(LogLevel, string)
type LogLevel int8

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
)

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "Error"
	case WARN:
		return "Warning"
	case INFO:
		return "Info"
	case DEBUG:
		return "Debug"
	}
	return "unknown"
}

//------------------------------------------------------------------
// public functions
//------------------------------------------------------------------

// HijackLogging redirects process stdout through the log sinks so stray
// prints (the JACK client library writes to stdout) don't corrupt the TUI.
func HijackLogging() {
	stockStdout = os.Stdout
	stockStderr = os.Stderr

	stdout_r, stdout_w, err := os.Pipe()
	if err != nil {
		fmt.Fprintln(stockStderr, err)
	}
	go logProcessor(stdout_r, INFO)

	os.Stdout = stdout_w
}

func EnableStderrLogging() {
	AddLogSink(stderrLogger)
}

func EnableSlogLogging() {
	AddLogSink(slogLogger)
}

func AddLogSink(fn LogHandler) {
	logSinks = append(logSinks, fn)
}

//------------------------------------------------------------------
// private functions
//------------------------------------------------------------------

func stderrLogger(level LogLevel, message string) {
	dtm := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(stockStderr, "[%s] [%s] %s\n", dtm, level.String(), message)
}

func slogLogger(level LogLevel, message string) {
	switch level {
	case ERROR:
		slog.Error(message)
	case WARN:
		slog.Warn(message)
	case DEBUG:
		slog.Debug(message)
	default:
		slog.Info(message)
	}
}

func logProcessor(pipe *os.File, level LogLevel) {
	buffer := make([]byte, 1024)

	for {
		n, err := pipe.Read(buffer)
		if err != nil {
			return
		}

		message := strings.TrimSuffix(string(buffer[:n]), "\n")

		for _, logger := range logSinks {
			logger(level, message)
		}
	}
}
