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
	"context"
	"log/slog"

	"fox-mixer/display"
)

// TuiLogHandler routes slog records into the TUI log pane.
type TuiLogHandler struct {
	tui           *display.Tui
	level         slog.Level
	errorCallback func(string)
}

func NewTuiLogHandler(out *display.Tui, level slog.Level, errorCallback func(string)) *TuiLogHandler {
	return &TuiLogHandler{
		tui:           out,
		level:         level,
		errorCallback: errorCallback,
	}
}

func (h *TuiLogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.tui.WriteLevelLog(r.Level, r.Message)

	if r.Level == slog.LevelError && h.errorCallback != nil {
		h.errorCallback(r.Message)
	}

	return nil
}

func (h *TuiLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *TuiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *TuiLogHandler) WithGroup(name string) slog.Handler {
	return h
}
