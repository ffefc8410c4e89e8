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
package app

import (
	"log/slog"
	"time"

	"fox-mixer/audio"
)

func jackError(message string) {
	slog.Error("JACK: " + message)
}

func jackInfo(message string) {
	slog.Info("JACK: " + message)
}

func jackShutdown(server *audio.JackServer) {
	slog.Info("JACK connection shutting down")
	server.StopServer()
}

func jackXrun() int {
	slog.Error("xrun")

	return 0
}

// jackProcess is the realtime callback: pull the period's buffers, run
// them through the mix engine and hand the master bus to the capture
// buffer. No allocation, locks or I/O in here.
func jackProcess(nframes uint32) int {
	// audio load statistics
	if stats.jackProcessLastEndTime > 0 {
		if len(stats.jackProcessIdleChan) < cap(stats.jackProcessIdleChan) {
			stats.jackProcessIdleChan <- time.Now().UnixMicro() - stats.jackProcessLastEndTime
		}
	}

	stats.jackProcessLastStartTime = time.Now().UnixMicro()

	audioServer.InputBuffers(nframes, inputBuffers)
	outA, outB := audioServer.OutputBuffers(nframes)

	mixerHandle.Process(inputBuffers, outA, outB)

	if transportCapture && captureFile != nil {
		for frame := range nframes {
			captureFile.PushFrame(outA[frame], outB[frame])
		}
	}

	// audio load statistics
	stats.jackProcessLastEndTime = time.Now().UnixMicro()
	if len(stats.jackProcessElapsedChan) < cap(stats.jackProcessElapsedChan) {
		stats.jackProcessElapsedChan <- stats.jackProcessLastEndTime - stats.jackProcessLastStartTime
	}

	return 0
}
