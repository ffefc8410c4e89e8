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
	"fmt"
	"math"
	"time"

	"fox-mixer/mixer"
	"fox-mixer/model"
	"fox-mixer/reaper"
	"fox-mixer/util"
)

var (
	stats statistics
)

type statistics struct {
	jackProcessLastStartTime int64
	jackProcessLastEndTime   int64
	jackProcessElapsedChan   chan int64
	jackProcessIdleChan      chan int64

	shutdownChan chan bool
}

func initStatistics(profile *model.Profile) chan bool {
	stats = statistics{
		jackProcessElapsedChan: make(chan int64, 5),
		jackProcessIdleChan:    make(chan int64, 5),

		shutdownChan: make(chan bool, 5),
	}

	channels := profile.Mixer.Channels

	// meter bridge updates, channels plus master. meter state is read from
	// the mixer here so the audio callback never touches the UI
	dpmStates := make([]mixer.DpmState, channels+1)
	signalLevels := make([]model.SignalLevel, channels+1)

	processOnInterval("meter update stats", stats.shutdownChan, 50, func() {
		written := mixerHandle.GetDpmStates(0, channels, dpmStates)

		for i := 0; i < written; i++ {
			state := dpmStates[i]

			instant := math.Max(float64(state.LegA), float64(state.LegB))
			held := math.Max(float64(state.HoldA), float64(state.HoldB))

			signalLevels[i] = model.SignalLevel{
				Instant: int(util.AmplitudeToDb(instant)),
				Held:    int(util.AmplitudeToDb(held)),
			}
		}

		displayHandle.tui.UpdateSignalLevels(signalLevels[:written])

		for channel := 0; channel <= channels; channel++ {
			displayHandle.tui.SetChannelMuted(channel, mixerHandle.GetMute(channel))
			displayHandle.tui.SetChannelSoloed(channel, mixerHandle.GetSolo(channel))
		}
	})

	processOnInterval("combined stats", stats.shutdownChan, 100, func() {
		// audio engine load
		jackIdleTimeAvg := util.GetChanAverage(stats.jackProcessIdleChan)
		jackProcessTimeAvg := util.GetChanAverage(stats.jackProcessElapsedChan)
		jackAvgLoad := jackProcessTimeAvg / jackIdleTimeAvg

		if !math.IsNaN(jackAvgLoad) {
			displayHandle.tui.SetAudioLoad(int(jackAvgLoad * 100.0))
			util.TraceLog(fmt.Sprintf("jack Idle time: %0.0f us, Process time: %0.0f us, load %0.3f%%", jackIdleTimeAvg, jackProcessTimeAvg, jackAvgLoad*100.0))
		}

		// capture buffer utilization
		if captureFile != nil {
			buffer := captureFile.WriteBuffer()
			bufferUsed := float64(len(buffer)) / float64(cap(buffer))

			if !math.IsNaN(bufferUsed) {
				displayHandle.tui.SetBufferUtilization(int(math.Round(bufferUsed * 100.0)))
				util.TraceLog(fmt.Sprintf("capture buffer: %0.2f%%", bufferUsed*100.0))
			}
		}
	})

	return stats.shutdownChan
}

func processOnInterval(name string, shutdownChan chan bool, milliseconds int, process func()) {
	reaper.Register(name)

	go func() {
		process()

		t := time.NewTicker(time.Duration(milliseconds) * time.Millisecond)

		for range t.C {
			if len(shutdownChan) > 0 {
				break
			}

			process()
		}

		reaper.Done(name)
	}()
}
