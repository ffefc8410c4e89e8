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
	"math"
	"math/rand/v2"
	"time"

	"fox-mixer/model"
	"fox-mixer/reaper"
)

// startSimulation feeds synthetic sine periods through the mix engine on
// a ticker instead of a JACK process callback. Meters, OSC broadcast and
// the TUI all behave exactly as they do against a live server.
func startSimulation(profile *model.Profile, simulationOptions *model.SimulationOptions) {
	reaper.Register("simulation")

	go func() {
		t := time.NewTicker(150 * time.Millisecond)

		channels := profile.Mixer.Channels
		frames := profile.AudioServer.FramesPerPeriod

		in := make([][]float32, channels*2)
		for leg := range in {
			in[leg] = make([]float32, frames)
		}

		outA := make([]float32, frames)
		outB := make([]float32, frames)

		amplitudes := make([]float32, channels)
		for channel := range amplitudes {
			amplitudes[channel] = rand.Float32()
		}

		for channel := range channels {
			mixerHandle.SetRouted(channel, true)
			displayHandle.tui.SetChannelRouted(channel, true)
		}

		for range t.C {
			if reaper.Reaped() {
				break
			}

			if !simulationOptions.FreezeMeters {
				for channel := range channels {
					amplitudes[channel] = rand.Float32()
				}
			}

			for channel := range channels {
				frequency := 110.0 * float64(channel+1)

				for frame := 0; frame < frames; frame++ {
					sample := amplitudes[channel] * float32(math.Sin(2.0*math.Pi*frequency*float64(frame)/float64(profile.AudioServer.SampleRate)))

					in[channel*2][frame] = sample
					in[channel*2+1][frame] = sample
				}
			}

			mixerHandle.Process(in, outA, outB)
		}

		reaper.Done("simulation")
	}()
}
