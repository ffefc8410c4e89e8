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
	"time"

	"fox-mixer/model"
	"fox-mixer/reaper"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
)

func startDiskWriter(profile *model.Profile) {
	reaper.Register("disk writer")
	go diskWriter(profile)
}

func getSamplesFromBuffer(sampleCount int, writeBuffer chan float32) []float32 {
	samples := make([]float32, sampleCount)

	for i := 0; i < sampleCount; i++ {
		sample := <-writeBuffer
		samples[i] = sample
	}

	return samples
}

// diskWriter drains the capture buffer and appends to the master WAV.
// Writes happen in chunks of at least MinimumWriteSize seconds so the
// encoder sees few, large writes.
func diskWriter(profile *model.Profile) {
	// interleaved stereo, 2 samples per frame
	requiredSamples := int(profile.Capture.MinimumWriteSize*float64(profile.AudioServer.SampleRate)) * 2

	wavFormat := &audio.Format{
		NumChannels: 2,
		SampleRate:  profile.AudioServer.SampleRate,
	}

	writeBuffer := captureFile.WriteBuffer()

	for {
		available := len(writeBuffer)

		if available < requiredSamples {
			if reaper.Reaped() {
				// flush whatever is left, whole frames only
				if remaining := (len(writeBuffer) / 2) * 2; remaining > 0 {
					writeSamples(wavFormat, getSamplesFromBuffer(remaining, writeBuffer), profile.Capture.BitDepth)
				}
				break
			}

			time.Sleep(10 * time.Millisecond)
			continue
		}

		writeSamples(wavFormat, getSamplesFromBuffer(requiredSamples, writeBuffer), profile.Capture.BitDepth)
	}

	reaper.Done("disk writer")
}

func writeSamples(wavFormat *audio.Format, samples []float32, bitDepth int) {
	fBuf := &audio.Float32Buffer{
		Data:   samples,
		Format: wavFormat,
	}

	transforms.PCMScaleF32(fBuf, bitDepth)

	iBuf := fBuf.AsIntBuffer()
	iBuf.SourceBitDepth = bitDepth

	captureFile.Write(iBuf)
}
