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
package mixer

import "math"

// panGains derives per-leg gains from a balance position using a
// constant-power law: theta sweeps 0..pi/2 across the balance range and the
// legs follow cos/sin so perceived loudness stays constant. The pair is
// normalized to unity at center (0dB center, +3dB at the extremes) so a
// centered full-scale signal passes at full scale.
func panGains(balance float32) (gainA float32, gainB float32) {
	theta := float64(balance+1.0) * math.Pi / 4.0

	gainA = float32(math.Sqrt2 * math.Cos(theta))
	gainB = float32(math.Sqrt2 * math.Sin(theta))

	return gainA, gainB
}

func abs32(value float32) float32 {
	if value < 0 {
		return -value
	}

	return value
}

// Process mixes one period of audio into the master bus. in carries two
// legs per channel (in[2*ch] is leg A, in[2*ch+1] is leg B); a nil leg is
// silence and a channel with neither leg present is skipped entirely.
// outA and outB are overwritten with the final master output.
//
// Per channel the chain is: mono sum, phase reverse, constant-power pan,
// fader gain, peak metering, then the mute gate into the bus. Meters
// deliberately sample the fader-applied signal before the mute/solo gate,
// so a muted channel still shows its incoming level. After all channels
// the master strip's own chain runs in place over the bus and the master
// meters sample the final output.
//
// This is the audio-context entry point: it takes no locks, performs no
// allocation or I/O, and reads each control field exactly once per period.
func (m *Mixer) Process(in [][]float32, outA, outB []float32) {
	frames := len(outA)
	if len(outB) < frames {
		frames = len(outB)
	}

	for i := 0; i < frames; i++ {
		outA[i] = 0
		outB[i] = 0
	}

	// any soloed channel implicitly mutes every non-solo channel
	soloActive := false
	for c := 0; c < m.ChannelCount(); c++ {
		if m.strips[c].solo.Load() {
			soloActive = true
			break
		}
	}

	for c := 0; c < m.ChannelCount(); c++ {
		var legA, legB []float32

		if 2*c < len(in) {
			legA = in[2*c]
		}
		if 2*c+1 < len(in) {
			legB = in[2*c+1]
		}

		if legA == nil && legB == nil {
			continue
		}

		s := &m.strips[c]

		level := s.level.Load()
		gainA, gainB := panGains(s.balance.Load())
		mono := s.mono.Load()
		meter := s.dpmEnabled.Load()
		muted := s.mute.Load() || (soloActive && !s.solo.Load())

		gainA *= level
		gainB *= level

		if s.phase.Load() {
			gainA = -gainA
			gainB = -gainB
		}

		var peakA, peakB float32

		for i := 0; i < frames; i++ {
			var sampleA, sampleB float32

			if i < len(legA) {
				sampleA = legA[i]
			}
			if i < len(legB) {
				sampleB = legB[i]
			}

			if mono {
				sum := (sampleA + sampleB) * 0.5
				sampleA = sum
				sampleB = sum
			}

			sampleA *= gainA
			sampleB *= gainB

			if meter {
				if abs := abs32(sampleA); abs > peakA {
					peakA = abs
				}
				if abs := abs32(sampleB); abs > peakB {
					peakB = abs
				}
			}

			if !muted {
				outA[i] += sampleA
				outB[i] += sampleB
			}
		}

		if meter {
			s.dpm[LegA].update(peakA)
			s.dpm[LegB].update(peakB)
		}
	}

	// master chain, in place over the summed bus; the master is never
	// subject to solo-derived muting
	ms := m.master()

	level := ms.level.Load()
	gainA, gainB := panGains(ms.balance.Load())
	mono := ms.mono.Load()
	meter := ms.dpmEnabled.Load()
	muted := ms.mute.Load()

	gainA *= level
	gainB *= level

	if ms.phase.Load() {
		gainA = -gainA
		gainB = -gainB
	}

	var peakA, peakB float32

	for i := 0; i < frames; i++ {
		sampleA := outA[i]
		sampleB := outB[i]

		if mono {
			sum := (sampleA + sampleB) * 0.5
			sampleA = sum
			sampleB = sum
		}

		sampleA *= gainA
		sampleB *= gainB

		if muted {
			sampleA = 0
			sampleB = 0
		}

		outA[i] = sampleA
		outB[i] = sampleB

		if meter {
			if abs := abs32(sampleA); abs > peakA {
				peakA = abs
			}
			if abs := abs32(sampleB); abs > peakB {
				peakB = abs
			}
		}
	}

	if meter {
		ms.dpm[LegA].update(peakA)
		ms.dpm[LegB].update(peakB)
	}
}
