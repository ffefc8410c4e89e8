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

// Digital peak meter behavior: the instantaneous peak is replaced every
// period, while the held peak jumps up immediately with a new maximum and
// only falls after a hold interval, then decays exponentially.
const (
	// periods the held peak stays pinned after a new maximum
	// (about one second at 48kHz / 1024 frames per period)
	dpmHoldPeriods = 48

	// per-period exponential decay applied to the held peak once the
	// hold interval has elapsed
	dpmDecayFactor = 0.9

	// a decaying held value below this snaps to zero
	dpmFloor = 1e-8
)

// peakState is the meter state for one leg of one channel. peak and hold
// are written by the audio callback and read by the control plane;
// holdCount is only ever touched on the audio callback.
type peakState struct {
	peak      atomicFloat32
	hold      atomicFloat32
	holdCount int
}

// update folds one period's maximum absolute sample into the meter.
func (p *peakState) update(periodPeak float32) {
	p.peak.Store(periodPeak)

	held := p.hold.Load()

	switch {
	case periodPeak > held:
		p.hold.Store(periodPeak)
		p.holdCount = dpmHoldPeriods

	case p.holdCount > 0:
		p.holdCount--

	default:
		held *= dpmDecayFactor

		if held < periodPeak {
			held = periodPeak
		}
		if held < dpmFloor {
			held = 0
		}

		p.hold.Store(held)
	}
}

// DpmState is one record of the bulk meter query. The field order
// (LegA, LegB, HoldA, HoldB, Mono) is the positional contract callers
// rely on when serializing these records.
type DpmState struct {
	LegA  float32 // instantaneous peak, leg A
	LegB  float32 // instantaneous peak, leg B
	HoldA float32 // held peak, leg A
	HoldB float32 // held peak, leg B
	Mono  bool    // channel mono-sum flag
}

// GetDpm returns the most recent period's peak for one leg of a channel.
func (m *Mixer) GetDpm(channel int, leg Leg) float32 {
	s := m.strip(channel)
	if s == nil || leg < LegA || leg > LegB {
		return 0
	}

	return s.dpm[leg].peak.Load()
}

// GetDpmHold returns the held peak for one leg of a channel.
func (m *Mixer) GetDpmHold(channel int, leg Leg) float32 {
	s := m.strip(channel)
	if s == nil || leg < LegA || leg > LegB {
		return 0
	}

	return s.dpm[leg].hold.Load()
}

// GetDpmStates fills out with one DpmState per channel for the inclusive
// index range start..end, in index order, and returns the number of records
// written. end may equal ChannelCount() to include the master bus. The
// range is clamped to the slot array and to len(out).
func (m *Mixer) GetDpmStates(start, end int, out []DpmState) int {
	if start < 0 {
		start = 0
	}
	if end >= len(m.strips) {
		end = len(m.strips) - 1
	}

	written := 0

	for channel := start; channel <= end && written < len(out); channel++ {
		s := &m.strips[channel]

		out[written] = DpmState{
			LegA:  s.dpm[LegA].peak.Load(),
			LegB:  s.dpm[LegB].peak.Load(),
			HoldA: s.dpm[LegA].hold.Load(),
			HoldB: s.dpm[LegB].hold.Load(),
			Mono:  s.mono.Load(),
		}

		written++
	}

	return written
}

// EnableDpm enables or disables peak metering for a channel. Metering
// costs a scan of every sample each period, so it can be switched off per
// channel when the CPU budget is tight.
func (m *Mixer) EnableDpm(channel int, enable bool) {
	if s := m.strip(channel); s != nil {
		s.dpmEnabled.Store(enable)
	}
}
