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

import "testing"

func TestDpmTracksPeriodPeak(t *testing.T) {
	m := unityMixer(2)

	runPeriod(m, constantInput(2, 0.8, 0))

	if got := m.GetDpm(0, LegA); !approx(got, 0.8) {
		t.Errorf("GetDpm = %v after 0.8 period, expected 0.8", got)
	}

	// the instantaneous peak is replaced, not accumulated: one silent
	// period drops it straight back to zero
	runPeriod(m, constantInput(2, 0.0, 0))

	if got := m.GetDpm(0, LegA); got != 0 {
		t.Errorf("GetDpm = %v after silence, expected 0", got)
	}
}

func TestDpmHoldThenDecay(t *testing.T) {
	m := unityMixer(2)

	runPeriod(m, constantInput(2, 0.8, 0))

	silence := constantInput(2, 0.0, 0)

	// the held peak stays pinned for the full hold interval
	for i := 0; i < dpmHoldPeriods; i++ {
		runPeriod(m, silence)

		if got := m.GetDpmHold(0, LegA); !approx(got, 0.8) {
			t.Fatalf("held peak = %v during hold period %d, expected 0.8", got, i)
		}
	}

	// once the hold elapses it decays monotonically toward zero
	previous := m.GetDpmHold(0, LegA)

	for i := 0; i < 20; i++ {
		runPeriod(m, silence)

		held := m.GetDpmHold(0, LegA)
		if held >= previous {
			t.Fatalf("held peak did not decay: %v -> %v at period %d", previous, held, i)
		}

		previous = held
	}
}

func TestDpmHoldJumpsUpImmediately(t *testing.T) {
	m := unityMixer(2)

	runPeriod(m, constantInput(2, 0.3, 0))
	runPeriod(m, constantInput(2, 0.9, 0))

	if got := m.GetDpmHold(0, LegA); !approx(got, 0.9) {
		t.Errorf("held peak = %v after louder period, expected 0.9", got)
	}
}

func TestDpmDisabledSkipsMetering(t *testing.T) {
	m := unityMixer(2)
	m.EnableDpm(0, false)

	runPeriod(m, constantInput(2, 0.8, 0))

	if got := m.GetDpm(0, LegA); got != 0 {
		t.Errorf("GetDpm = %v with metering disabled, expected 0", got)
	}
	if got := m.GetDpmHold(0, LegA); got != 0 {
		t.Errorf("GetDpmHold = %v with metering disabled, expected 0", got)
	}
}

func TestGetDpmStatesRecordLayout(t *testing.T) {
	m := unityMixer(2)
	m.SetMono(1, true)
	m.SetBalance(0, -1.0) // leg B silent for channel 0

	runPeriod(m, constantInput(2, 0.5, 0, 1))

	// inclusive range covering both channels plus the master slot
	states := make([]DpmState, m.ChannelCount()+1)
	written := m.GetDpmStates(0, m.ChannelCount(), states)

	if written != m.ChannelCount()+1 {
		t.Fatalf("wrote %d records, expected %d", written, m.ChannelCount()+1)
	}

	if states[0].LegA == 0 {
		t.Error("channel 0 leg A peak missing")
	}
	if !approx(states[0].LegB, 0.0) {
		t.Errorf("channel 0 leg B peak = %v, expected silence from hard-left pan", states[0].LegB)
	}
	if states[0].Mono {
		t.Error("channel 0 reported mono")
	}
	if !states[1].Mono {
		t.Error("channel 1 mono flag missing")
	}
	if states[written-1].LegA == 0 {
		t.Error("master record has no signal")
	}

	if states[0].HoldA < states[0].LegA {
		t.Errorf("held peak %v below instantaneous peak %v", states[0].HoldA, states[0].LegA)
	}
}

func TestGetDpmStatesClampsRange(t *testing.T) {
	m := New(4)

	states := make([]DpmState, 16)

	if written := m.GetDpmStates(-3, 100, states); written != 5 {
		t.Errorf("wrote %d records for out-of-range query, expected 5", written)
	}

	// a short destination bounds the write
	if written := m.GetDpmStates(0, 4, states[:2]); written != 2 {
		t.Errorf("wrote %d records into a 2-slot buffer, expected 2", written)
	}
}
