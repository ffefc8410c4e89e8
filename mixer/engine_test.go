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

import (
	"math"
	"testing"
)

const testFrames = 64

// constantInput builds the engine input for a mixer of the given capacity
// with every leg of every listed channel set to a constant amplitude.
// Channels not listed have nil legs and are skipped by the engine.
func constantInput(channels int, amplitude float32, active ...int) [][]float32 {
	in := make([][]float32, channels*2)

	for _, c := range active {
		legA := make([]float32, testFrames)
		legB := make([]float32, testFrames)

		for i := range legA {
			legA[i] = amplitude
			legB[i] = amplitude
		}

		in[2*c] = legA
		in[2*c+1] = legB
	}

	return in
}

// unityMixer builds a mixer with every fader (master included) at unity so
// the tests observe the pan/phase/mute math directly.
func unityMixer(channels int) *Mixer {
	m := New(channels)

	for c := 0; c <= channels; c++ {
		m.SetLevel(c, 1.0)
	}

	return m
}

func runPeriod(m *Mixer, in [][]float32) (outA, outB []float32) {
	outA = make([]float32, testFrames)
	outB = make([]float32, testFrames)
	m.Process(in, outA, outB)
	return outA, outB
}

func TestCenteredPanIsUnity(t *testing.T) {
	gainA, gainB := panGains(0)

	if !approx(gainA, 1.0) || !approx(gainB, 1.0) {
		t.Errorf("panGains(0) = (%v, %v), expected unity on both legs", gainA, gainB)
	}
}

func TestPanLawIsConstantPower(t *testing.T) {
	for _, balance := range []float32{-1.0, -0.5, 0.0, 0.5, 1.0} {
		gainA, gainB := panGains(balance)
		power := gainA*gainA + gainB*gainB

		if !approx(power, 2.0) {
			t.Errorf("panGains(%v): a^2+b^2 = %v, expected 2.0", balance, power)
		}
	}
}

func TestHardPanSilencesOppositeLeg(t *testing.T) {
	m := unityMixer(2)
	m.SetBalance(0, -1.0)

	outA, outB := runPeriod(m, constantInput(2, 0.5, 0))

	if outA[0] == 0 {
		t.Error("hard-left pan left leg A silent")
	}
	if !approx(outB[0], 0.0) {
		t.Errorf("hard-left pan leaked %v into leg B", outB[0])
	}
}

func TestLevelScalesOutput(t *testing.T) {
	m := unityMixer(2)
	m.SetLevel(0, 0.5)

	outA, _ := runPeriod(m, constantInput(2, 0.8, 0))

	if !approx(outA[0], 0.4) {
		t.Errorf("outA[0] = %v, expected 0.4", outA[0])
	}
}

func TestMuteSilencesContribution(t *testing.T) {
	m := unityMixer(2)
	m.SetMute(0, true)

	outA, outB := runPeriod(m, constantInput(2, 0.5, 0))

	if outA[0] != 0 || outB[0] != 0 {
		t.Errorf("muted channel contributed (%v, %v) to the bus", outA[0], outB[0])
	}

	// the meter still sees the fader-applied signal on a muted channel
	if got := m.GetDpm(0, LegA); !approx(got, 0.5) {
		t.Errorf("muted channel metered %v, expected 0.5", got)
	}
}

func TestSoloIsolatesChannel(t *testing.T) {
	m := unityMixer(2)

	// both channels feeding 0.5 on each leg
	in := constantInput(2, 0.5, 0, 1)

	outA, _ := runPeriod(m, in)
	if !approx(outA[0], 1.0) {
		t.Fatalf("bus sum = %v, expected 1.0 with both channels active", outA[0])
	}

	// soloing channel 0 silences channel 1 even though it is not muted
	m.SetSolo(0, true)

	outA, _ = runPeriod(m, in)
	if !approx(outA[0], 0.5) {
		t.Errorf("bus sum = %v with channel 0 soloed, expected 0.5", outA[0])
	}
	if m.GetMute(1) {
		t.Error("solo altered channel 1's stored mute flag")
	}

	// releasing the solo restores channel 1's contribution
	m.SetSolo(0, false)

	outA, _ = runPeriod(m, in)
	if !approx(outA[0], 1.0) {
		t.Errorf("bus sum = %v after solo release, expected 1.0", outA[0])
	}
}

func TestSoloNeverMutesMaster(t *testing.T) {
	m := unityMixer(2)
	m.SetSolo(0, true)

	outA, _ := runPeriod(m, constantInput(2, 0.5, 0))

	if outA[0] == 0 {
		t.Error("master output silent while a channel is soloed")
	}
}

func TestPhaseInvertsContribution(t *testing.T) {
	m := unityMixer(2)
	in := constantInput(2, 0.5, 0)

	outA, _ := runPeriod(m, in)
	reference := outA[0]

	m.SetPhase(0, true)

	outA, _ = runPeriod(m, in)
	if !approx(outA[0], -reference) {
		t.Errorf("outA[0] = %v with phase reversed, expected %v", outA[0], -reference)
	}
}

func TestMonoAveragesLegs(t *testing.T) {
	m := unityMixer(2)
	m.SetMono(0, true)

	// 1.0 on leg A, silence on leg B: the mono sum is 0.5 on both legs
	in := make([][]float32, 4)
	legA := make([]float32, testFrames)
	for i := range legA {
		legA[i] = 1.0
	}
	in[0] = legA
	in[1] = make([]float32, testFrames)

	outA, outB := runPeriod(m, in)

	if !approx(outA[0], 0.5) || !approx(outB[0], 0.5) {
		t.Errorf("mono sum = (%v, %v), expected (0.5, 0.5)", outA[0], outB[0])
	}
}

func TestMasterChainAppliesToBus(t *testing.T) {
	m := unityMixer(2)
	m.SetLevel(m.ChannelCount(), 0.5)

	outA, _ := runPeriod(m, constantInput(2, 0.8, 0))

	if !approx(outA[0], 0.4) {
		t.Errorf("outA[0] = %v with master at 0.5, expected 0.4", outA[0])
	}

	m.SetMute(m.ChannelCount(), true)

	outA, _ = runPeriod(m, constantInput(2, 0.8, 0))
	if outA[0] != 0 {
		t.Errorf("outA[0] = %v with master muted, expected 0", outA[0])
	}
}

func TestFullScaleScenario(t *testing.T) {
	m := New(4)

	m.SetLevel(0, 1.0)
	m.SetBalance(0, 0.0)
	m.SetLevel(m.ChannelCount(), 1.0)

	outA, outB := runPeriod(m, constantInput(4, 1.0, 0))

	if got := m.GetDpm(0, LegA); !approx(got, 1.0) {
		t.Errorf("GetDpm(0, LegA) = %v, expected full scale", got)
	}
	if got := m.GetDpm(0, LegB); !approx(got, 1.0) {
		t.Errorf("GetDpm(0, LegB) = %v, expected full scale", got)
	}

	// centered constant-power pan passes at unity on both legs
	if !approx(outA[0], 1.0) || !approx(outB[0], 1.0) {
		t.Errorf("master output = (%v, %v), expected (1.0, 1.0)", outA[0], outB[0])
	}
}

func TestProcessZeroesStaleOutput(t *testing.T) {
	m := unityMixer(2)

	outA := make([]float32, testFrames)
	outB := make([]float32, testFrames)
	for i := range outA {
		outA[i] = float32(math.NaN())
		outB[i] = 7.0
	}

	m.Process(make([][]float32, 4), outA, outB)

	for i := range outA {
		if outA[i] != 0 || outB[i] != 0 {
			t.Fatalf("frame %d not cleared: (%v, %v)", i, outA[i], outB[i])
		}
	}
}
