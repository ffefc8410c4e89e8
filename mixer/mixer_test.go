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

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestSetLevelClamps(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected float32
	}{
		{"InRange", 0.3, 0.3},
		{"BelowRange", -0.5, 0.0},
		{"AboveRange", 1.7, 1.0},
		{"LowerBound", 0.0, 0.0},
		{"UpperBound", 1.0, 1.0},
	}

	m := New(4)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetLevel(0, tt.input)

			if got := m.GetLevel(0); !approx(got, tt.expected) {
				t.Errorf("GetLevel(0) = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSetBalanceClamps(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected float32
	}{
		{"Centered", 0.0, 0.0},
		{"HardLeft", -1.0, -1.0},
		{"HardRight", 1.0, 1.0},
		{"BelowRange", -3.0, -1.0},
		{"AboveRange", 2.5, 1.0},
	}

	m := New(4)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetBalance(1, tt.input)

			if got := m.GetBalance(1); !approx(got, tt.expected) {
				t.Errorf("GetBalance(1) = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestToggleMuteFlips(t *testing.T) {
	m := New(4)

	if m.GetMute(2) {
		t.Fatal("channel unexpectedly muted after construction")
	}

	m.ToggleMute(2)
	if !m.GetMute(2) {
		t.Error("expected mute after first toggle")
	}

	m.ToggleMute(2)
	if m.GetMute(2) {
		t.Error("expected unmute after second toggle")
	}
}

func TestBooleanFlags(t *testing.T) {
	m := New(4)

	m.SetSolo(0, true)
	m.SetMono(0, true)
	m.SetPhase(0, true)

	if !m.GetSolo(0) || !m.GetMono(0) || !m.GetPhase(0) {
		t.Error("expected solo/mono/phase all set on channel 0")
	}

	if m.GetSolo(1) || m.GetMono(1) || m.GetPhase(1) {
		t.Error("flags leaked onto channel 1")
	}
}

func TestMasterAlias(t *testing.T) {
	m := New(4)

	for c := 0; c < m.ChannelCount(); c++ {
		m.SetLevel(c, 0.25)
	}

	// the boundary index and anything above it address the master slot
	m.SetLevel(m.ChannelCount(), 0.5)
	m.SetLevel(m.ChannelCount()+7, 0.9)

	for c := 0; c < m.ChannelCount(); c++ {
		if got := m.GetLevel(c); !approx(got, 0.25) {
			t.Errorf("channel %d level = %v, master write leaked into it", c, got)
		}
	}

	if got := m.GetLevel(m.ChannelCount()); !approx(got, 0.9) {
		t.Errorf("master level = %v, expected 0.9", got)
	}
}

func TestNegativeIndexIsNoop(t *testing.T) {
	m := New(4)

	m.SetLevel(-1, 0.5)
	m.SetBalance(-3, 1.0)
	m.SetMute(-1, true)
	m.ToggleMute(-1)
	m.Reset(-1)

	if got := m.GetLevel(-1); got != 0 {
		t.Errorf("GetLevel(-1) = %v, expected 0", got)
	}
	if m.GetMute(-1) {
		t.Error("GetMute(-1) = true, expected false")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	m := New(4)

	m.SetLevel(1, 0.1)
	m.SetBalance(1, -0.7)
	m.SetMute(1, true)
	m.SetSolo(1, true)
	m.SetMono(1, true)
	m.SetPhase(1, true)

	// a neighbor that must survive the reset untouched
	m.SetLevel(2, 0.33)

	m.Reset(1)

	if got := m.GetLevel(1); !approx(got, 0.8) {
		t.Errorf("level after reset = %v, expected 0.8", got)
	}
	if got := m.GetBalance(1); !approx(got, 0.0) {
		t.Errorf("balance after reset = %v, expected 0", got)
	}
	if m.GetMute(1) || m.GetSolo(1) || m.GetMono(1) || m.GetPhase(1) {
		t.Error("expected all boolean flags cleared after reset")
	}

	if got := m.GetLevel(2); !approx(got, 0.33) {
		t.Errorf("reset(1) altered channel 2 level: %v", got)
	}
}

func TestRoutedIsDerivedState(t *testing.T) {
	m := New(4)

	if m.IsChannelRouted(0) {
		t.Error("channel routed before any backend notification")
	}

	m.SetRouted(0, true)
	if !m.IsChannelRouted(0) {
		t.Error("expected channel 0 routed")
	}

	m.SetRouted(0, false)
	if m.IsChannelRouted(0) {
		t.Error("expected channel 0 unrouted again")
	}
}

func TestChannelCountFixed(t *testing.T) {
	m := New(16)

	if got := m.ChannelCount(); got != 16 {
		t.Errorf("ChannelCount() = %d, expected 16", got)
	}

	// a degenerate request still yields a usable mixer
	if got := New(0).ChannelCount(); got != 1 {
		t.Errorf("New(0).ChannelCount() = %d, expected 1", got)
	}
}
