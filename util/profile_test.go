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
package util

import (
	"testing"

	"fox-mixer/model"
)

func TestProfileDefaults(t *testing.T) {
	profile := &model.Profile{}

	applyProfileDefaults(profile)

	if profile.Mixer.Channels != 16 {
		t.Errorf("default channel count: got %d, want 16", profile.Mixer.Channels)
	}

	if profile.AudioServer.SampleRate != 48000 {
		t.Errorf("default sample rate: got %d, want 48000", profile.AudioServer.SampleRate)
	}

	if profile.AudioServer.FramesPerPeriod != 1024 {
		t.Errorf("default frames per period: got %d, want 1024", profile.AudioServer.FramesPerPeriod)
	}

	if profile.AudioServer.HardwarePortConnectionPrefix != "system:capture_" {
		t.Errorf("default port prefix: got %q", profile.AudioServer.HardwarePortConnectionPrefix)
	}

	if profile.Osc.BroadcastIntervalMs != 100 {
		t.Errorf("default broadcast interval: got %d, want 100", profile.Osc.BroadcastIntervalMs)
	}

	if profile.Capture.BitDepth != 24 {
		t.Errorf("default bit depth: got %d, want 24", profile.Capture.BitDepth)
	}
}

func TestProfileDefaultsDoNotOverride(t *testing.T) {
	profile := &model.Profile{}
	profile.Mixer.Channels = 4
	profile.AudioServer.SampleRate = 44100
	profile.Osc.BroadcastIntervalMs = 250

	applyProfileDefaults(profile)

	if profile.Mixer.Channels != 4 {
		t.Errorf("channel count overridden: got %d, want 4", profile.Mixer.Channels)
	}

	if profile.AudioServer.SampleRate != 44100 {
		t.Errorf("sample rate overridden: got %d, want 44100", profile.AudioServer.SampleRate)
	}

	if profile.Osc.BroadcastIntervalMs != 250 {
		t.Errorf("broadcast interval overridden: got %d, want 250", profile.Osc.BroadcastIntervalMs)
	}
}
