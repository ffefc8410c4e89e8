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
package model

type Profile struct {
	AudioServer ProfileAudioServer `yaml:"audio_server"`
	Mixer       ProfileMixer       `yaml:"mixer"`
	Osc         ProfileOsc         `yaml:"osc"`
	Capture     ProfileCapture     `yaml:"capture"`
}

type ProfileAudioServer struct {
	Interface       []string `yaml:"interface"`
	SampleRate      int      `yaml:"sample_rate"`
	FramesPerPeriod int      `yaml:"frames_per_period"`
	AutoStart       bool     `yaml:"auto_start"`

	// prefix of the hardware ports channel inputs are offered from,
	// e.g. "system:capture_"
	HardwarePortConnectionPrefix string `yaml:"hardware_port_connection_prefix"`

	// whether to connect the master outputs to system playback ports
	ConnectOutputs bool `yaml:"connect_outputs"`
}

type ProfileMixer struct {
	// fixed channel capacity, decided once at startup
	Channels int `yaml:"channels"`
}

type ProfileOsc struct {
	BroadcastIntervalMs int `yaml:"broadcast_interval_ms"`

	// clients subscribed from the start, before any runtime registration
	Clients []string `yaml:"clients"`
}

type ProfileCapture struct {
	Enabled           bool    `yaml:"enabled"`
	DirectoryTemplate string  `yaml:"directory_template"`
	BitDepth          int     `yaml:"bit_depth"`
	BufferSizeSeconds float64 `yaml:"buffer_size_seconds"`
	MinimumWriteSize  float64 `yaml:"minimum_write_size"`

	// calculated at runtime, not able to be set in the profile
	Directory string
}
