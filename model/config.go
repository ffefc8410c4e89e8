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

type Config struct {
	JackdBinary       string `yaml:"jackd_binary,omitempty"`
	VerboseJackServer bool   `yaml:"verbose_jack_server,omitempty"`
	JackClientName    string `yaml:"jack_client_name,omitempty"`
	LogLevel          int    `yaml:"log_level,omitempty"`

	SimulationOptions *SimulationOptions `yaml:"simulation_options"`
}

type SimulationOptions struct {
	EnableSimulation bool `yaml:"enable,omitempty"`
	FreezeMeters     bool `yaml:"freeze_meters,omitempty"`
	ChannelCount     int  `yaml:"channel_count,omitempty"`
}
