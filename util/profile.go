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
	"log/slog"
	"os"
	"strings"
	"time"

	"fox-mixer/model"
	"fox-mixer/reaper"
)

// ReadProfile loads a session profile and fills in defaults for anything
// left unset.
func ReadProfile(profilePath string) *model.Profile {
	if !strings.HasSuffix(profilePath, ".profile") {
		profilePath += ".profile"
	}

	profile := &model.Profile{}

	if err := ReadYamlFile(profile, profilePath); err != nil {
		slog.Error("Failed to read profile: " + err.Error())
		reaper.Reap()
		return profile
	}

	applyProfileDefaults(profile)

	if profile.Capture.Enabled {
		prepareCaptureDirectory(profile)
	}

	return profile
}

func applyProfileDefaults(profile *model.Profile) {
	if profile.Mixer.Channels <= 0 {
		profile.Mixer.Channels = 16
	}

	if profile.AudioServer.SampleRate <= 0 {
		profile.AudioServer.SampleRate = 48000
	}

	if profile.AudioServer.FramesPerPeriod <= 0 {
		profile.AudioServer.FramesPerPeriod = 1024
	}

	if profile.AudioServer.HardwarePortConnectionPrefix == "" {
		profile.AudioServer.HardwarePortConnectionPrefix = "system:capture_"
	}

	if profile.Osc.BroadcastIntervalMs <= 0 {
		profile.Osc.BroadcastIntervalMs = 100
	}

	if profile.Capture.BitDepth <= 0 {
		profile.Capture.BitDepth = 24
	}

	if profile.Capture.BufferSizeSeconds <= 0 {
		profile.Capture.BufferSizeSeconds = 2.0
	}

	if profile.Capture.MinimumWriteSize <= 0 {
		profile.Capture.MinimumWriteSize = 0.25
	}

	if profile.Capture.DirectoryTemplate == "" {
		profile.Capture.DirectoryTemplate = "~/fox-mixer/2006-01-02"
	}
}

func prepareCaptureDirectory(profile *model.Profile) {
	outputDir, err := ResolveHomeDirPath(time.Now().Format(profile.Capture.DirectoryTemplate))
	if err != nil {
		slog.Error("Failed to resolve home user dir: " + err.Error())
		reaper.Reap()
		return
	}

	if !DirectoryExists(outputDir) {
		slog.Info("Creating capture directory: " + outputDir)
		os.MkdirAll(outputDir, 0755)
	}

	profile.Capture.Directory = outputDir
}
