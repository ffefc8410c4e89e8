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
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"path"
	"strings"
)

func FileExists(path string) bool {
	// if an error occurred or its a directory, we throw up
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return false
	}

	return true
}

func DirectoryExists(testDir string) bool {
	if stat, err := os.Stat(testDir); err != nil || !stat.IsDir() {
		return false
	}

	return true
}

func ResolveHomeDirPath(testPath string) (string, error) {
	if strings.HasPrefix(testPath, "~/") {
		homeDir, err := os.UserHomeDir()

		if err != nil {
			return "", errors.New("could not find user home dir: " + err.Error())
		}

		return path.Join(homeDir, testPath[2:]), nil
	}

	return testPath, nil
}

// AmplitudeToDb converts a linear amplitude to dBFS.
func AmplitudeToDb(amplitude float64) float64 {
	return math.Log10(amplitude) * 20.0
}

// GetChanAverage drains a channel of samples and returns their mean.
func GetChanAverage(inputChan chan int64) float64 {
	sum := 0.0
	count := 0

out:
	for {
		select {
		case value := <-inputChan:
			sum += float64(value)
			count++
		default:
			break out
		}
	}

	return sum / float64(count)
}

func TraceLog(message string, args ...any) {
	slog.Log(context.Background(), slog.Level(-10), message, args...)
}

func FindJackdBinary() string {
	possiblePaths := []string{
		"/usr/bin/jackd",
		"/usr/local/bin/jackd",
	}

	for _, path := range possiblePaths {
		if FileExists(path) {
			return path
		}
	}

	return ""
}
