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
	"math"
	"testing"
)

func TestAmplitudeToDb(t *testing.T) {
	tests := []struct {
		amplitude float64
		want      float64
	}{
		{1.0, 0.0},
		{0.5, -6.0206},
		{0.1, -20.0},
	}

	for _, tt := range tests {
		got := AmplitudeToDb(tt.amplitude)

		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("AmplitudeToDb(%v) = %v, want %v", tt.amplitude, got, tt.want)
		}
	}
}

func TestAmplitudeToDbSilence(t *testing.T) {
	if got := AmplitudeToDb(0); !math.IsInf(got, -1) {
		t.Errorf("AmplitudeToDb(0) = %v, want -Inf", got)
	}
}

func TestGetChanAverage(t *testing.T) {
	c := make(chan int64, 8)
	c <- 10
	c <- 20
	c <- 30

	got := GetChanAverage(c)

	if math.Abs(got-20.0) > 0.001 {
		t.Errorf("GetChanAverage = %v, want 20", got)
	}

	if len(c) != 0 {
		t.Errorf("channel not drained, %d values left", len(c))
	}
}
