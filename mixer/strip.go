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
	"sync/atomic"
)

// defaults restored by Reset (and applied at construction)
const (
	defaultLevel   = 0.8
	defaultBalance = 0.0
)

// atomicFloat32 stores a float32 as its IEEE-754 bit pattern so the control
// plane and the audio callback can exchange a value without a lock.
type atomicFloat32 struct {
	bits atomic.Uint32
}

func (f *atomicFloat32) Store(value float32) {
	f.bits.Store(math.Float32bits(value))
}

func (f *atomicFloat32) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}

// strip is the control state of one channel (or the master bus). Every
// field is an independently observable atomic: written only by the control
// plane, read once per period by the audio callback. routed goes the other
// way, it is written from the audio backend's connection notifications.
type strip struct {
	level      atomicFloat32
	balance    atomicFloat32
	mute       atomic.Bool
	solo       atomic.Bool
	mono       atomic.Bool
	phase      atomic.Bool
	routed     atomic.Bool
	dpmEnabled atomic.Bool

	dpm [2]peakState
}

// reset restores the user-settable control fields. Metering enablement and
// the derived routed flag are not user state and are left alone.
func (s *strip) reset() {
	s.level.Store(defaultLevel)
	s.balance.Store(defaultBalance)
	s.mute.Store(false)
	s.solo.Store(false)
	s.mono.Store(false)
	s.phase.Store(false)
}

func clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}
