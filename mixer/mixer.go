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

// Package mixer implements the summing mixer core: a fixed set of stereo
// channel strips plus one master bus, a per-period mixing engine and peak
// meters. The control API below runs on ordinary goroutines; Process runs
// on the audio callback and never blocks, allocates or takes a lock. Each
// shared field is its own atomic scalar, so neither side can stall the
// other.
package mixer

// Leg selects one side of a stereo pair.
type Leg int

const (
	LegA Leg = iota // left
	LegB            // right
)

// Mixer owns all channel and meter state. The strip array is allocated
// once by New and never resized, so the audio callback never observes a
// structural change.
type Mixer struct {
	strips []strip // strips[len-1] is the master bus
}

// New builds a mixer with the given channel capacity plus one master slot.
func New(channels int) *Mixer {
	if channels < 1 {
		channels = 1
	}

	m := &Mixer{
		strips: make([]strip, channels+1),
	}

	for i := range m.strips {
		m.strips[i].reset()
		m.strips[i].dpmEnabled.Store(true)
	}

	return m
}

// ChannelCount returns the fixed channel capacity, excluding the master bus.
func (m *Mixer) ChannelCount() int {
	return len(m.strips) - 1
}

// strip resolves a channel index. Any index at or above the channel
// capacity (the boundary index included) addresses the master slot.
// Negative indices resolve to nil and the calling accessor is a no-op,
// since the control path must never fault.
func (m *Mixer) strip(channel int) *strip {
	if channel < 0 {
		return nil
	}

	if channel >= m.ChannelCount() {
		return m.master()
	}

	return &m.strips[channel]
}

func (m *Mixer) master() *strip {
	return &m.strips[len(m.strips)-1]
}

// SetLevel sets a channel fader (0..1). Out-of-range values are clamped
// rather than rejected so a control surface call can never fail
// mid-performance.
func (m *Mixer) SetLevel(channel int, level float32) {
	if s := m.strip(channel); s != nil {
		s.level.Store(clamp(level, 0.0, 1.0))
	}
}

// GetLevel returns a channel fader level (0..1).
func (m *Mixer) GetLevel(channel int) float32 {
	if s := m.strip(channel); s != nil {
		return s.level.Load()
	}

	return 0
}

// SetBalance sets a channel's stereo balance (-1..1, clamped).
func (m *Mixer) SetBalance(channel int, balance float32) {
	if s := m.strip(channel); s != nil {
		s.balance.Store(clamp(balance, -1.0, 1.0))
	}
}

// GetBalance returns a channel's stereo balance (-1..1).
func (m *Mixer) GetBalance(channel int) float32 {
	if s := m.strip(channel); s != nil {
		return s.balance.Load()
	}

	return 0
}

// SetMute sets a channel's explicit mute flag.
func (m *Mixer) SetMute(channel int, mute bool) {
	if s := m.strip(channel); s != nil {
		s.mute.Store(mute)
	}
}

// GetMute returns a channel's explicit mute flag. A channel silenced only
// by another channel's solo still reports false here.
func (m *Mixer) GetMute(channel int) bool {
	if s := m.strip(channel); s != nil {
		return s.mute.Load()
	}

	return false
}

// ToggleMute flips a channel's mute flag. The mute field is single-writer
// (control plane), so load-then-store is race free.
func (m *Mixer) ToggleMute(channel int) {
	if s := m.strip(channel); s != nil {
		s.mute.Store(!s.mute.Load())
	}
}

// SetSolo sets a channel's solo flag. While any channel is soloed, every
// non-solo channel is silenced in the mix without touching its stored mute
// flag. Solo on the master slot is stored but has no effect on the mix.
func (m *Mixer) SetSolo(channel int, solo bool) {
	if s := m.strip(channel); s != nil {
		s.solo.Store(solo)
	}
}

// GetSolo returns a channel's solo flag.
func (m *Mixer) GetSolo(channel int) bool {
	if s := m.strip(channel); s != nil {
		return s.solo.Load()
	}

	return false
}

// SetMono sets whether the channel's two input legs are averaged into a
// mono signal before panning.
func (m *Mixer) SetMono(channel int, mono bool) {
	if s := m.strip(channel); s != nil {
		s.mono.Store(mono)
	}
}

// GetMono returns a channel's mono-sum flag.
func (m *Mixer) GetMono(channel int) bool {
	if s := m.strip(channel); s != nil {
		return s.mono.Load()
	}

	return false
}

// SetPhase sets whether the channel's signal is phase reversed before
// mixing.
func (m *Mixer) SetPhase(channel int, phase bool) {
	if s := m.strip(channel); s != nil {
		s.phase.Store(phase)
	}
}

// GetPhase returns a channel's phase-reverse flag.
func (m *Mixer) GetPhase(channel int) bool {
	if s := m.strip(channel); s != nil {
		return s.phase.Load()
	}

	return false
}

// Reset restores one channel to its defaults: level 0.8, balance centered,
// mute/solo/mono/phase all off. Other channels are untouched.
func (m *Mixer) Reset(channel int) {
	if s := m.strip(channel); s != nil {
		s.reset()
	}
}

// IsChannelRouted reports whether the channel's input has an active
// upstream connection. The flag is derived from the audio backend's
// connection notifications and is read-only for callers.
func (m *Mixer) IsChannelRouted(channel int) bool {
	if s := m.strip(channel); s != nil {
		return s.routed.Load()
	}

	return false
}

// SetRouted records a channel's upstream connection presence. Only the
// audio backend glue should call this.
func (m *Mixer) SetRouted(channel int, routed bool) {
	if s := m.strip(channel); s != nil {
		s.routed.Store(routed)
	}
}
