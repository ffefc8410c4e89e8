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
package osc

import (
	"testing"
	"time"

	"fox-mixer/mixer"
)

func TestSnapshotCoversChannelsAndMaster(t *testing.T) {
	m := mixer.New(4)
	b := NewBroadcaster(m, &Registry{}, 100*time.Millisecond)

	messages := b.snapshot()

	// seven messages per channel plus seven for master
	expected := (m.ChannelCount() + 1) * 7
	if len(messages) != expected {
		t.Fatalf("snapshot produced %d messages, expected %d", len(messages), expected)
	}

	if messages[0].Address != "/mixer/fader0" {
		t.Errorf("first message address = %s, expected /mixer/fader0", messages[0].Address)
	}

	lastChannel := messages[len(messages)-7]
	if lastChannel.Address != "/mixer/fader4" {
		t.Errorf("master fader address = %s, expected /mixer/fader4", lastChannel.Address)
	}
}

func TestSnapshotEncodesState(t *testing.T) {
	m := mixer.New(2)
	m.SetLevel(0, 0.5)
	m.SetMute(0, true)

	b := NewBroadcaster(m, &Registry{}, 100*time.Millisecond)
	messages := b.snapshot()

	fader := messages[0]
	if got := fader.Arguments[0].(float32); got != 0.5 {
		t.Errorf("fader0 argument = %v, expected 0.5", got)
	}

	mute := messages[2]
	if mute.Address != "/mixer/mute0" {
		t.Fatalf("message 2 address = %s, expected /mixer/mute0", mute.Address)
	}
	if got := mute.Arguments[0].(int32); got != 1 {
		t.Errorf("mute0 argument = %v, expected 1", got)
	}

	dpm := messages[6]
	if dpm.Address != "/mixer/dpm0" {
		t.Fatalf("message 6 address = %s, expected /mixer/dpm0", dpm.Address)
	}
	if len(dpm.Arguments) != 4 {
		t.Errorf("dpm0 carries %d arguments, expected 4 (peak and held for both legs)", len(dpm.Arguments))
	}
}
