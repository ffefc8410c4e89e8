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
	"fmt"
	"testing"
)

func TestAddDeduplicates(t *testing.T) {
	registry := &Registry{}

	first := registry.Add("10.0.0.5")
	if first < 0 {
		t.Fatalf("Add returned %d, expected a slot index", first)
	}

	second := registry.Add("10.0.0.5")
	if second != first {
		t.Errorf("re-adding returned %d, expected existing index %d", second, first)
	}

	if got := len(registry.Addresses()); got != 1 {
		t.Errorf("registry holds %d entries after duplicate add, expected 1", got)
	}
}

func TestRemoveThenReAdd(t *testing.T) {
	registry := &Registry{}

	registry.Add("10.0.0.5")
	registry.Remove("10.0.0.5")

	if got := len(registry.Addresses()); got != 0 {
		t.Fatalf("registry holds %d entries after remove, expected 0", got)
	}

	// removing an unknown address is a no-op
	registry.Remove("192.168.1.1")

	if index := registry.Add("10.0.0.5"); index < 0 {
		t.Errorf("re-add after remove returned %d, expected a slot index", index)
	}
}

func TestCapacityBound(t *testing.T) {
	registry := &Registry{}

	for i := 0; i < MaxClients; i++ {
		if index := registry.Add(fmt.Sprintf("10.0.0.%d", i)); index < 0 {
			t.Fatalf("Add failed at %d before capacity", i)
		}
	}

	if index := registry.Add("10.0.1.1"); index != -1 {
		t.Errorf("Add beyond capacity returned %d, expected -1", index)
	}

	// freeing one slot makes room again
	registry.Remove("10.0.0.3")

	if index := registry.Add("10.0.1.1"); index != 3 {
		t.Errorf("Add into freed slot returned %d, expected 3", index)
	}
}

func TestEmptyAddressRefused(t *testing.T) {
	registry := &Registry{}

	if index := registry.Add(""); index != -1 {
		t.Errorf("Add(\"\") returned %d, expected -1", index)
	}
}

func TestClear(t *testing.T) {
	registry := &Registry{}

	registry.Add("10.0.0.1")
	registry.Add("10.0.0.2")
	registry.Clear()

	if got := len(registry.Addresses()); got != 0 {
		t.Errorf("registry holds %d entries after Clear, expected 0", got)
	}
}
