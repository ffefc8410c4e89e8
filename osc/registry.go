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

// Package osc keeps the list of subscribed OSC clients and periodically
// pushes the full mixer state to each of them. Nothing in this package ever
// runs on the audio callback, so plain mutual exclusion is fine here.
package osc

import (
	"log/slog"
	"sync"
)

// MaxClients bounds the registry. Subscribers beyond this are refused.
const MaxClients = 8

// Registry is a bounded, deduplicated list of subscriber addresses.
// Multiple control-plane goroutines may add and remove concurrently; the
// broadcaster only reads.
type Registry struct {
	mutex   sync.Mutex
	clients [MaxClients]string // empty string marks a free slot
}

// Add registers a subscriber address and returns its slot index. Adding an
// address that is already present is a no-op returning the existing index,
// so subscribers may re-announce themselves freely. Returns -1 only when
// the registry is full.
func (r *Registry) Add(address string) int {
	if address == "" {
		return -1
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	free := -1

	for i, client := range r.clients {
		if client == address {
			return i
		}

		if client == "" && free == -1 {
			free = i
		}
	}

	if free == -1 {
		slog.Warn("osc: client registry full, refusing " + address)
		return -1
	}

	r.clients[free] = address
	slog.Info("osc: registered client " + address)

	return free
}

// Remove unregisters a subscriber address. Unknown addresses are a no-op.
func (r *Registry) Remove(address string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, client := range r.clients {
		if client == address {
			r.clients[i] = ""
			slog.Info("osc: removed client " + address)
			return
		}
	}
}

// Addresses returns a snapshot of the registered addresses in slot order.
func (r *Registry) Addresses() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	addresses := make([]string, 0, MaxClients)

	for _, client := range r.clients {
		if client != "" {
			addresses = append(addresses, client)
		}
	}

	return addresses
}

// Clear empties the registry; called on teardown.
func (r *Registry) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i := range r.clients {
		r.clients[i] = ""
	}
}
