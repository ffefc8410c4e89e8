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

// Package reaper coordinates shutdown: background loops register
// themselves and poll Reaped, teardown callbacks run LIFO when Reap is
// called, and Wait blocks until every registered loop has drained.
package reaper

import (
	"log/slog"
	"slices"
	"sync"
)

type callback struct {
	name         string
	callbackFunc func()
}

var (
	mutex         sync.Mutex
	reapRequested chan bool
	callbacks     []callback
	registrations []string
	waitgroup     sync.WaitGroup
)

func init() {
	reapRequested = make(chan bool, 1)
	callbacks = make([]callback, 0)
	registrations = make([]string, 0)
}

// Reaped reports whether shutdown has been requested. Cheap enough to poll
// from ticker loops.
func Reaped() bool {
	return len(reapRequested) > 0
}

// Reap requests shutdown and runs the registered callbacks in reverse
// registration order. Calling it more than once is harmless.
func Reap() {
	mutex.Lock()
	defer mutex.Unlock()

	if len(reapRequested) > 0 {
		return
	}

	reapRequested <- true

	reversed := slices.Clone(callbacks)
	slices.Reverse(reversed)

	for _, cb := range reversed {
		slog.Info("reaper: calling reap callback for '" + cb.name + "'")
		cb.callbackFunc()
	}
}

// Callback registers a teardown function. Callbacks run LIFO during Reap,
// so register in bring-up order.
func Callback(name string, callbackFunc func()) {
	mutex.Lock()
	defer mutex.Unlock()

	callbacks = append(callbacks, callback{
		name:         name,
		callbackFunc: callbackFunc,
	})
}

// Register announces a background loop that Wait must block on until the
// loop calls Done.
func Register(name string) {
	mutex.Lock()
	defer mutex.Unlock()

	if slices.Contains(registrations, name) {
		slog.Warn("reaper: already registered '" + name + "'")
		return
	}

	registrations = append(registrations, name)
	waitgroup.Add(1)
	slog.Debug("reaper: registered '" + name + "'")
}

// Done marks a registered loop as drained.
func Done(name string) {
	mutex.Lock()
	defer mutex.Unlock()

	if !slices.Contains(registrations, name) {
		slog.Warn("reaper: already done or doesn't exist: '" + name + "'")
		return
	}

	registrations = slices.DeleteFunc(registrations, func(test string) bool {
		return test == name
	})

	slog.Debug("reaper: done: '" + name + "'")
	waitgroup.Done()
}

// Wait blocks until every registered loop has called Done.
func Wait() {
	waitgroup.Wait()
}
