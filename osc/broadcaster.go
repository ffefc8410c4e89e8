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
	"log/slog"
	"time"

	"fox-mixer/mixer"
	"fox-mixer/reaper"

	gosc "github.com/hypebeast/go-osc/osc"
)

// Port is the UDP port state updates are pushed to on every subscriber.
const Port = 1370

// Broadcaster periodically snapshots the mixer state and fans it out to
// every registered client. The tick is independent of the audio period and
// runs on an ordinary goroutine.
type Broadcaster struct {
	mixer    *mixer.Mixer
	registry *Registry
	interval time.Duration

	states []mixer.DpmState // reused between ticks
}

func NewBroadcaster(m *mixer.Mixer, registry *Registry, interval time.Duration) *Broadcaster {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	return &Broadcaster{
		mixer:    m,
		registry: registry,
		interval: interval,
		states:   make([]mixer.DpmState, m.ChannelCount()+1),
	}
}

// Start launches the broadcast loop. It runs until the reaper requests
// shutdown.
func (b *Broadcaster) Start() {
	reaper.Register("osc broadcaster")

	go func() {
		t := time.NewTicker(b.interval)
		defer t.Stop()

		for range t.C {
			if reaper.Reaped() {
				break
			}

			b.broadcast()
		}

		reaper.Done("osc broadcaster")
	}()
}

func (b *Broadcaster) broadcast() {
	addresses := b.registry.Addresses()
	if len(addresses) == 0 {
		return
	}

	messages := b.snapshot()

	for _, address := range addresses {
		client := gosc.NewClient(address, Port)

		for _, message := range messages {
			if err := client.Send(message); err != nil {
				slog.Warn(fmt.Sprintf("osc: send to %s failed: %s", address, err.Error()))
				break
			}
		}
	}
}

// snapshot encodes the full mixer state as OSC messages: every channel in
// index order, then the master bus. Booleans go out as int32 0/1, meters as
// one message carrying peak and held values for both legs.
func (b *Broadcaster) snapshot() []*gosc.Message {
	channels := b.mixer.ChannelCount()

	// the inclusive range ending at ChannelCount() covers master too
	count := b.mixer.GetDpmStates(0, channels, b.states)

	messages := make([]*gosc.Message, 0, count*7)

	for i := 0; i < count; i++ {
		state := b.states[i]

		messages = append(messages,
			newMessage(fmt.Sprintf("/mixer/fader%d", i), b.mixer.GetLevel(i)),
			newMessage(fmt.Sprintf("/mixer/balance%d", i), b.mixer.GetBalance(i)),
			newMessage(fmt.Sprintf("/mixer/mute%d", i), flagValue(b.mixer.GetMute(i))),
			newMessage(fmt.Sprintf("/mixer/solo%d", i), flagValue(b.mixer.GetSolo(i))),
			newMessage(fmt.Sprintf("/mixer/mono%d", i), flagValue(b.mixer.GetMono(i))),
			newMessage(fmt.Sprintf("/mixer/phase%d", i), flagValue(b.mixer.GetPhase(i))),
			newMessage(fmt.Sprintf("/mixer/dpm%d", i), state.LegA, state.LegB, state.HoldA, state.HoldB),
		)
	}

	return messages
}

func newMessage(address string, arguments ...interface{}) *gosc.Message {
	message := gosc.NewMessage(address)

	for _, argument := range arguments {
		message.Append(argument)
	}

	return message
}

func flagValue(flag bool) int32 {
	if flag {
		return 1
	}

	return 0
}
