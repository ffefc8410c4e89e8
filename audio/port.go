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
package audio

import (
	"unsafe"

	"github.com/xthexder/go-jack"
)

type PortDirection int8

const (
	In PortDirection = iota
	Out
)

// Port pairs a registered JACK port with the mixer channel and stereo leg
// it feeds. connections counts active upstream links and is maintained by
// the server's port-connect callback.
type Port struct {
	portDirection PortDirection
	myName        string
	jackName      string // hardware port this one is offered from, may be empty
	channel       int
	leg           int

	connections int
	jackPort    *jack.Port
}

func newPort(direction PortDirection, myName string, jackName string, channel int, leg int) *Port {
	return &Port{
		portDirection: direction,
		myName:        myName,
		jackName:      jackName,
		channel:       channel,
		leg:           leg,
	}
}

func (port *Port) setJackPort(jackPort *jack.Port) {
	port.jackPort = jackPort
}

func (port *Port) GetJackPort() *jack.Port {
	return port.jackPort
}

func (port *Port) GetChannel() int {
	return port.channel
}

// Samples exposes the port's current period buffer as a float32 slice.
// jack.AudioSample is a float32 underneath; reslicing through unsafe avoids
// a per-period copy on the realtime path.
func (port *Port) Samples(nframes uint32) []float32 {
	buffer := port.jackPort.GetBuffer(nframes)

	if len(buffer) == 0 {
		return nil
	}

	return unsafe.Slice((*float32)(unsafe.Pointer(&buffer[0])), len(buffer))
}
