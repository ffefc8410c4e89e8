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
	"bufio"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"fox-mixer/model"

	"github.com/xthexder/go-jack"
)

// JackServer wraps the connection to a JACK server: two input ports per
// mixer channel, two master output ports, and the callbacks the engine
// hangs off of.
type JackServer struct {
	clientName string
	config     *model.Config
	profile    *model.Profile

	inputPorts  []*Port // 2 per channel: in_<N>_a, in_<N>_b
	outputPorts []*Port // master legs: out_a, out_b

	jackClient *jack.Client
	cmd        *exec.Cmd

	routedSink func(channel int, routed bool)
}

func NewServer(config *model.Config, profile *model.Profile) *JackServer {
	channels := profile.Mixer.Channels

	server := &JackServer{
		clientName:  config.JackClientName,
		config:      config,
		profile:     profile,
		inputPorts:  make([]*Port, 0, channels*2),
		outputPorts: make([]*Port, 0, 2),
	}

	prefix := profile.AudioServer.HardwarePortConnectionPrefix

	for channel := 0; channel < channels; channel++ {
		server.inputPorts = append(server.inputPorts,
			newPort(In, fmt.Sprintf("in_%d_a", channel+1), fmt.Sprintf("%s%d", prefix, channel*2+1), channel, 0),
			newPort(In, fmt.Sprintf("in_%d_b", channel+1), fmt.Sprintf("%s%d", prefix, channel*2+2), channel, 1),
		)
	}

	server.outputPorts = append(server.outputPorts,
		newPort(Out, "out_a", "system:playback_1", channels, 0),
		newPort(Out, "out_b", "system:playback_2", channels, 1),
	)

	return server
}

// StartServer spawns jackd and blocks until the driver reports running.
// Only used when the profile asks for auto start.
func (server *JackServer) StartServer() {
	ready := make(chan bool)

	go func() {
		slog.Info("Starting JACK server...")

		args := make([]string, 0)

		if server.config.VerboseJackServer {
			args = append(args, "-v")
		}

		for _, part := range server.profile.AudioServer.Interface {
			args = append(args, fmt.Sprintf("-d%s", part))
		}

		args = append(args,
			fmt.Sprintf("-r%d", server.profile.AudioServer.SampleRate),
			fmt.Sprintf("-p%d", server.profile.AudioServer.FramesPerPeriod),
		)

		server.cmd = exec.Command(server.config.JackdBinary, args...)

		stdout, err := server.cmd.StdoutPipe()
		if err != nil {
			slog.Error("Error occurred connecting to jackd output: " + err.Error())
			return
		}

		if err = server.cmd.Start(); err != nil {
			slog.Error("Error occurred starting jackd: " + err.Error())
			return
		}

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()

			slog.Debug(line)

			if strings.Contains(line, "driver is running...") {
				ready <- true
			}
		}
	}()

	<-ready
}

// StopServer kills a jackd instance spawned by StartServer.
func (server *JackServer) StopServer() {
	if server == nil || server.cmd == nil {
		return
	}

	server.cmd.Process.Kill()
	server.cmd.Wait()
}

// Connect opens the JACK client. Every other method on this type requires
// a successful Connect first.
func (server *JackServer) Connect() error {
	slog.Info("Connecting to JACK server")

	var jackStatus int
	server.jackClient, jackStatus = jack.ClientOpen(server.clientName, jack.NoStartServer)

	if jackStatus != 0 {
		return fmt.Errorf("JACK Status: %s", jack.StrError(jackStatus))
	}

	slog.Info("JACK server connected")

	return nil
}

// Disconnect closes the JACK client, releasing all registered ports.
func (server *JackServer) Disconnect() {
	if server.jackClient != nil {
		server.jackClient.Close()
		server.jackClient = nil
	}
}

func (server *JackServer) GetSampleRate() uint32 {
	return server.jackClient.GetSampleRate()
}

func (server *JackServer) GetFramesPerPeriod() uint32 {
	return server.jackClient.GetBufferSize()
}

func (server *JackServer) GetInputPorts() []*Port {
	return server.inputPorts
}

func (server *JackServer) GetOutputPorts() []*Port {
	return server.outputPorts
}

// RegisterPorts registers every mixer port with JACK.
func (server *JackServer) RegisterPorts() {
	slog.Info("Registering audio ports...")

	for _, port := range server.inputPorts {
		jackPort := server.jackClient.PortRegister(port.myName, jack.DEFAULT_AUDIO_TYPE, jack.PortIsInput, 0)
		port.setJackPort(jackPort)
		slog.Debug("Registered port " + port.myName)
	}

	for _, port := range server.outputPorts {
		jackPort := server.jackClient.PortRegister(port.myName, jack.DEFAULT_AUDIO_TYPE, jack.PortIsOutput, 0)
		port.setJackPort(jackPort)
		slog.Debug("Registered port " + port.myName)
	}
}

func (server *JackServer) SetProcessCallback(callback func(nframes uint32) int) {
	if code := server.jackClient.SetProcessCallback(callback); code != 0 {
		slog.Error(fmt.Sprintf("Failed to set process callback: %s", jack.StrError(code)))
	}
}

func (server *JackServer) SetErrorCallback(callback func(string)) {
	jack.SetErrorFunction(callback)
}

func (server *JackServer) SetInfoCallback(callback func(string)) {
	jack.SetInfoFunction(callback)
}

func (server *JackServer) SetShutdownCallback(callback func()) {
	server.jackClient.OnShutdown(callback)
}

func (server *JackServer) SetXrunCallback(callback func() int) {
	server.jackClient.SetXRunCallback(callback)
}

// SetRoutedSink wires connection-presence notifications into the mixer.
// The callback fires off the audio path whenever a channel gains its first
// upstream connection or loses its last one.
func (server *JackServer) SetRoutedSink(sink func(channel int, routed bool)) {
	server.routedSink = sink

	if code := server.jackClient.SetPortConnectCallback(server.portsConnected); code != 0 {
		slog.Error(fmt.Sprintf("Failed to set port connect callback: %s", jack.StrError(code)))
	}
}

// portsConnected maintains per-port connection counts and recomputes the
// owning channel's routed state. JACK invokes this from its notification
// thread, never from the process callback.
func (server *JackServer) portsConnected(portIdA, portIdB jack.PortId, connected bool) {
	for _, id := range []jack.PortId{portIdA, portIdB} {
		jackPort := server.jackClient.GetPortById(id)
		if jackPort == nil {
			continue
		}

		name := jackPort.GetName()

		for _, port := range server.inputPorts {
			if name != fmt.Sprintf("%s:%s", server.clientName, port.myName) {
				continue
			}

			if connected {
				port.connections++
			} else if port.connections > 0 {
				port.connections--
			}

			server.notifyRouted(port.channel)
		}
	}
}

func (server *JackServer) notifyRouted(channel int) {
	if server.routedSink == nil {
		return
	}

	connections := 0

	for _, port := range server.inputPorts {
		if port.channel == channel {
			connections += port.connections
		}
	}

	server.routedSink(channel, connections > 0)
}

func (server *JackServer) ActivateClient() {
	if code := server.jackClient.Activate(); code != 0 {
		slog.Error(fmt.Sprintf("Failed to activate client: %s", jack.StrError(code)))
	}
}

// ConnectPorts offers every input port its hardware capture port and,
// when the profile asks for it, wires the master outputs to playback.
func (server *JackServer) ConnectPorts(connectInput bool, connectOutput bool) {
	slog.Info("Connecting audio ports")

	if connectInput {
		for _, port := range server.inputPorts {
			inName := port.jackName
			outName := fmt.Sprintf("%s:%s", server.clientName, port.myName)

			slog.Debug(fmt.Sprintf("Connecting port %s to port %s", inName, outName))
			server.jackClient.Connect(inName, outName)
		}
	}

	if connectOutput {
		for _, port := range server.outputPorts {
			inName := fmt.Sprintf("%s:%s", server.clientName, port.myName)
			outName := port.jackName

			slog.Debug(fmt.Sprintf("Connecting port %s to port %s", inName, outName))
			server.jackClient.Connect(inName, outName)
		}
	}
}

// InputBuffers fills in with one leg buffer per slot (2 per channel) for
// the current period. in must be preallocated; this runs on the audio
// callback.
func (server *JackServer) InputBuffers(nframes uint32, in [][]float32) {
	for i, port := range server.inputPorts {
		if i >= len(in) {
			break
		}

		in[i] = port.Samples(nframes)
	}
}

// OutputBuffers returns the master output leg buffers for the current
// period. Runs on the audio callback.
func (server *JackServer) OutputBuffers(nframes uint32) (outA, outB []float32) {
	return server.outputPorts[0].Samples(nframes), server.outputPorts[1].Samples(nframes)
}
