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
package app

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"fox-mixer/audio"
	"fox-mixer/display"
	"fox-mixer/mixer"
	"fox-mixer/model"
	"fox-mixer/osc"
	"fox-mixer/reaper"
	"fox-mixer/shared"
)

type displayObj struct {
	tui *display.Tui
}

var (
	displayHandle displayObj
	audioServer   *audio.JackServer
	mixerHandle   *mixer.Mixer
	oscRegistry   *osc.Registry
	captureFile   *audio.CaptureFile

	// preallocated leg buffer views, repopulated every period
	inputBuffers [][]float32

	transportCapture bool
)

func ConfigureTextLogger() {
	// text logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(slog.LevelDebug),
	}))
	slog.SetDefault(logger)
}

func ConfigureTuiLogger() {
	handler := shared.NewTuiLogHandler(displayHandle.tui, slog.LevelDebug, func(message string) {
		displayHandle.tui.IncrementErrorCount()
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	shared.HijackLogging()
	shared.EnableSlogLogging()
}

func runEngine(config *model.Config, profile *model.Profile, simulationOptions *model.SimulationOptions) {
	displayHandle.tui = display.NewTui()
	displayHandle.tui.Initalize()
	displayHandle.tui.SetTransportStatus(display.StatusStarting)
	displayHandle.tui.Start()
	reaper.Callback("tui", displayHandle.tui.Shutdown)

	ConfigureTuiLogger()

	channels := profile.Mixer.Channels

	mixerHandle = mixer.New(channels)
	displayHandle.tui.SetChannelCount(channels)
	displayHandle.tui.SetProfileName(argProfileName)

	// osc client registry, preseeded from the profile
	oscRegistry = &osc.Registry{}
	for _, address := range profile.Osc.Clients {
		oscRegistry.Add(address)
	}
	displayHandle.tui.SetOscClientCount(len(oscRegistry.Addresses()))

	broadcaster := osc.NewBroadcaster(mixerHandle, oscRegistry, time.Duration(profile.Osc.BroadcastIntervalMs)*time.Millisecond)
	broadcaster.Start()

	statsShutdownChan := initStatistics(profile)
	reaper.Callback("stats", func() { statsShutdownChan <- true })

	shared.CatchSigint(func() {
		slog.Info("Caught sigint, calling reaper")
		reaper.Reap()
	})

	if !simulationOptions.EnableSimulation {
		audioServer = audio.NewServer(config, profile)
		audioServer.SetErrorCallback(jackError)
		audioServer.SetInfoCallback(jackInfo)

		if profile.AudioServer.AutoStart {
			audioServer.StartServer()
			reaper.Callback("stop jack server", audioServer.StopServer)
		}

		if err := audioServer.Connect(); err != nil {
			slog.Error("Failed to connect to JACK server: " + err.Error())
			displayHandle.tui.SetTransportStatus(display.StatusFailed)
			reaper.Reap()
			reaper.Wait()
			return
		}

		reaper.Callback("disconnect jack server", audioServer.Disconnect)

		inputBuffers = make([][]float32, channels*2)

		audioServer.RegisterPorts()

		// set callbacks
		audioServer.SetProcessCallback(jackProcess)
		audioServer.SetXrunCallback(jackXrun)
		audioServer.SetShutdownCallback(func() { jackShutdown(audioServer) })

		audioServer.SetRoutedSink(func(channel int, routed bool) {
			mixerHandle.SetRouted(channel, routed)
			displayHandle.tui.SetChannelRouted(channel, routed)
		})

		if profile.Capture.Enabled {
			var err error
			captureFile, err = audio.NewCaptureFile(
				profile.Capture.Directory,
				profile.AudioServer.SampleRate,
				profile.Capture.BitDepth,
				profile.Capture.BufferSizeSeconds)

			if err != nil {
				slog.Error("Failed to create capture file: " + err.Error())
			} else {
				startDiskWriter(profile)
				reaper.Callback("close capture file", captureFile.Close)
				displayHandle.tui.SetCaptureFile(captureFile.FilePath)
				transportCapture = true
			}
		}

		audioServer.ActivateClient()
		audioServer.ConnectPorts(true, profile.AudioServer.ConnectOutputs)

		sampleRateStr := strconv.FormatFloat(float64(audioServer.GetSampleRate())/1000.0, 'f', -1, 64)
		displayHandle.tui.SetAudioFormat(fmt.Sprintf("%d x 2 in / %sKHz", channels, sampleRateStr))

		if transportCapture {
			displayHandle.tui.SetTransportStatus(display.StatusCapturing)
		} else {
			displayHandle.tui.SetTransportStatus(display.StatusMixing)
		}
	}

	if simulationOptions.EnableSimulation {
		displayHandle.tui.SetAudioFormat(fmt.Sprintf("%d x 2 in / simulated", channels))
		displayHandle.tui.SetTransportStatus(display.StatusMixing)
		startSimulation(profile, simulationOptions)
	}

	reaper.Callback("shutdown status", func() {
		transportCapture = false
		displayHandle.tui.SetTransportStatus(display.StatusShuttingDown)
	})
	reaper.Wait()
}
