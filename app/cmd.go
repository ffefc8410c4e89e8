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
	"log/slog"
	"os"

	"fox-mixer/model"
	"fox-mixer/util"

	"github.com/spf13/cobra"
)

var (
	// arguments
	argSimulate             bool
	argSimulateChannelCount int
	argSimulateFreezeMeters bool
	argProfileName          string
	argConfigFile           string

	rootCmd = &cobra.Command{
		Use:   "fox-mixer",
		Short: "Start a stereo summing mixer session",

		Run: func(cmd *cobra.Command, args []string) {
			if argProfileName == "" && !argSimulate {
				slog.Error("Profile not specified but is REQUIRED. See fox-mixer --help for more info")
				os.Exit(1)
			}

			config := util.ReadConfig(argConfigFile)

			var profile *model.Profile

			if argProfileName != "" {
				profile = util.ReadProfile(argProfileName)
			} else {
				// simulation without a profile runs on defaults
				profile = &model.Profile{}
				profile.Mixer.Channels = argSimulateChannelCount
				profile.Osc.BroadcastIntervalMs = 100
				profile.AudioServer.SampleRate = 48000
				profile.AudioServer.FramesPerPeriod = 1024
			}

			simulationOptions := &model.SimulationOptions{
				EnableSimulation: argSimulate,
				FreezeMeters:     argSimulateFreezeMeters,
				ChannelCount:     argSimulateChannelCount,
			}

			// simulation can also be forced from the config file
			if config.SimulationOptions != nil && config.SimulationOptions.EnableSimulation {
				simulationOptions = config.SimulationOptions

				if simulationOptions.ChannelCount <= 0 {
					simulationOptions.ChannelCount = argSimulateChannelCount
				}
			}

			runEngine(config, profile, simulationOptions)
		},
	}
)

func init() {
	// ui test commands
	rootCmd.Flags().BoolVar(&argSimulate, "simulate", false, "Run without a JACK server, feeding synthetic audio to the mixer")
	rootCmd.Flags().BoolVar(&argSimulateFreezeMeters, "simulate-freeze-meters", false, "Freeze the meters after the first simulated period")
	rootCmd.Flags().IntVar(&argSimulateChannelCount, "simulate-channel-count", 16, "Number of channels to simulate in UI test")

	rootCmd.Flags().StringVarP(&argProfileName, "profile", "p", "", "Name or path of the profile to load, REQUIRED")
	rootCmd.Flags().StringVar(&argConfigFile, "config", "", "Path to an alternate config file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
