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
package util

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"fox-mixer/model"

	"gopkg.in/yaml.v2"
)

const configFileName = "fox-mixer.yml"

// ReadYamlFile unmarshals the named yaml file into cfg, searching (in
// order) the absolute path, a home-relative path, the binary sidecar
// directory, the working directory and ~/.config/fox.
func ReadYamlFile(cfg interface{}, fileName string) error {
	filePath := resolveYamlPath(fileName)

	if filePath == "" {
		return errors.New("no yaml file found: " + fileName)
	}

	slog.Info("Reading yaml from " + filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(content, cfg)
}

func resolveYamlPath(fileName string) string {
	if path.IsAbs(fileName) {
		return fileName
	}

	if testFilePath, err := ResolveHomeDirPath(fileName); err == nil && FileExists(testFilePath) {
		return testFilePath
	}

	// check path where executable lives
	binPath, _ := os.Executable()
	sidecarPath := path.Join(filepath.Dir(binPath), fileName)

	if FileExists(sidecarPath) {
		return sidecarPath
	}

	// check working directory
	cwd, _ := os.Getwd()
	cwdSidecarPath := path.Join(cwd, fileName)

	if FileExists(cwdSidecarPath) {
		return cwdSidecarPath
	}

	// check user config directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeDotConfigPath := path.Join(homeDir, ".config", "fox", fileName)

	if FileExists(homeDotConfigPath) {
		return homeDotConfigPath
	}

	return ""
}

// ReadConfig loads the global config file, falling back to defaults when
// none is found.
func ReadConfig(fileName string) *model.Config {
	if fileName == "" {
		fileName = configFileName
	}

	config := &model.Config{}

	if err := ReadYamlFile(config, fileName); err != nil {
		slog.Info("No config file found, using defaults")
	}

	if config.JackClientName == "" {
		config.JackClientName = "fox-mixer"
	}

	if config.JackdBinary == "" {
		config.JackdBinary = FindJackdBinary()
	}

	return config
}
