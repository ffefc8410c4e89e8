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
	"os"
	"path"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// CaptureFile records the master bus to a stereo WAV file. The audio
// callback pushes interleaved frames into the buffer channel without
// blocking; the disk writer goroutine drains it.
type CaptureFile struct {
	FilePath     string
	FileHandle   *os.File
	Encoder      *wav.Encoder
	ChannelCount int
	BitDepth     int
	SampleRate   int

	buffer chan float32
}

// NewCaptureFile creates a timestamped stereo WAV in the capture directory
// with a buffer sized to hold bufferSeconds of interleaved audio.
func NewCaptureFile(directory string, sampleRate int, bitDepth int, bufferSeconds float64) (*CaptureFile, error) {
	filePath := path.Join(directory, time.Now().Format("master_150405.wav"))

	fileHandle, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}

	capture := &CaptureFile{
		FilePath:     filePath,
		FileHandle:   fileHandle,
		Encoder:      wav.NewEncoder(fileHandle, sampleRate, bitDepth, 2, 1),
		ChannelCount: 2,
		BitDepth:     bitDepth,
		SampleRate:   sampleRate,
		buffer:       make(chan float32, int(bufferSeconds*float64(sampleRate))*2),
	}

	return capture, nil
}

// WriteBuffer is the interleaved frame channel the audio callback feeds.
func (cf *CaptureFile) WriteBuffer() chan float32 {
	return cf.buffer
}

// PushFrame queues one stereo frame. Never blocks: when the disk writer
// falls behind and the buffer fills, the frame is dropped, because the
// audio callback cannot wait.
func (cf *CaptureFile) PushFrame(sampleA float32, sampleB float32) {
	if len(cf.buffer)+2 > cap(cf.buffer) {
		return
	}

	cf.buffer <- sampleA
	cf.buffer <- sampleB
}

func (cf *CaptureFile) Write(buf *audio.IntBuffer) error {
	return cf.Encoder.Write(buf)
}

func (cf *CaptureFile) Close() {
	if cf.Encoder != nil {
		cf.Encoder.Close()
	}

	if cf.FileHandle != nil {
		cf.FileHandle.Close()
	}
}
