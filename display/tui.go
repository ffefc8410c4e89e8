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
package display

import (
	"fmt"
	"log/slog"
	"time"

	"fox-mixer/display/custom"
	"fox-mixer/display/theme"
	"fox-mixer/model"
	"fox-mixer/reaper"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

//
// constants
//

const (
	layoutMeterWidth            = 4
	layoutStatusItemHeaderWidth = 18
	layoutStatusColumnIndex     = 0
	layoutMeterColumnIndex      = 1
	layoutStatusGridLeftWidth   = 51
	layoutStatusGridRightWidth  = 55
)

//
// variables
//

var (
	meterSteps = []int{
		0, -1, -2, -3, -4, -6, -8,
		-10, -12, -15, -18, -21, -24, -27,
		-30, -36, -42, -48, -54, -60}

	levelColors = map[int]tcell.Color{
		0:    theme.Red,
		-2:   theme.Pink,
		-6:   theme.Yellow,
		-18:  theme.Green,
		-150: theme.SoftGreen,
	}
)

//
// types
//

// Tui is the meter bridge: one level meter per channel plus the master
// bus, a status block and a scrolling log view.
type Tui struct {
	app             *cview.Application
	shutdownChannel chan bool

	errorCount int

	gridApp            *cview.Grid
	gridLevelMeters    *cview.Grid
	elementLevelMeters []*custom.LevelMeter

	tvLogs            *cview.TextView
	tvTransportStatus *custom.StatusText
	tvFormat          *custom.StatusText
	tvChannels        *custom.StatusText
	tvOscClients      *custom.StatusText
	tvCaptureFile     *custom.StatusText
	tvErrorCount      *custom.StatusText
	tvProfileName     *custom.StatusText

	statusMeterAudioLoad  *custom.StatusMeter
	statusMeterBufferUsed *custom.StatusMeter
}

//
// constructor
//

func NewTui() *Tui {
	tui := &Tui{
		shutdownChannel:    make(chan bool, 1),
		errorCount:         0,
		elementLevelMeters: make([]*custom.LevelMeter, 0),
	}

	return tui
}

//
// lifecycle managment
//

func (tui *Tui) Initalize() {
	tui.app = cview.NewApplication()
	defer tui.app.HandlePanic()

	meterRowHeight := len(meterSteps) + 2

	statusRowCount := 7
	statusRows := make([]int, statusRowCount)
	for i := range statusRowCount {
		statusRows[i] = 1
	}

	//
	// main application grid
	tui.gridApp = cview.NewGrid()
	tui.gridApp.SetPadding(0, 0, 0, 0)
	tui.gridApp.SetColumns(-1)
	tui.gridApp.SetBorders(true)
	tui.gridApp.SetBordersColor(theme.BorderColor)
	tui.gridApp.SetRows(statusRowCount, meterRowHeight, -1)
	tui.gridApp.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	//
	// grid for the status block
	gridStatusMeters := cview.NewGrid()
	gridStatusMeters.SetPadding(0, 0, 1, 1)
	gridStatusMeters.SetColumns(layoutStatusGridLeftWidth, layoutStatusGridRightWidth, -1)
	gridStatusMeters.SetRows(statusRows...)
	gridStatusMeters.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	// text status fields
	tui.tvTransportStatus = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Status", string(theme.RuneClock)+" Starting")
	tui.tvTransportStatus.SetColor(theme.Yellow)
	tui.tvFormat = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Format", "Unknown")
	tui.tvChannels = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Channels", "0")
	tui.tvOscClients = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "OSC Clients", "0")
	tui.tvCaptureFile = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Capture", "disabled")
	tui.tvErrorCount = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Errors", "0")
	tui.tvProfileName = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Profile", "")

	gridStatusMeters.AddItem(tui.tvTransportStatus.GetGrid(), 0, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatusMeters.AddItem(tui.tvFormat.GetGrid(), 1, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatusMeters.AddItem(tui.tvChannels.GetGrid(), 2, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatusMeters.AddItem(tui.tvOscClients.GetGrid(), 3, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatusMeters.AddItem(tui.tvErrorCount.GetGrid(), 4, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatusMeters.AddItem(tui.tvProfileName.GetGrid(), 5, layoutStatusColumnIndex, 1, 1, 0, 0, false)
	gridStatusMeters.AddItem(tui.tvCaptureFile.GetGrid(), statusRowCount-1, layoutStatusColumnIndex, 1, 2, 0, 0, false)

	// progress bar status meters
	tui.statusMeterAudioLoad = custom.NewStatusMeter(layoutStatusItemHeaderWidth, "Audio Load", 0, "%")
	tui.statusMeterBufferUsed = custom.NewStatusMeter(layoutStatusItemHeaderWidth, "Capture Buffer", 0, "%")

	gridStatusMeters.AddItem(tui.statusMeterAudioLoad.GetGrid(), 0, layoutMeterColumnIndex, 1, 1, 0, 0, false)
	gridStatusMeters.AddItem(tui.statusMeterBufferUsed.GetGrid(), 1, layoutMeterColumnIndex, 1, 1, 0, 0, false)

	tui.gridApp.AddItem(gridStatusMeters, 0, 0, 1, 1, 0, 0, false)

	//
	// grid for the level meters
	tui.gridLevelMeters = cview.NewGrid()
	tui.gridLevelMeters.SetPadding(0, 0, 0, 0)
	tui.gridLevelMeters.SetColumns(-1)

	tui.gridApp.AddItem(tui.gridLevelMeters, 1, 0, 1, 1, 0, 0, false)

	//
	// grid for the log output view
	tui.tvLogs = cview.NewTextView()
	tui.tvLogs.SetPadding(0, 0, 0, 0)
	tui.tvLogs.SetDynamicColors(true)

	tui.gridApp.AddItem(tui.tvLogs, 2, 0, 1, 1, 0, 0, true)

	tui.app.SetRoot(tui.gridApp, true)
}

func (tui *Tui) Start() {
	reaper.Register("tui")

	go func() {
		defer tui.app.HandlePanic()

		// Capture user input
		tui.app.SetInputCapture(tui.eventHandler)

		if err := tui.app.Run(); err != nil {
			panic(err)
		}

		tui.shutdownChannel <- true
		reaper.Done("tui")
	}()

	go tui.excecuteLoop()
}

func (tui *Tui) Shutdown() {
	slog.Debug("Shutting down TUI")
	tui.app.Stop()

	slog.Debug("Waiting for TUI to shut down")
	tui.WaitForShutdown()
}

func (tui *Tui) IsShutdown() bool {
	return len(tui.shutdownChannel) > 0
}

func (tui *Tui) WaitForShutdown() {
	<-tui.shutdownChannel
}

//
// private functions
//

func (tui *Tui) eventHandler(event *tcell.EventKey) *tcell.EventKey {
	// Anything handled here will be executed on the main thread
	switch event.Key() {
	case tcell.KeyEsc:
	case tcell.KeyCtrlC:
		go reaper.Reap()
		return nil
	}

	return event
}

func (tui *Tui) excecuteLoop() {
	defer tui.app.HandlePanic()

	slog.Debug("TUI loop started")

	for {
		if len(tui.shutdownChannel) > 0 {
			slog.Info("TUI shutting down")
			tui.app.QueueUpdateDraw(func() {})
			break
		}

		tui.app.QueueUpdateDraw(func() {})
		time.Sleep(50 * time.Millisecond)
	}
}

func (tui *Tui) updateMeter(meter *custom.StatusMeter, value, warnPct, cautionPct int) {
	color := tcell.ColorDefault

	if value <= warnPct {
		color = theme.Green
	} else if value <= cautionPct {
		color = theme.Yellow
	} else {
		color = theme.Red
	}

	meter.SetCurrentValue(value)
	meter.SetColor(color)
}

//
// status update functions
//

func (tui *Tui) SetTransportStatus(status Status) {
	if status < 0 || status > StatusFailed {
		panic(fmt.Sprintf("invalid status value provided: %d", status))
	}

	var icon rune
	var color tcell.Color

	if status == StatusMixing {
		icon = theme.RunePlay
		color = theme.Green
	} else if status == StatusCapturing {
		icon = theme.RuneMuted
		color = theme.Red
	} else if status == StatusStarting {
		icon = theme.RuneClock
		color = theme.Yellow
	} else if status == StatusShuttingDown {
		icon = theme.RuneClock
		color = theme.Yellow
	} else if status == StatusFailed {
		icon = theme.RuneFailed
		color = theme.Red
	}

	tui.tvTransportStatus.SetCurrentValue(string(icon) + " " + statusNames[status])
	tui.tvTransportStatus.SetColor(color)
}

func (tui *Tui) SetAudioFormat(format string) {
	tui.tvFormat.SetCurrentValue(format)
}

func (tui *Tui) SetProfileName(value string) {
	tui.tvProfileName.SetCurrentValue(value)
}

func (tui *Tui) SetOscClientCount(count int) {
	tui.tvOscClients.SetCurrentValue(fmt.Sprintf("%d", count))
}

func (tui *Tui) SetCaptureFile(value string) {
	tui.tvCaptureFile.SetCurrentValue(value)
}

func (tui *Tui) IncrementErrorCount() {
	tui.errorCount++
	tui.tvErrorCount.SetCurrentValue(fmt.Sprintf("%d", tui.errorCount))

	if tui.errorCount > 0 {
		tui.tvErrorCount.SetColor(theme.Red)
	}
}

//
// channel strips
//

// UpdateSignalLevels feeds one level per meter, channels first and the
// master bus last.
func (tui *Tui) UpdateSignalLevels(levels []model.SignalLevel) {
	for i := range levels {
		if i >= len(tui.elementLevelMeters) {
			break
		}

		level := levels[i]
		tui.elementLevelMeters[i].SetLevel(level.Instant)
		tui.elementLevelMeters[i].SetHeldLevel(level.Held)
	}
}

func (tui *Tui) SetChannelRouted(channel int, routed bool) {
	if channel < 0 || channel >= len(tui.elementLevelMeters) {
		return
	}

	tui.elementLevelMeters[channel].SetRouted(routed)
}

func (tui *Tui) SetChannelMuted(channel int, muted bool) {
	if channel < 0 || channel >= len(tui.elementLevelMeters) {
		return
	}

	tui.elementLevelMeters[channel].SetMuted(muted)
}

func (tui *Tui) SetChannelSoloed(channel int, soloed bool) {
	if channel < 0 || channel >= len(tui.elementLevelMeters) {
		return
	}

	tui.elementLevelMeters[channel].SetSoloed(soloed)
}

// SetChannelCount builds the meter bridge: one meter per channel plus a
// trailing master bus meter labeled M.
func (tui *Tui) SetChannelCount(channelCount int) {
	meterCount := channelCount + 1
	tui.elementLevelMeters = make([]*custom.LevelMeter, meterCount)

	tui.tvChannels.SetCurrentValue(fmt.Sprintf("%d", channelCount))

	levelColumns := make([]int, meterCount+2)
	levelColumns[0] = 5
	for i := range meterCount {
		levelColumns[i+1] = layoutMeterWidth
	}
	levelColumns[meterCount+1] = -1

	tui.gridLevelMeters.SetColumns(levelColumns...)

	meterStepLabel := cview.NewTextView()
	meterStepLabel.SetPadding(0, 0, 0, 0)

	meterStepLabel.Write([]byte(fmt.Sprintln()))
	for step := 0; step < len(meterSteps); step++ {
		meterStepLabel.Write([]byte(fmt.Sprintf("%3v\n", fmt.Sprintf("%d", meterSteps[step]))))
	}
	tui.gridLevelMeters.AddItem(meterStepLabel, 0, 0, 1, 1, 0, 0, false)

	for i := range meterCount {
		label := fmt.Sprintf("%d", i+1)
		if i == channelCount {
			label = "M"
		}

		tui.elementLevelMeters[i] = custom.NewLevelMeter(meterSteps, levelColors)
		tui.elementLevelMeters[i].SetBorder(false)
		tui.elementLevelMeters[i].SetPadding(0, 0, 1, 1)
		tui.elementLevelMeters[i].SetMinLevel(-150)
		tui.elementLevelMeters[i].SetLevel(-99)
		tui.elementLevelMeters[i].SetHeldLevel(-99)
		tui.elementLevelMeters[i].SetChannelNumber(label)
		tui.elementLevelMeters[i].SetRouted(i == channelCount)

		if i%2 == 1 {
			tui.elementLevelMeters[i].SetBackgroundColor(theme.LevelMeterAlternateBackgroundColor)
		}

		tui.gridLevelMeters.AddItem(tui.elementLevelMeters[i], 0, i+1, 1, 1, 0, 0, false)
	}
}

//
// logging
//

func (tui *Tui) WriteLevelLog(level slog.Level, message string) {
	color := "-"

	if level == slog.LevelWarn {
		color = "#" + theme.YellowRGB
	} else if level == slog.LevelError {
		color = "#" + theme.RedRGB + "::b"
	} else if level == slog.LevelDebug {
		color = "#" + theme.GrayRGB
	}

	tui.tvLogs.Write([]byte(fmt.Sprintf("[%s][%s[] [%s[] %s[-:-:-]\n", color, time.Now().Format("2006-01-02 15:04:05"), level.String(), message)))
}

//
// status meters
//

func (tui *Tui) SetAudioLoad(percent int) {
	tui.updateMeter(tui.statusMeterAudioLoad, percent, 20, 50)
}

func (tui *Tui) SetBufferUtilization(percent int) {
	tui.updateMeter(tui.statusMeterBufferUsed, percent, 50, 75)
}
