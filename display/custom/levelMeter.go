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
package custom

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// LevelMeter indicates the level of an audio signal. The instantaneous
// level fills the bar and the held peak is drawn as a single bold step
// above it. Hold and decay happen upstream in the mix engine, so this
// widget only draws the two values it is handed.
type LevelMeter struct {
	*cview.Box

	// Rune to use when rendering the empty area of the level meter.
	emptyRune rune

	// Color of the empty area of the level meter.
	emptyColor tcell.Color

	// Rune to use when rendering the filled area of the level meter.
	filledRune rune

	channelNumber string
	channelRouted bool
	channelMuted  bool
	channelSoloed bool

	// Current levels, in whole dBFS
	level     int
	heldLevel int

	// Maximum level passable to the level meter
	maxLevel int

	// Minimum level represented on the level meter
	minLevel int

	// slice containing meter level steps
	meterSteps []int

	unroutedColor tcell.Color

	// meter level to foreground color map
	colorMap map[int]tcell.Color

	sync.RWMutex
}

// NewLevelMeter returns a new level meter bar.
func NewLevelMeter(meterSteps []int, colorMap map[int]tcell.Color) *LevelMeter {
	p := &LevelMeter{
		Box:           cview.NewBox(),
		emptyRune:     rune(9617), // tcell.RuneBlock,
		emptyColor:    cview.Styles.PrimitiveBackgroundColor,
		filledRune:    rune(9607), //tcell.RuneBlock,
		maxLevel:      slices.Max(meterSteps),
		minLevel:      slices.Min(meterSteps),
		level:         -150,
		heldLevel:     -150,
		unroutedColor: tcell.Color237,
		channelNumber: "",
		channelRouted: false,
		meterSteps:    meterSteps,
		colorMap:      colorMap,
	}
	p.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)
	return p
}

func (p *LevelMeter) SetChannelNumber(name string) {
	p.Lock()
	defer p.Unlock()

	p.channelNumber = name
}

// SetEmptyRune sets the rune used for the empty area of the level meter.
func (p *LevelMeter) SetEmptyRune(empty rune) {
	p.Lock()
	defer p.Unlock()

	p.emptyRune = empty
}

// SetEmptyColor sets the color of the empty area of the level meter.
func (p *LevelMeter) SetEmptyColor(empty tcell.Color) {
	p.Lock()
	defer p.Unlock()

	p.emptyColor = empty
}

// SetFilledRune sets the rune used for the filled area of the level meter.
func (p *LevelMeter) SetFilledRune(filled rune) {
	p.Lock()
	defer p.Unlock()

	p.filledRune = filled
}

func (p *LevelMeter) SetMinLevel(level int) {
	p.Lock()
	defer p.Unlock()

	p.minLevel = level
}

// SetLevel sets the instantaneous level.
func (p *LevelMeter) SetLevel(level int) {
	p.Lock()
	defer p.Unlock()

	p.level = level

	if p.level < p.minLevel {
		p.level = p.minLevel
	} else if p.level > p.maxLevel {
		p.level = p.maxLevel
	}
}

// GetLevel gets the instantaneous level.
func (p *LevelMeter) GetLevel() int {
	p.RLock()
	defer p.RUnlock()

	return p.level
}

// SetHeldLevel sets the held peak level.
func (p *LevelMeter) SetHeldLevel(level int) {
	p.Lock()
	defer p.Unlock()

	p.heldLevel = level

	if p.heldLevel < p.minLevel {
		p.heldLevel = p.minLevel
	} else if p.heldLevel > p.maxLevel {
		p.heldLevel = p.maxLevel
	}
}

func (p *LevelMeter) GetHeldLevel() int {
	p.RLock()
	defer p.RUnlock()

	return p.heldLevel
}

func (p *LevelMeter) SetRouted(routed bool) {
	p.Lock()
	defer p.Unlock()

	p.channelRouted = routed
}

func (p *LevelMeter) SetMuted(muted bool) {
	p.Lock()
	defer p.Unlock()

	p.channelMuted = muted
}

func (p *LevelMeter) SetSoloed(soloed bool) {
	p.Lock()
	defer p.Unlock()

	p.channelSoloed = soloed
}

func getLevelColor(colorMap map[int]tcell.Color, currentLevel int) tcell.Color {

	keys := make([]int, 0, len(colorMap))

	for k := range colorMap {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	for key := range keys {
		mapLevel := keys[key]
		mapColor := colorMap[mapLevel]
		if currentLevel >= mapLevel {
			return mapColor
		}
	}

	return tcell.ColorPurple
}

// Draw draws this primitive onto the screen.
func (p *LevelMeter) Draw(screen tcell.Screen) {
	if !p.GetVisible() {
		return
	}

	p.Box.Draw(screen)

	p.Lock()
	defer p.Unlock()

	x, y, meterWidth, _ := p.GetInnerRect()
	foundPeak := false

	labelStyle := tcell.StyleDefault.Bold(true).Background(p.GetBackgroundColor())

	if p.channelMuted {
		labelStyle = labelStyle.Foreground(tcell.Color124)
	} else if p.channelSoloed {
		labelStyle = labelStyle.Foreground(tcell.Color142)
	}

	fmtString := fmt.Sprintf("%%%dv", meterWidth)
	runeArray := []rune(fmt.Sprintf(fmtString, p.channelNumber))
	for w := 0; w < meterWidth; w++ {
		screen.SetContent(x+w, y, runeArray[w], nil, labelStyle)
	}

	y += 1

	for step := 0; step < len(p.meterSteps); step++ {
		stepLevel := p.meterSteps[step]
		doDraw := false
		foregroundColor := getLevelColor(p.colorMap, stepLevel)
		style := tcell.StyleDefault.Foreground(foregroundColor).Background(p.GetBackgroundColor())

		if !foundPeak && p.heldLevel >= stepLevel {
			foundPeak = true
			style = tcell.StyleDefault.Bold(true).Foreground(foregroundColor).Background(p.GetBackgroundColor())
			doDraw = true
		} else {
			if p.level >= stepLevel {
				doDraw = true
			}
		}

		if !p.channelRouted {
			if doDraw {
				style = style.Foreground(p.unroutedColor)
			} else {
				style = style.Foreground(p.unroutedColor).Dim(true)
			}
		}

		if doDraw {
			for w := 0; w < meterWidth; w++ {
				screen.SetContent(x+w, y+(step), p.filledRune, nil, style.Dim(!p.channelRouted))
			}
		} else {
			for w := 0; w < meterWidth; w++ {
				screen.SetContent(x+w, y+(step), p.emptyRune, nil, style.Dim(true))
			}
		}
	}

	y += len(p.meterSteps)

	// show held peak value
	fmtString = fmt.Sprintf("%%%dv", meterWidth)
	runeArray = []rune(fmt.Sprintf(fmtString, math.Abs(float64(p.heldLevel))))
	heldColor := getLevelColor(p.colorMap, p.heldLevel)
	for w := 0; w < meterWidth; w++ {
		screen.SetContent(x+w, y, runeArray[w], nil, tcell.StyleDefault.Bold(true).Foreground(heldColor).Background(p.GetBackgroundColor()))
	}
}
