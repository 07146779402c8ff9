package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Overlay identifies a toggleable drawing layer.
type Overlay uint8

const (
	OverlayVitalBars Overlay = iota
	OverlayHeadings
	OverlayRain
	OverlayPerf

	numOverlays
)

// overlayInfo describes how an overlay is shown and toggled.
type overlayInfo struct {
	Name    string
	Key     int32 // 0 = panel only
	KeyName string
	On      bool // Initial state
}

var overlayTable = [numOverlays]overlayInfo{
	OverlayVitalBars: {Name: "Vital Bars", Key: rl.KeyB, KeyName: "B", On: true},
	OverlayHeadings:  {Name: "Headings", Key: rl.KeyH, KeyName: "H", On: true},
	OverlayRain:      {Name: "Rain Streaks", On: true},
	OverlayPerf:      {Name: "Performance", Key: rl.KeyF3, KeyName: "F3"},
}

// Name returns the display name.
func (o Overlay) Name() string {
	if o >= numOverlays {
		return ""
	}
	return overlayTable[o].Name
}

// KeyName returns the toggle key label, or "" when the overlay has no key.
func (o Overlay) KeyName() string {
	if o >= numOverlays {
		return ""
	}
	return overlayTable[o].KeyName
}

// Overlays holds the on/off state of every overlay.
type Overlays struct {
	on [numOverlays]bool
}

// NewOverlays returns overlays in their initial state.
func NewOverlays() *Overlays {
	o := &Overlays{}
	for i, info := range overlayTable {
		o.on[i] = info.On
	}
	return o
}

// All lists overlays in panel order.
func (o *Overlays) All() []Overlay {
	out := make([]Overlay, numOverlays)
	for i := range out {
		out[i] = Overlay(i)
	}
	return out
}

// Enabled reports whether id is drawn.
func (o *Overlays) Enabled(id Overlay) bool {
	return id < numOverlays && o.on[id]
}

// Toggle flips id and returns its new state.
func (o *Overlays) Toggle(id Overlay) bool {
	if id >= numOverlays {
		return false
	}
	o.on[id] = !o.on[id]
	return o.on[id]
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (o *Overlays) HandleKeys() {
	for i, info := range overlayTable {
		if info.Key != 0 && rl.IsKeyPressed(info.Key) {
			o.Toggle(Overlay(i))
		}
	}
}
