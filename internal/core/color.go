package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

// Colors used by the simulation renderer.
const (
	ColorDefault Color = iota
	ColorLight         // Light team tiles and balls
	ColorDark          // Dark team tiles and balls
	ColorAccent        // Teamless walls
	ColorHUD           // Status line text
)
