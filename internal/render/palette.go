// Package render turns semantic animation frames into draw instructions.
package render

import "sync"

// lineColors cycles for every team in a data load. Teams keep the color of
// their first assignment for the whole session, so filter changes never
// recolor a line.
var lineColors = []string{
	"#4c6ef5", "#f03e3e", "#0ca678", "#f59f00", "#ae3ec9",
	"#1098ad", "#e8590c", "#74b816", "#d6336c", "#364fc7",
	"#087f5b", "#e67700", "#9c36b5", "#0b7285", "#c92a2a",
}

// choppedColor renders eliminated lines past their elimination point.
const choppedColor = "#9aa0a6"

// Palette assigns one stable color per (league, team), in the order teams
// are first seen during timeline construction.
type Palette struct {
	mu     sync.Mutex
	colors map[string]string
	next   int
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{colors: make(map[string]string)}
}

// Assign returns the team's color, allocating the next palette slot on
// first sight. Repeated calls always return the first assignment.
func (p *Palette) Assign(leagueID, teamID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := leagueID + "/" + teamID
	if c, ok := p.colors[key]; ok {
		return c
	}
	c := lineColors[p.next%len(lineColors)]
	p.colors[key] = c
	p.next++
	return c
}
