// Package render turns semantic animation frames into primitive draw
// instructions. The engine stops at paths, circles, images, and text; it
// carries no dependency on any particular drawing technology.
package render

// Kind discriminates draw instructions on the wire.
type Kind string

// Instruction kinds.
const (
	KindPath   Kind = "path"
	KindCircle Kind = "circle"
	KindImage  Kind = "image"
	KindText   Kind = "text"
)

// Instruction is one primitive draw operation. Fields are populated per
// kind; unused fields are omitted from the JSON encoding.
type Instruction struct {
	Kind Kind `json:"kind"`

	// TeamID ties the primitive back to its team for hit testing and
	// hover re-highlighting. Empty for chart furniture.
	TeamID string `json:"teamId,omitempty"`

	// Path
	D           string  `json:"d,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`

	// Circle / Image / Text placement
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	R float64 `json:"r,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	Fill    string  `json:"fill,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`

	Href     string  `json:"href,omitempty"` // image reference
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
}

// TeamMeta is the per-team tooltip payload shipped with every frame.
type TeamMeta struct {
	TeamID           string   `json:"teamId"`
	LeagueID         string   `json:"leagueId"`
	DisplayName      string   `json:"displayName"`
	Color            string   `json:"color"`
	CurrentValue     float64  `json:"currentValue"`
	Eliminated       bool     `json:"eliminated"`
	EliminatedPeriod *int     `json:"eliminatedPeriod,omitempty"`
	LastValue        float64  `json:"lastValue"`
	Emphasis         string   `json:"emphasis"`
	Chopped          bool     `json:"chopped"`
}

// Frame is the composed render output for one animation instant.
type Frame struct {
	Progress     float64       `json:"progress"`
	State        string        `json:"state"`
	Width        float64       `json:"width"`
	Height       float64       `json:"height"`
	Instructions []Instruction `json:"instructions"`
	Teams        []TeamMeta    `json:"teams"`
}
