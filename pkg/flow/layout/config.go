package layout

// Alignment policies for depth assignment and column placement.
const (
	AlignLeft    = "left"
	AlignRight   = "right"
	AlignCenter  = "center"
	AlignJustify = "justify"
)

// ValidAligns is the set of accepted alignment modes.
var ValidAligns = map[string]bool{
	AlignLeft:    true,
	AlignRight:   true,
	AlignCenter:  true,
	AlignJustify: true,
}

// Default layout parameters.
const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultNodeWidth   = 24.0
	DefaultNodePadding = 8.0
	DefaultAlign       = AlignJustify
	DefaultIterations  = 8
)

// Padding is the four-sided canvas padding in pixels.
type Padding struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Config holds every knob the layout engine consumes. It is passed by value
// into [Compute] rather than read from shared state, so independent
// computations (e.g. concurrent charts in a multi-chart host) never
// interfere.
type Config struct {
	Width       float64 `json:"width" toml:"width"`             // Canvas width in pixels
	Height      float64 `json:"height" toml:"height"`           // Canvas height in pixels
	Padding     Padding `json:"padding" toml:"padding"`         // Four-sided canvas padding
	NodeWidth   float64 `json:"node_width" toml:"node_width"`   // Render width of every node
	NodePadding float64 `json:"node_padding" toml:"node_padding"` // Vertical gap between stacked nodes
	Align       string  `json:"align" toml:"align"`             // left | right | center | justify
	Iterations  int     `json:"iterations" toml:"iterations"`   // Relaxation iteration count
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Padding:     Padding{Top: 16, Right: 16, Bottom: 16, Left: 16},
		NodeWidth:   DefaultNodeWidth,
		NodePadding: DefaultNodePadding,
		Align:       DefaultAlign,
		Iterations:  DefaultIterations,
	}
}

// withDefaults fills unset fields. Iterations == 0 is a meaningful value
// (skip relaxation entirely), so only negative counts fall back.
func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.NodeWidth <= 0 {
		c.NodeWidth = DefaultNodeWidth
	}
	if c.NodePadding < 0 {
		c.NodePadding = DefaultNodePadding
	}
	if !ValidAligns[c.Align] {
		c.Align = DefaultAlign
	}
	if c.Iterations < 0 {
		c.Iterations = DefaultIterations
	}
	return c
}

// innerHeight returns the usable vertical extent between the top and bottom
// padding.
func (c Config) innerHeight() float64 {
	return c.Height - c.Padding.Top - c.Padding.Bottom
}

// bottomBound returns the lowest pixel a node's bottom edge may occupy.
func (c Config) bottomBound() float64 {
	return c.Height - c.Padding.Bottom
}
