package style

// Color is a pair of colours, one per colour scheme. An empty value means
// unset.
type Color struct {
	Light string
	Dark  string
}

// For returns the colour for the given scheme, falling back to the light
// value when no dark value is set.
func (c Color) For(dark bool) string {
	if dark && c.Dark != "" {
		return c.Dark
	}
	return c.Light
}

// IsZero reports whether neither colour is set.
func (c Color) IsZero() bool {
	return c.Light == "" && c.Dark == ""
}

// BorderKind enumerates border shapes.
type BorderKind string

const (
	BorderNone    BorderKind = ""
	BorderNormal  BorderKind = "normal"
	BorderRounded BorderKind = "rounded"
	BorderThick   BorderKind = "thick"
	BorderDouble  BorderKind = "double"
)

// Align enumerates horizontal text alignment.
type Align string

const (
	AlignStart  Align = ""
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// Spacing is a top/right/bottom/left box.
type Spacing [4]int

// Record is the concrete style record carried by layout nodes.
type Record struct {
	Foreground Color
	Background Color
	Border     BorderKind
	BorderFg   Color
	Padding    Spacing
	Margin     Spacing
	Width      int
	Align      Align
	Bold       bool
	Italic     bool
	Underline  bool
	Faint      bool
}

// Partial is a sparse Record where only set fields override a base.
type Partial struct {
	Foreground *Color
	Background *Color
	Border     *BorderKind
	BorderFg   *Color
	Padding    *Spacing
	Margin     *Spacing
	Width      *int
	Align      *Align
	Bold       *bool
	Italic     *bool
	Underline  *bool
	Faint      *bool
}

// Merge returns base with every field set in p applied on top.
func (p Partial) Merge(base Record) Record {
	out := base
	if p.Foreground != nil {
		out.Foreground = mergeColor(base.Foreground, *p.Foreground)
	}
	if p.Background != nil {
		out.Background = mergeColor(base.Background, *p.Background)
	}
	if p.BorderFg != nil {
		out.BorderFg = mergeColor(base.BorderFg, *p.BorderFg)
	}
	if p.Border != nil {
		out.Border = *p.Border
	}
	if p.Padding != nil {
		out.Padding = *p.Padding
	}
	if p.Margin != nil {
		out.Margin = *p.Margin
	}
	if p.Width != nil {
		out.Width = *p.Width
	}
	if p.Align != nil {
		out.Align = *p.Align
	}
	if p.Bold != nil {
		out.Bold = *p.Bold
	}
	if p.Italic != nil {
		out.Italic = *p.Italic
	}
	if p.Underline != nil {
		out.Underline = *p.Underline
	}
	if p.Faint != nil {
		out.Faint = *p.Faint
	}
	return out
}

func mergeColor(base, over Color) Color {
	if over.Light != "" {
		base.Light = over.Light
	}
	if over.Dark != "" {
		base.Dark = over.Dark
	}
	return base
}
