package reveal

import (
	"strconv"
	"strings"
)

// Style is the visual state the controller drives on an element. Hidden maps
// to visibility:hidden so fully transparent elements are also removed from
// the accessibility tree.
type Style struct {
	Opacity float64 `json:"opacity"`
	OffsetY float64 `json:"offsetY"`
	Hidden  bool    `json:"hidden"`
}

// HiddenStyle returns the conventional pre-reveal state offset by y pixels.
func HiddenStyle(offsetY float64) Style {
	return Style{Opacity: 0, OffsetY: offsetY, Hidden: true}
}

// SettledStyle returns the fully visible resting state.
func SettledStyle() Style {
	return Style{Opacity: 1}
}

// CSS renders the style as an inline declaration list.
func (s Style) CSS() string {
	visibility := "inherit"
	if s.Hidden {
		visibility = "hidden"
	}
	var b strings.Builder
	b.WriteString("opacity:")
	b.WriteString(formatFloat(s.Opacity))
	b.WriteString(";visibility:")
	b.WriteString(visibility)
	b.WriteString(";transform:translate(0px,")
	b.WriteString(formatFloat(s.OffsetY))
	b.WriteString("px)")
	return b.String()
}

// Lerp interpolates between from and to at progress p. Visibility flips to
// visible as soon as the tween leaves its start point.
func Lerp(from, to Style, p float64) Style {
	switch {
	case p <= 0:
		return from
	case p >= 1:
		return to
	}
	return Style{
		Opacity: from.Opacity + (to.Opacity-from.Opacity)*p,
		OffsetY: from.OffsetY + (to.OffsetY-from.OffsetY)*p,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
