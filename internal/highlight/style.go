package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainStyle is a minimal syntax highlighting style for Chroma.
// It leaves most text as-is, fades comments ever so slightly,
// and gives highlighted lines a pale background.
var PlainStyle = chroma.MustNewStyle("plain", map[chroma.TokenType]string{
	chroma.Comment:       "#666666",
	chroma.PreWrapper:    "bg:#eeeeee",
	chroma.Background:    "bg:#eeeeee",
	chroma.LineHighlight: "bg:#ffffcc",
})

func init() {
	styles.Register(PlainStyle)
}

// StyleFor looks up a registered Chroma style by name.
// The empty name refers to [PlainStyle].
// Unknown names get Chroma's fallback style.
func StyleFor(name string) *chroma.Style {
	if name == "" {
		return PlainStyle
	}
	return styles.Get(name)
}
