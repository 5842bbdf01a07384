package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  ____          _     _ _ ____       _    ____       `, "#818cf8"},
	{` |  _ \ ___  __| | __| (_) ___|  ___| |_ / ___| ___  `, "#a78bfa"},
	{` | |_) / _ \/ _' |/ _' | \___ \ / _ \ __| |  _ / _ \ `, "#c084fc"},
	{` |  _ <  __/ (_| | (_| | |___) |  __/ |_| |_| | (_) |`, "#e879f9"},
	{` |_| \_\___|\__,_|\__,_|_|____/ \___|\__|\____|\___/ `, "#f472b6"},
}

// PrintBanner writes the ReddiSetGo banner to w using the color profile of out.
func PrintBanner(w io.Writer, out *termenv.Output) {
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  Blockchain CLI demos").Faint())
	fmt.Fprintln(w)
}
