package main

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/gogpu/texconv/synth"
)

// report prints the batch summary, then one line per failed item.
// Colour is used only when stdout is a terminal that supports it.
func report(w io.Writer, res *synth.BatchResult) {
	out := termenv.NewOutput(w)

	status := out.String(res.Summary()).Bold()
	if len(res.Failed) == 0 {
		status = status.Foreground(out.Color("2"))
	} else {
		status = status.Foreground(out.Color("3"))
	}
	_, _ = fmt.Fprintf(w, "%s in %s\n", status, res.Duration.Round(time.Millisecond))

	for _, f := range res.Failed {
		_, _ = fmt.Fprintf(w, "  %s %s: %v\n",
			out.String("failed").Foreground(out.Color("1")), f.Item, f.Err)
	}
}
