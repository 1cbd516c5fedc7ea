// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
)

// consoleProgress prints batch progress to the console, one line per job.
type consoleProgress struct {
	w io.Writer
}

func newConsoleProgress(w io.Writer) *consoleProgress {
	return &consoleProgress{w: w}
}

func (p *consoleProgress) Start() {
	fmt.Fprintln(p.w, "Starting batch conversion")
}

func (p *consoleProgress) Progress(current, total int64, label string) {
	fmt.Fprintf(p.w, "[%d/%d] %s\n", current, total, label)
}

func (p *consoleProgress) Finish(err error) {
	if err != nil {
		fmt.Fprintf(p.w, "Batch finished with errors:\n%v\n", err)
		return
	}
	fmt.Fprintln(p.w, "Batch finished: all jobs converted")
}
