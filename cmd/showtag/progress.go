package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newProgressBar returns a terminal progress bar, or nil when stdout is not
// a TTY so piped output stays clean.
func newProgressBar(total int, description string) *progressbar.ProgressBar {
	if !stdoutIsTerminal() {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// progressFunc adapts the bar to a (done, total) callback. The bar is
// created on the first call, once the total is known.
func progressFunc(description string) func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if !stdoutIsTerminal() {
			return
		}
		if bar == nil {
			bar = newProgressBar(total, description)
		}
		_ = bar.Set(done)
	}
}

func advance(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}

func finish(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
