package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mvp-joe/preproc-explorer/internal/scanner"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements scanner.ProgressReporter with a progress bar
// on stderr. OnFileScanned is called from the scan workers.
type CLIProgressReporter struct {
	quiet     bool
	out       io.Writer
	mu        sync.Mutex
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

func newProgressReporter(out io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		out:       out,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startTime = time.Now()
	fmt.Fprintln(c.out, "Discovering files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(files int) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "Scanning %s AL files\n", formatNumber(files))
	if files == 0 {
		c.fileBar = nil
		return
	}

	c.fileBar = progressbar.NewOptions(files,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileScanned(path string) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *scanner.Stats) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Fprintf(c.out, "✓ Scan complete: %s symbols, %s occurrences in %.1fs\n",
		formatNumber(stats.Symbols),
		formatNumber(stats.Occurrences),
		stats.Duration.Seconds())
	fmt.Fprintf(c.out, "  Files:   %s (%s cached)\n", formatNumber(stats.Files), formatNumber(stats.Cached))
	if stats.Skipped > 0 {
		fmt.Fprintf(c.out, "  Skipped: %s unreadable\n", formatNumber(stats.Skipped))
	}
}

// formatNumber formats n with thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
