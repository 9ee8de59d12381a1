package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger. Lines carry the app prefix and a short
// timestamp so the three pipeline stage messages line up when verbose
// logging is on.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

// progress measures the wall time of one command run.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	p := &progress{logger: l, start: time.Now()}
	p.logger.Debug("starting")
	return p
}

// done logs msg with the elapsed time since the run started, rounded to
// the nearest millisecond.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
