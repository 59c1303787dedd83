// Package ui defines the plain (non-TUI) progress and interaction surface
// used when stdout is not a terminal or the TUI is disabled.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"autosig/internal/batch"
)

// Console reports progress as log lines and prompts on stdin.
type Console struct {
	log *logrus.Logger
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(verbose bool) *Console {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return &Console{
		log: log,
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

func (c *Console) ReportProgress(done, total int) {
	c.log.Infof("[%d/%d] processed", done, total)
}

func (c *Console) Note(path, msg string) {
	c.log.WithField("file", path).Info(msg)
}

func (c *Console) Warn(path, msg string) {
	c.log.WithField("file", path).Warn(msg)
}

func (c *Console) PromptConflict(path string) byte {
	fmt.Fprintf(c.out, "%s exists. [y]es overwrite / [n]o skip / [a]ll / [s]kip all: ", path)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		// Closed stdin cannot answer; skip the file rather than overwrite.
		return 'n'
	}
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return 0
	}
	return line[0]
}

func (c *Console) ReportCancellation(processed, remaining int, skipped []batch.SkipEntry) {
	c.log.Warnf("cancelled: %d processed, %d not attempted", processed, remaining)
}

var osExit = os.Exit

// Fatal logs a fatal configuration error and exits before any file I/O.
func (c *Console) Fatal(err error) {
	c.log.Error(err.Error())
	osExit(1)
}
