// Package logging sets up the program log. Messages for people go to
// stderr, so reports written to stdout stay machine readable, and can also be
// appended to a log file.
package logging

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	jww "github.com/spf13/jwalterweatherman"
)

var ErrUnknownLevel = errors.New("unknown log level")

var levels = map[string]jww.Threshold{
	"trace":    jww.LevelTrace,
	"debug":    jww.LevelDebug,
	"info":     jww.LevelInfo,
	"warn":     jww.LevelWarn,
	"error":    jww.LevelError,
	"critical": jww.LevelCritical,
	"fatal":    jww.LevelFatal,
}

// Log is the program log. It discards everything until Setup is called.
var Log = jww.NewNotepad(jww.LevelFatal, jww.LevelFatal, io.Discard, io.Discard, "", log.LstdFlags)

// ParseLevel turns a level name such as "info" into a threshold.
func ParseLevel(level string) (jww.Threshold, error) {
	t, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownLevel, "'%s'", level)
	}
	return t, nil
}

// Setup points Log at stderr and, when file is set, at the end of file as
// well. The returned closer closes the log file.
func Setup(fs afero.Fs, level, file string) (io.Closer, error) {
	threshold, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var logHandle io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if file != "" {
		f, err := fs.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open log file %s", file)
		}
		logHandle, closer = f, f
	}

	Log = New(os.Stderr, logHandle, threshold)
	return closer, nil
}

// New returns a notepad writing messages at threshold and above to out and
// logOut.
func New(out, logOut io.Writer, threshold jww.Threshold) *jww.Notepad {
	return jww.NewNotepad(threshold, threshold, out, logOut, "darwinsheet", log.LstdFlags)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
