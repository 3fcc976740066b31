package engine

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug logging for the default logger when it parses as
// true.
const DebugEnv = "UGEN_DEBUG"

// newLogger returns the default logger. An explicit level wins over
// DebugEnv.
func newLogger(level string) (*logrus.Logger, error) {
	l := logrus.New()

	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("%w: log level: %w", ErrConfig, err)
		}

		l.SetLevel(lvl)

		return l, nil
	}

	if debug, err := strconv.ParseBool(os.Getenv(DebugEnv)); err == nil && debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return l, nil
}
