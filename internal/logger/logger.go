// Package logger builds the process-wide logrus logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger that writes JSON in production and coloured text
// everywhere else.  An unknown level falls back to info.
func New(env, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	if strings.EqualFold(env, "prod") || strings.EqualFold(env, "production") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
