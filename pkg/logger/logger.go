package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New configures and returns the process-wide logger. Production gets
// JSON lines, everything else a human-readable text formatter with debug
// enabled. The standard logrus logger is used so packages without an
// injected logger share the same output.
func New(env string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)

	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
