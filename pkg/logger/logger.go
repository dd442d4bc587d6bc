package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the process-wide logrus logger. JSON to stdout; debug level
// outside production.
func Init(env string) {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if env == "production" {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}
}
