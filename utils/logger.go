package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger.
var Log = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
		FullTimestamp:   true,
	})

	return log
}
