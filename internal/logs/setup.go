package logs

import (
	"os"

	"github.com/sirupsen/logrus"
)

func SetupLogging() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
