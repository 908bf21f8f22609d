package service

import (
	"os"
	"testing"

	"learn-mate-go/pkg/log"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	os.Exit(m.Run())
}
