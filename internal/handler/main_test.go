package handler

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"learn-mate-go/pkg/log"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.Init("error", "console", "")
	os.Exit(m.Run())
}
