package controllers

import (
	"io"

	"github.com/fairwayev/quotedesk-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Output: io.Discard})
}
