package usecase_test

import (
	"context"

	"github.com/bnema/moto/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console", nil)
	return logging.WithContext(context.Background(), logger)
}
