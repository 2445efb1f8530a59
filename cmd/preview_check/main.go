package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	logger := zap.NewExample()
	defer logger.Sync()

	scenarios := defaultScenarios()
	sliders := defaultSliderScenarios()

	failures := runChecks(os.Stdout, scenarios, sliders)
	if failures > 0 {
		logger.Error("preview check failed", zap.Int("failures", failures))
		os.Exit(1)
	}
	logger.Info("preview check passed", zap.Int("scenarios", len(scenarios)+len(sliders)))
}
