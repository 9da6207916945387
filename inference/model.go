package inference

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Model answers a prediction for a single scalar input. A non-empty
// note marks answers that did not come from a real model.
type Model interface {
	Predict(x float64) (y float64, note string)
}

// linearModel is the fallback used when no usable model is available:
// y = 3x + 0.5.
type linearModel struct{}

func (linearModel) Predict(x float64) (float64, string) {
	return 3*x + 0.5, "dummy"
}

// LoadModel probes cfg.ModelPath. This build carries no native
// inference runtime, so a present model file is logged and the linear
// fallback is used either way; a missing file is fatal only when
// FAIL_ON_MISSING_MODEL is set.
func LoadModel(cfg Config, log *zerolog.Logger) (Model, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		if cfg.FailOnMissingModel {
			return nil, fmt.Errorf("inference: model file %s missing and FAIL_ON_MISSING_MODEL is set", cfg.ModelPath)
		}
		log.Info().Str("path", cfg.ModelPath).Msg("no model file found; using dummy inference")
		return linearModel{}, nil
	}
	log.Info().Str("path", cfg.ModelPath).Msg("model present but no inference runtime linked; using dummy inference")
	return linearModel{}, nil
}
