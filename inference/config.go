package inference

import "os"

// DefaultModelPath is where the service looks for an ONNX model file.
const DefaultModelPath = "models/model.onnx"

// Config collects the service's environment configuration once at
// startup; it is passed explicitly and never mutated afterwards.
type Config struct {
	// Port the server listens on. PORT env, default "10000".
	Port string
	// AllowOrigin is the CORS Access-Control-Allow-Origin value; the
	// empty string suppresses the header entirely.
	AllowOrigin string
	// ModelPath points at the model file to probe at startup.
	ModelPath string
	// FailOnMissingModel makes startup fail when no model file exists.
	FailOnMissingModel bool
}

// ConfigFromEnv reads PORT, ALLOW_ORIGIN, RENDER and
// FAIL_ON_MISSING_MODEL. Without an explicit ALLOW_ORIGIN the origin
// is "*" in dev and unset when RENDER marks a production-like
// deployment.
func ConfigFromEnv() Config {
	cfg := Config{
		Port:      envOrDefault("PORT", "10000"),
		ModelPath: DefaultModelPath,
	}
	if v := os.Getenv("ALLOW_ORIGIN"); v != "" {
		cfg.AllowOrigin = v
	} else if os.Getenv("RENDER") == "" {
		cfg.AllowOrigin = "*"
	}
	switch os.Getenv("FAIL_ON_MISSING_MODEL") {
	case "1", "true":
		cfg.FailOnMissingModel = true
	}
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
