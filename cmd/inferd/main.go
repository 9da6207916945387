package main

import (
	"os"

	"github.com/rs/zerolog"

	"dqx0.com/go/inferd/httpd"
	"dqx0.com/go/inferd/inference"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := inference.ConfigFromEnv()
	model, err := inference.LoadModel(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("model load failed")
	}
	if cfg.AllowOrigin != "" {
		log.Info().Str("origin", cfg.AllowOrigin).Msg("CORS allowed origin")
	} else {
		log.Info().Msg("CORS allowed origin: <none>")
	}

	r := httpd.NewRouter()
	inference.NewService(cfg, model).Register(r)

	s := &httpd.Server{
		Addr:   ":" + cfg.Port,
		Router: r,
		Logger: &log,
	}
	log.Info().Str("addr", s.Addr).Msg("starting server")
	if err := s.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
