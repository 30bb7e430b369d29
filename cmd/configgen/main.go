package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/rqstctl/internal/config"
	"github.com/danmuck/rqstctl/internal/logging"
)

func main() {
	logging.ConfigureRuntime()

	kind := flag.String("kind", "rqstctl", "config kind: rqstctl|minimal")
	output := flag.String("output", "cmd/rqstctl/config.toml", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "cmd/rqstctl/config.toml", "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		cfg, err := config.Load(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("config validation failed")
		}
		log.Info().Str("path", *input).Str("device", cfg.Device.Path).Msg("validated config")
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		log.Fatal().Err(err).Msg("write template failed")
	}
	log.Info().Str("kind", *kind).Str("path", *output).Msg("wrote config template")
}
