package main

import (
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/gwillem/wordcrane/pkg/config"
)

type Options struct {
	Debug   bool   `long:"debug" description:"Verbose, human readable logs"`
	EnvFile string `long:"env-file" default:".env" description:"Dotenv file read before the environment"`

	Play   PlayCommand   `command:"play" description:"Play the word building game"`
	Levels LevelsCommand `command:"levels" description:"List the levels of a campaign"`
	Setup  SetupCommand  `command:"setup" description:"Find and calibrate the follower arm"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Wordcrane - build Romanian words with a robotic crane"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// loadRuntime loads the shared configuration and opens the log.
func loadRuntime() (config.Config, zerolog.Logger, io.Closer, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	log, closer, err := cfg.Logger(opts.Debug)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	return cfg, log, closer, nil
}
