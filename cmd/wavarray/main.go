// This tool decodes a PCM wav file, normalizes its samples to [-1, 1] and
// prints the first values.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cwbudde/wavarray"
)

const missingPathMessage = "You must pass the path of the wav file to decode"

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Fprintln(os.Stderr, missingPathMessage)
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}

	log.Fatal().Err(err).Msg("wavarray failed")
}

func run(args []string, out, errOut io.Writer) error {
	flagSet := flag.NewFlagSet("wavarray", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	configPath := flagSet.String("config", "", "optional YAML config file")
	previewLen := flagSet.Int("n", wavarray.DefaultPreviewLen, "number of values to print, 0 prints all of them")
	asJSON := flagSet.Bool("json", false, "print the values as a JSON array")
	raw := flagSet.Bool("raw", false, "print the decoded integers instead of normalized values")
	logLevel := flagSet.String("log-level", "", "log level (debug, info, warn, error)")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	cfg.applyEnv()

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.PreviewLen = *previewLen
		case "json":
			if *asJSON {
				cfg.Output = outputJSON
			} else {
				cfg.Output = outputText
			}
		case "raw":
			cfg.Raw = *raw
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	err = cfg.validate()
	if err != nil {
		return err
	}

	logger := newLogger(errOut, cfg.LogLevel)

	return decodeAndPrint(flagSet.Arg(0), cfg, out, logger)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().Timestamp().Logger()
}

func decodeAndPrint(path string, cfg Config, out io.Writer, logger zerolog.Logger) error {
	h, samples, err := wavarray.DecodeFile(path)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("file", path).
		Int("channels", h.NumChans).
		Int("frames", h.NumFrames).
		Stringer("width", h.SampleWidth).
		Msg("decoded samples")

	if cfg.Raw {
		return render(out, cfg.Output, wavarray.Preview(samples, cfg.PreviewLen), wavarray.WriteIntPreview)
	}

	if wavarray.MaxAbs(samples) == 0 {
		logger.Warn().Str("file", path).Int("samples", len(samples)).Msg("silent audio, printing zeros")
	}

	values := wavarray.NormalizeOrSilence(samples)

	return render(out, cfg.Output, wavarray.Preview(values, cfg.PreviewLen), wavarray.WritePreview)
}

func render[T int64 | float64](out io.Writer, format string, values []T, writeText func(io.Writer, []T) error) error {
	if strings.ToLower(format) != outputJSON {
		return writeText(out, values)
	}

	if values == nil {
		values = []T{}
	}

	err := json.NewEncoder(out).Encode(values)
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}

	return nil
}
