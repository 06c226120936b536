// This tool writes a sine wave test file using any supported sample width.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/cwbudde/wavarray"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("gen-sine failed")
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	width := flagSet.Int("width", 2, "sample width in bytes (1, 2, 3, 4 or 8)")
	channels := flagSet.Int("channels", 1, "number of channels, all carrying the same signal")
	sampleRate := flagSet.Int("rate", 48000, "sample rate in hertz")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	header := wavarray.Header{NumChans: *channels, SampleWidth: wavarray.SampleWidth(*width)}

	err = header.Validate()
	if err != nil {
		return err
	}

	log.Info().
		Float64("length", *length).
		Float64("frequency", *frequency).
		Stringer("width", header.SampleWidth).
		Int("channels", header.NumChans).
		Msg("generating sine wav")

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer file.Close()

	wavOut := wavarray.NewEncoder(file, *sampleRate, header.SampleWidth, header.NumChans)
	numFrames := max(int(float64(*sampleRate) * *length), 0)

	values := make([]float64, 0, numFrames*header.NumChans)
	for i := range numFrames {
		fv := math.Sin(float64(i) / float64(*sampleRate) * *frequency * 2 * math.Pi)
		for range header.NumChans {
			values = append(values, fv)
		}
	}

	err = wavOut.WriteFloats(values)
	if err != nil {
		return err
	}

	return wavOut.Close()
}
