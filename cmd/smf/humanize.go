package main

import (
	"math/rand"
	"os"

	"github.com/Garik-/smf/pkg/midi"
	"github.com/Garik-/smf/pkg/velocity"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	databaseFlag string
	inFlag       string
	outFlag      string
	minFlag      int
	maxFlag      int
	seedFlag     int64
)

var humanizeCmd = &cobra.Command{
	Use:   "humanize",
	Short: "Copy a MIDI file replacing note velocities from a velocity database",
	Args:  cobra.NoArgs,
	RunE:  runHumanize,
}

func init() {
	humanizeCmd.Flags().StringVarP(&databaseFlag, "database", "d", "", "The path to the database json file")
	humanizeCmd.Flags().StringVarP(&inFlag, "input", "i", "", "Input midi file")
	humanizeCmd.Flags().StringVarP(&outFlag, "output", "o", "", "Output midi file")
	humanizeCmd.Flags().IntVar(&minFlag, "min", 1, "Min velocity")
	humanizeCmd.Flags().IntVar(&maxFlag, "max", 127, "Max velocity")
	humanizeCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Random seed, 0 uses the clock")
	for _, name := range []string{"database", "input", "output"} {
		_ = humanizeCmd.MarkFlagRequired(name)
	}
}

func importDatabase(name string) (velocity.Database, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db, err := velocity.Load(f)
	return db, errors.Wrapf(err, "load %s", name)
}

func runHumanize(cmd *cobra.Command, args []string) error {
	db, err := importDatabase(databaseFlag)
	if err != nil {
		return err
	}

	buf, err := os.ReadFile(inFlag)
	if err != nil {
		return err
	}

	file, err := midi.Parse(buf, midi.WithLogger(logger))
	if err != nil {
		return errors.Wrapf(err, "decode %s", inFlag)
	}

	out, err := os.OpenFile(outFlag, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(buf); err != nil {
		return err
	}

	opts := velocity.Options{Min: minFlag, Max: maxFlag}
	if seedFlag != 0 {
		opts.Rand = rand.New(rand.NewSource(seedFlag))
	}

	n, err := velocity.Humanize(out, file, db, opts)
	if err != nil {
		return err
	}

	logger.Info("humanized", zap.String("output", outFlag), zap.Int("events", n))
	return nil
}
