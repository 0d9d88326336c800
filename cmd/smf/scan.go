package main

import (
	"bufio"
	"os"

	"github.com/Garik-/smf/pkg/velocity"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const maxGoroutines = 10

var (
	listFlag     string
	parallelFlag int
	databaseOut  string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Build a velocity database from a list of MIDI files",
	Long: `Reads one MIDI file path per line and records the velocities used
per note, message type and beat position.

  find . -type f -name "*.mid" > midi_list.txt
  smf scan -l midi_list.txt -o velocity.json`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&listFlag, "list", "l", "", "The path to the list of midi files")
	scanCmd.Flags().IntVarP(&parallelFlag, "parallel", "p", maxGoroutines, "Number of files processed in parallel, must be > 0")
	scanCmd.Flags().StringVarP(&databaseOut, "output", "o", "velocity.json", "Output database file")
	_ = scanCmd.MarkFlagRequired("list")
}

func readList(file *os.File) <-chan string {
	out := make(chan string)

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	go func() {
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				out <- line
			}
		}
		close(out)
	}()

	return out
}

func runScan(cmd *cobra.Command, args []string) error {
	if parallelFlag <= 0 {
		return errors.Errorf("parallel must be > 0, got %d", parallelFlag)
	}

	f, err := os.Open(listFlag)
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := velocity.Scan(cmd.Context(), readList(f), parallelFlag, logger)
	if err != nil {
		return err
	}

	out, err := os.Create(databaseOut)
	if err != nil {
		return err
	}
	defer out.Close()

	logger.Info("database", zap.String("path", databaseOut), zap.Int("notes", len(db)))
	return db.Save(out)
}
