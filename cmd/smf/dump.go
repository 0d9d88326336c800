package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Garik-/smf/pkg/api"
	"github.com/Garik-/smf/pkg/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	jsonFlag    bool
	eventsFlag  bool
	workersFlag int
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.mid>",
	Short: "Print the header and tracks of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print as JSON")
	dumpCmd.Flags().BoolVarP(&eventsFlag, "events", "e", false, "List every event")
	dumpCmd.Flags().IntVarP(&workersFlag, "workers", "w", 1, "Tracks decoded in parallel")
}

func runDump(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := midi.NewDecoder(f, midi.WithLogger(logger), midi.WithWorkers(workersFlag))
	if err := decoder.DecodeContext(cmd.Context()); err != nil {
		return errors.Wrapf(err, "decode %s", args[0])
	}

	view := api.NewFileView(&midi.File{Header: decoder.Header, Tracks: decoder.Tracks}, eventsFlag)
	if jsonFlag {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	printView(cmd.OutOrStdout(), view)
	return nil
}

func printView(w io.Writer, v api.FileView) {
	fmt.Fprintf(w, "format: %s, tracks: %d, division: %s\n", v.Format, v.TrackCount, v.Division)
	for _, t := range v.Tracks {
		fmt.Fprintf(w, "track %d %q: %d events, %d notes, %d ticks\n", t.Index, t.Name, t.Events, t.Notes, t.Ticks)
		for _, e := range t.List {
			fmt.Fprintf(w, "  %8d %6d  %-16s %s\n", e.Tick, e.Offset, e.Type, e.Text)
		}
	}
}
