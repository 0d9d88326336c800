package velocity

import (
	"io"
	"math/rand"
	"time"

	"github.com/Garik-/smf/pkg/midi"
)

type Options struct {
	Min, Max int
	Rand     *rand.Rand
}

func pick(velocities []int, min, max int, rnd *rand.Rand) (uint8, bool) {
	var allowed []int
	for _, v := range velocities {
		if v >= min && v <= max && v > 0 {
			allowed = append(allowed, v)
		}
	}
	if len(allowed) == 0 {
		return 0, false
	}
	return uint8(allowed[rnd.Intn(len(allowed))]), true
}

// Humanize overwrites the velocity byte of every note event in w that has
// a match in db, choosing randomly among the recorded velocities within
// [Min, Max]. w must hold the bytes f was decoded from. Events with
// velocity 0 are left alone so note-offs stay note-offs. It returns the
// number of events rewritten.
func Humanize(w io.WriterAt, f *midi.File, db Database, opts Options) (int, error) {
	ppq, err := f.Header.TicksPerQuarterNote()
	if err != nil {
		return 0, err
	}

	if opts.Max == 0 {
		opts.Max = 127
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	}

	n := 0
	for _, track := range f.Tracks {
		ticks := track.AbsoluteTicks()
		for i, e := range track.Events {
			m, ok := e.Event.(midi.ChannelMessage)
			if !ok || !isVelocityKind(m.Kind) || m.Velocity() == 0 {
				continue
			}

			position, err := midi.BeatInBar(ticks[i], ppq)
			if err != nil {
				return n, err
			}

			velocity, ok := pick(db.candidates(m.Note(), m.Kind, position), opts.Min, opts.Max, rnd)
			if !ok {
				continue
			}

			// the velocity is the second data byte
			if _, err := w.WriteAt([]byte{velocity}, e.DataOffset()+1); err != nil {
				return n, err
			}
			n++
		}
	}

	return n, nil
}
