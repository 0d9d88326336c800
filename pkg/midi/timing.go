package midi

// beatsPerBar assumes 4/4, which is what BeatInBar positions are relative to.
const beatsPerBar = 4

type beatWindow struct {
	cnt uint64

	lowerBound uint64
	upperBound uint64
}

func newBeatWindow(ticksPerBeat uint64) *beatWindow {
	return &beatWindow{upperBound: ticksPerBeat}
}

func (w *beatWindow) stepBy(n uint64) {
	w.cnt += n
	step := w.upperBound - w.lowerBound

	w.upperBound += step * n
	w.lowerBound += step * n
}

func (w *beatWindow) contains(tick uint64) bool {
	return tick >= w.lowerBound && tick < w.upperBound
}

func (w *beatWindow) position() int {
	return int(w.cnt % beatsPerBar)
}

// BeatInBar returns the quarter note (0-3) of a 4/4 bar in which the
// absolute tick falls.
func BeatInBar(absTicks uint64, ticksPerQuarterNote uint16) (int, error) {
	if ticksPerQuarterNote == 0 {
		return 0, ErrUnsupportedDivision
	}

	w := newBeatWindow(uint64(ticksPerQuarterNote))
	if !w.contains(absTicks) {
		w.stepBy(absTicks / uint64(ticksPerQuarterNote))
	}

	return w.position(), nil
}
