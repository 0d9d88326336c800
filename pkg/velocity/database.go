package velocity

import (
	"encoding/json"
	"io"
	"sort"
	"sync"

	"github.com/Garik-/smf/pkg/midi"
	"go.uber.org/zap"
)

// Database maps note -> message kind -> beat in bar -> velocities seen.
type Database map[uint8]map[midi.Kind]map[int][]int

func Load(r io.Reader) (Database, error) {
	var db Database
	err := json.NewDecoder(r).Decode(&db)
	return db, err
}

func (db Database) Save(w io.Writer) error {
	return json.NewEncoder(w).Encode(db)
}

// candidates returns the velocities for a note at a position, falling
// back to every position when that one was never seen.
func (db Database) candidates(note uint8, kind midi.Kind, position int) []int {
	positions, ok := db[note][kind]
	if !ok {
		return nil
	}
	if v, ok := positions[position]; ok {
		return v
	}

	var all []int
	for _, v := range positions {
		all = append(all, v...)
	}
	return all
}

type velocitySet map[uint8]bool
type positionMap map[int]velocitySet
type kindMap map[midi.Kind]positionMap

// note -> kind -> position -> velocity
type noteMap map[uint8]kindMap

// Collector accumulates velocities from decoded files. It is safe for
// concurrent use.
type Collector struct {
	mu  sync.Mutex
	m   noteMap
	log *zap.Logger
}

func NewCollector(log *zap.Logger) *Collector {
	return &Collector{m: make(noteMap), log: log.Named("collector")}
}

func isVelocityKind(k midi.Kind) bool {
	return k == midi.NoteOn || k == midi.NoteOff || k == midi.PolyPressure
}

// Add records every note event with a non-zero velocity. Files with an
// SMPTE division report midi.ErrUnsupportedDivision.
func (c *Collector) Add(f *midi.File) error {
	ppq, err := f.Header.TicksPerQuarterNote()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, track := range f.Tracks {
		ticks := track.AbsoluteTicks()
		for i, e := range track.Events {
			m, ok := e.Event.(midi.ChannelMessage)
			if !ok || !isVelocityKind(m.Kind) || m.Velocity() == 0 {
				continue
			}

			position, err := midi.BeatInBar(ticks[i], ppq)
			if err != nil {
				return err
			}

			c.log.Debug("event",
				zap.Uint8("note", m.Note()),
				zap.Stringer("kind", m.Kind),
				zap.Int("position", position))

			c.add(m.Note(), m.Kind, position, m.Velocity())
		}
	}

	return nil
}

func (c *Collector) add(note uint8, kind midi.Kind, position int, velocity uint8) {
	kinds, ok := c.m[note]
	if !ok {
		kinds = make(kindMap)
		c.m[note] = kinds
	}
	positions, ok := kinds[kind]
	if !ok {
		positions = make(positionMap)
		kinds[kind] = positions
	}
	velocities, ok := positions[position]
	if !ok {
		velocities = make(velocitySet)
		positions[position] = velocities
	}
	velocities[velocity] = true
}

// Database returns the collected velocities, sorted ascending.
func (c *Collector) Database() Database {
	c.mu.Lock()
	defer c.mu.Unlock()

	db := make(Database, len(c.m))
	for note, kinds := range c.m {
		db[note] = make(map[midi.Kind]map[int][]int, len(kinds))
		for kind, positions := range kinds {
			db[note][kind] = make(map[int][]int, len(positions))
			for position, set := range positions {
				v := make([]int, 0, len(set))
				for velocity := range set {
					v = append(v, int(velocity))
				}
				sort.Ints(v)
				db[note][kind][position] = v
			}
		}
	}
	return db
}
