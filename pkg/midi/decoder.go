package midi

import (
	"context"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type config struct {
	log     *zap.Logger
	workers int
}

type Option func(*config)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithWorkers decodes up to n tracks concurrently. Errors are still
// reported for the lowest numbered failing track.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

func newConfig(opts []Option) config {
	c := config{log: zap.NewNop(), workers: 1}
	for _, opt := range opts {
		opt(&c)
	}
	if c.workers < 1 {
		c.workers = 1
	}
	return c
}

type Decoder struct {
	r   io.Reader
	cfg config

	Header Header
	Tracks []*Track
}

func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, cfg: newConfig(opts)}
}

// Decode reads the whole input and decodes it. Read errors are returned
// unchanged.
func (d *Decoder) Decode() error {
	return d.DecodeContext(context.Background())
}

// DecodeContext is like Decode but stops between tracks once ctx is done.
func (d *Decoder) DecodeContext(ctx context.Context) error {
	buf, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}

	f, err := parse(ctx, buf, d.cfg)
	if err != nil {
		return err
	}

	d.Header = f.Header
	d.Tracks = f.Tracks
	return nil
}

// Parse decodes an in-memory file. Text, SysEx and unknown meta payloads
// in the result share memory with buf.
func Parse(buf []byte, opts ...Option) (*File, error) {
	return parse(context.Background(), buf, newConfig(opts))
}

func parse(ctx context.Context, buf []byte, cfg config) (*File, error) {
	log := cfg.log.Named("decoder")
	c := newCursor(buf, 0)

	header, err := parseHeader(c)
	if err != nil {
		return nil, err
	}
	log.Debug("header",
		zap.Stringer("format", header.Format),
		zap.Uint16("tracks", header.TrackCount),
		zap.Stringer("division", header.Division))

	// frameErr is reported only if every track before it decodes.
	var chunks []chunk
	var frameErr error
	for c.remaining() > 0 {
		ch, err := readChunk(c)
		if err != nil {
			frameErr = err
			break
		}
		if ch.id != trackChunkID {
			log.Debug("skip chunk", zap.ByteString("id", ch.id[:]), zap.Int64("offset", ch.start))
			continue
		}
		chunks = append(chunks, ch)
	}

	if frameErr == nil && len(chunks) != int(header.TrackCount) {
		log.Warn("track count mismatch",
			zap.Uint16("declared", header.TrackCount),
			zap.Int("found", len(chunks)))
	}

	tracks := make([]*Track, len(chunks))
	errs := make([]error, len(chunks))

	decode := func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tracks[i], errs[i] = decodeTrack(i, chunks[i], log)
		log.Debug("track",
			zap.Int("index", i),
			zap.Int64("offset", chunks[i].start),
			zap.Int("events", eventCount(tracks[i])))
		return nil
	}

	if cfg.workers == 1 {
		for i := range chunks {
			if err := decode(i); err != nil {
				return nil, err
			}
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(cfg.workers)
		for i := range chunks {
			i := i
			g.Go(func() error {
				return decode(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	if frameErr != nil {
		return nil, frameErr
	}

	return &File{Header: header, Tracks: tracks}, nil
}

func eventCount(t *Track) int {
	if t == nil {
		return 0
	}
	return len(t.Events)
}
