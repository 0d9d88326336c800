package velocity

import (
	"context"
	"os"
	"sync"

	"github.com/Garik-/smf/pkg/midi"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type result struct {
	name string
	file *midi.File
	err  error
}

func decodeFile(name string) *result {
	out := &result{name: name}

	buf, err := os.ReadFile(name)
	if err != nil {
		out.err = errors.Wrapf(err, "read %s", name)
		return out
	}

	out.file, err = midi.Parse(buf)
	if err != nil {
		out.err = errors.Wrapf(err, "decode %s", name)
	}
	return out
}

func decodeWorker(ctx context.Context, paths <-chan string, workers int, log *zap.Logger) (<-chan *result, <-chan struct{}) {
	out := make(chan *result)
	done := make(chan struct{}, 1)

	go func() {
		var wg sync.WaitGroup
		goroutines := make(chan struct{}, workers)

	loop:
		for {
			var path string
			var ok bool
			select {
			case path, ok = <-paths:
				if !ok {
					break loop
				}
			case <-ctx.Done():
				log.Debug("decodeWorker context done")
				break loop
			}

			select {
			case goroutines <- struct{}{}:
			case <-ctx.Done():
				log.Debug("decodeWorker context done")
				break loop
			}

			wg.Add(1)
			go func(path string) {
				defer wg.Done()

				select {
				case out <- decodeFile(path):
				case <-ctx.Done():
					log.Debug("decodeFile context done", zap.String("name", path))
				}
				<-goroutines
			}(path)
		}

		wg.Wait()
		close(goroutines)
		close(out)

		done <- struct{}{}
		close(done)
	}()

	return out, done
}

// Scan decodes the files named on paths with up to workers files in
// flight and collects their velocities. The first decode or read error
// stops the scan. Files with an SMPTE division are skipped.
func Scan(parent context.Context, paths <-chan string, workers int, log *zap.Logger) (Database, error) {
	if workers < 1 {
		workers = 1
	}
	log = log.Named("scan")

	ctx, cancel := context.WithCancel(parent)
	results, done := decodeWorker(ctx, paths, workers, log)

	defer func() {
		log.Debug("cancel")
		cancel()
		<-done // wait decodeWorker closed
	}()

	collector := NewCollector(log)

	for result := range results {
		if result.err != nil {
			return nil, result.err
		}

		log.Debug("result", zap.String("name", result.name), zap.Int("tracks", len(result.file.Tracks)))

		if err := collector.Add(result.file); err != nil {
			if errors.Is(err, midi.ErrUnsupportedDivision) {
				log.Warn("skip file", zap.String("name", result.name), zap.Error(err))
				continue
			}
			return nil, errors.Wrapf(err, "collect %s", result.name)
		}
	}

	if err := parent.Err(); err != nil {
		return nil, err
	}

	return collector.Database(), nil
}
