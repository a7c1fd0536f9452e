// Package archive keeps raw replays in a pebble store, keyed by KSUID and
// indexed by player.
package archive

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/oy3o/bsor"
)

// ErrNotFound is returned for an id the archive does not hold.
var ErrNotFound = errors.New("archive: replay not found")

const (
	replayPrefix = "replay/"
	playerPrefix = "player/"

	idLen = 27 // ksuid string encoding
)

// Archive is a replay store. It is safe for concurrent use.
type Archive struct {
	db *pebble.DB

	// Decoder checks replays on Put and decodes them on Get.
	Decoder bsor.Decoder
}

// Open opens or creates the archive in dir.
func Open(dir string) (*Archive, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", dir, err)
	}
	return &Archive{db: db}, nil
}

func replayKey(id ksuid.KSUID) []byte {
	return []byte(replayPrefix + id.String())
}

func playerKey(playerID string, id ksuid.KSUID) []byte {
	return []byte(playerPrefix + playerID + "/" + id.String())
}

// Put stores data under a new id. The data must decode; it is stored as
// given, not re-encoded.
func (a *Archive) Put(data []byte) (ksuid.KSUID, error) {
	replay, err := a.Decoder.Decode(data)
	if err != nil {
		return ksuid.Nil, err
	}
	id := ksuid.New()

	b := a.db.NewBatch()
	defer b.Close()
	if err := b.Set(replayKey(id), data, nil); err != nil {
		return ksuid.Nil, err
	}
	if replay.Info != nil {
		if err := b.Set(playerKey(replay.Info.PlayerID, id), nil, nil); err != nil {
			return ksuid.Nil, err
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("archive: put %s: %w", id, err)
	}
	return id, nil
}

// Raw returns a copy of the bytes stored under id.
func (a *Archive) Raw(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := a.db.Get(replayKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(data), nil
}

// Get decodes the replay stored under id.
func (a *Archive) Get(id ksuid.KSUID) (*bsor.Replay, error) {
	data, err := a.Raw(id)
	if err != nil {
		return nil, err
	}
	return a.Decoder.Decode(data)
}

// List returns the ids of the replays recorded by playerID in id order,
// which is creation order to the second. An empty playerID lists every
// replay.
func (a *Archive) List(playerID string) ([]ksuid.KSUID, error) {
	prefix := replayPrefix
	if playerID != "" {
		prefix = playerPrefix + playerID + "/"
	}
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: upperBound([]byte(prefix)),
	})
	if err != nil {
		return nil, err
	}

	ids := []ksuid.KSUID{}
	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		if len(key) != len(prefix)+idLen {
			continue // a longer player id sharing the prefix
		}
		id, err := ksuid.Parse(string(key[len(prefix):]))
		if err != nil {
			iter.Close()
			return nil, fmt.Errorf("archive: bad key %q: %w", key, err)
		}
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete removes the replay stored under id and its player index entry.
func (a *Archive) Delete(id ksuid.KSUID) error {
	data, err := a.Raw(id)
	if err != nil {
		return err
	}

	b := a.db.NewBatch()
	defer b.Close()
	if err := b.Delete(replayKey(id), nil); err != nil {
		return err
	}
	if replay, err := a.Decoder.Decode(data); err == nil && replay.Info != nil {
		if err := b.Delete(playerKey(replay.Info.PlayerID, id), nil); err != nil {
			return err
		}
	}
	return b.Commit(pebble.Sync)
}

// Close closes the underlying store.
func (a *Archive) Close() error {
	return a.db.Close()
}

// upperBound returns the smallest key greater than every key with prefix.
func upperBound(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
