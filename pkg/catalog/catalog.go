// Package catalog records pipeline runs in a pebble database.
package catalog

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrRunNotFound is returned when no manifest exists for an ID.
var ErrRunNotFound = errors.New("run not found")

const runPrefix = "run/"

// Manifest describes one pipeline run and the files it produced.
type Manifest struct {
	ID        string        `json:"id"`
	Input     string        `json:"input"`
	Format    string        `json:"format"`
	Records   int           `json:"records"`
	Length    int           `json:"length"`
	IntWidth  int           `json:"int_width"`
	Algorithm string        `json:"algorithm"`
	Outputs   []string      `json:"outputs,omitempty"`
	Checked   bool          `json:"checked"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// Output returns the path of the first output with the given extension.
func (m *Manifest) Output(ext string) (string, bool) {
	suffix := "." + ext
	for _, out := range m.Outputs {
		if len(out) >= len(suffix) && out[len(out)-len(suffix):] == suffix {
			return out, true
		}
	}
	return "", false
}

// Catalog stores manifests keyed by ksuid, so iteration order is creation
// order.
type Catalog struct {
	db *pebble.DB
}

// Open opens or creates the catalog in dir.
func Open(dir string) (*Catalog, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open catalog %s", dir)
	}
	return &Catalog{db: db}, nil
}

func runKey(id ksuid.KSUID) []byte {
	return append([]byte(runPrefix), id.String()...)
}

// Put stores m, assigning a new ID when m.ID is empty.
func (c *Catalog) Put(m *Manifest) (ksuid.KSUID, error) {
	var id ksuid.KSUID
	if m.ID == "" {
		id = ksuid.New()
		m.ID = id.String()
	} else {
		parsed, err := ksuid.Parse(m.ID)
		if err != nil {
			return ksuid.Nil, errors.Wrapf(err, "run id %q", m.ID)
		}
		id = parsed
	}

	data, err := json.Marshal(m)
	if err != nil {
		return ksuid.Nil, errors.Wrap(err, "encode manifest")
	}
	if err := c.db.Set(runKey(id), data, pebble.Sync); err != nil {
		return ksuid.Nil, errors.Wrapf(err, "store run %s", id)
	}
	return id, nil
}

// Get returns the manifest stored under id.
func (c *Catalog) Get(id string) (*Manifest, error) {
	m, _, err := c.get(id)
	return m, err
}

// get loads the manifest for id together with its parsed key.
func (c *Catalog) get(id string) (*Manifest, ksuid.KSUID, error) {
	parsed, err := ksuid.Parse(id)
	if err != nil {
		return nil, ksuid.Nil, errors.Wrapf(ErrRunNotFound, "run id %q", id)
	}

	data, closer, err := c.db.Get(runKey(parsed))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ksuid.Nil, errors.Wrapf(ErrRunNotFound, "run %s", id)
	}
	if err != nil {
		return nil, ksuid.Nil, errors.Wrapf(err, "load run %s", id)
	}
	defer closer.Close()

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ksuid.Nil, errors.Wrapf(err, "decode run %s", id)
	}
	return &m, parsed, nil
}

// List returns every manifest, oldest first.
func (c *Catalog) List() ([]*Manifest, error) {
	iter, err := c.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(runPrefix),
		UpperBound: prefixEnd([]byte(runPrefix)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}

	var runs []*Manifest
	for iter.First(); iter.Valid(); iter.Next() {
		var m Manifest
		if err := json.Unmarshal(iter.Value(), &m); err != nil {
			iter.Close()
			return nil, errors.Wrapf(err, "decode %s", iter.Key())
		}
		runs = append(runs, &m)
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	return runs, nil
}

// Delete removes the manifest for id. Output files are left alone.
func (c *Catalog) Delete(id string) error {
	_, key, err := c.get(id)
	if err != nil {
		return err
	}
	if err := c.db.Delete(runKey(key), pebble.Sync); err != nil {
		return errors.Wrapf(err, "delete run %s", id)
	}
	return nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++
	return end
}
