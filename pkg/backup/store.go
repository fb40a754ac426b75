package backup

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/DataDog/zstd"
	"github.com/golang/glog"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var (
	blobsBucket   = []byte("blobs")
	entriesBucket = []byte("entries")
)

// ErrNotFound is returned for an unknown snapshot number.
var ErrNotFound = errors.New("backup not found")

// Entry describes one snapshot of a save file.
type Entry struct {
	Seq    uint64    `msgpack:"-"`
	Path   string    `msgpack:"p"`
	Format string    `msgpack:"f,omitempty"`
	Note   string    `msgpack:"n,omitempty"`
	Blob   uint64    `msgpack:"b"`
	Size   int       `msgpack:"s"`
	Time   time.Time `msgpack:"t"`
}

// ID renders the content id the way List prints it.
func (e *Entry) ID() string {
	return strconv.FormatUint(e.Blob, 16)
}

// Store is a bbolt-backed snapshot store.
type Store struct {
	db    *bbolt.DB
	level int
	ctx   zstd.Ctx
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCompressionLevel sets the zstd level used for new blobs.
func WithCompressionLevel(level int) Option {
	return func(s *Store) {
		s.level = level
	}
}

// WithClock overrides the snapshot timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open opens or creates the store at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open backup store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{blobsBucket, entriesBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init backup store: %w", err)
	}
	s := &Store{
		db:    db,
		level: DefaultCompressionLevel,
		ctx:   zstd.NewCtx(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func seqKey(seq uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], seq)
	return k[:]
}

func decodeEntry(k, v []byte) (*Entry, error) {
	e := &Entry{Seq: binary.BigEndian.Uint64(k)}
	if err := msgpack.Unmarshal(v, e); err != nil {
		return nil, fmt.Errorf("entry %d: %w", e.Seq, err)
	}
	return e, nil
}

// Put records a snapshot of data taken from path. Identical content is
// stored once.
func (s *Store) Put(path string, data []byte, format, note string) (*Entry, error) {
	id := Sum(data)
	e := &Entry{
		Path:   path,
		Format: format,
		Note:   note,
		Blob:   id,
		Size:   len(data),
		Time:   s.now().UTC(),
	}
	blobKey := seqKey(id)
	err := s.db.Update(func(tx *bbolt.Tx) error {
		blobs := tx.Bucket(blobsBucket)
		if blobs.Get(blobKey) == nil {
			packed, err := Pack(data, s.level)
			if err != nil {
				return err
			}
			if err := blobs.Put(blobKey, packed); err != nil {
				return err
			}
			glog.V(1).Infof("backup: stored blob %x, %d -> %d bytes", id, len(data), len(packed))
		}
		entries := tx.Bucket(entriesBucket)
		seq, err := entries.NextSequence()
		if err != nil {
			return err
		}
		e.Seq = seq
		v, err := msgpack.Marshal(e)
		if err != nil {
			return err
		}
		return entries.Put(seqKey(seq), v)
	})
	if err != nil {
		return nil, fmt.Errorf("backup %s: %w", path, err)
	}
	glog.Infof("backup #%d of %s (%s)", e.Seq, path, e.ID())
	return e, nil
}

// List returns the snapshots of path, newest first. An empty path lists
// every snapshot.
func (s *Store) List(path string) ([]*Entry, error) {
	var out []*Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(entriesBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			e, err := decodeEntry(k, v)
			if err != nil {
				return err
			}
			if path == "" || e.Path == path {
				out = append(out, e)
			}
		}
		return nil
	})
	return out, err
}

// Get returns a snapshot and its save bytes.
func (s *Store) Get(seq uint64) (*Entry, []byte, error) {
	var (
		e    *Entry
		blob []byte
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(entriesBucket).Get(seqKey(seq))
		if v == nil {
			return fmt.Errorf("#%d: %w", seq, ErrNotFound)
		}
		var err error
		if e, err = decodeEntry(seqKey(seq), v); err != nil {
			return err
		}
		b := tx.Bucket(blobsBucket).Get(seqKey(e.Blob))
		if b == nil {
			return fmt.Errorf("#%d: blob %s missing: %w", seq, e.ID(), ErrCorrupt)
		}
		// bbolt memory is only valid inside the transaction.
		blob = append([]byte(nil), b...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	data, err := unpack(s.ctx, blob)
	if err != nil {
		return nil, nil, fmt.Errorf("#%d: %w", seq, err)
	}
	return e, data, nil
}

// Prune keeps the newest keep snapshots of every path and drops blobs that
// no remaining snapshot refers to. It returns the number of snapshots removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("prune: negative keep %d", keep)
	}
	removed := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		entries := tx.Bucket(entriesBucket)
		seen := make(map[string]int)
		live := make(map[uint64]bool)
		var drop [][]byte

		c := entries.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			e, err := decodeEntry(k, v)
			if err != nil {
				return err
			}
			seen[e.Path]++
			if seen[e.Path] > keep {
				drop = append(drop, append([]byte(nil), k...))
				continue
			}
			live[e.Blob] = true
		}
		for _, k := range drop {
			if err := entries.Delete(k); err != nil {
				return err
			}
		}
		removed = len(drop)

		blobs := tx.Bucket(blobsBucket)
		var orphans [][]byte
		err := blobs.ForEach(func(k, _ []byte) error {
			if !live[binary.BigEndian.Uint64(k)] {
				orphans = append(orphans, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range orphans {
			if err := blobs.Delete(k); err != nil {
				return err
			}
		}
		if removed > 0 {
			glog.Infof("backup: pruned %d snapshots, %d blobs", removed, len(orphans))
		}
		return nil
	})
	return removed, err
}

// Paths returns the distinct save paths with snapshots, sorted.
func (s *Store) Paths() ([]string, error) {
	all, err := s.List("")
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	var out []string
	for _, e := range all {
		if !set[e.Path] {
			set[e.Path] = true
			out = append(out, e.Path)
		}
	}
	sort.Strings(out)
	return out, nil
}
