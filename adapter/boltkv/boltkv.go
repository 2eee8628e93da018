// Package boltkv exposes bolt buckets as seqkit iterators.
package boltkv

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"time"

	"github.com/boltdb/bolt"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/seqkit/pkg/contract"
	"go.llib.dev/seqkit/pkg/iterator"
	"go.llib.dev/seqkit/pkg/result"
)

const (
	ErrEncode errorkit.Error = "boltkv: failed to encode value"
	ErrDecode errorkit.Error = "boltkv: failed to decode value"
)

// Entry is a key value pair read from a bucket.
// Both slices are owned by the Entry, they stay valid after the transaction ends.
type Entry struct {
	Key   []byte
	Value []byte
}

type Config struct {
	Prefix []byte
}

type Option option.Option[Config]

// Prefix limits a Cursor to the keys that start with p.
func Prefix(p []byte) Option {
	return option.Func[Config](func(c *Config) { c.Prefix = p })
}

// EntryCursor walks a bucket in key order.
// It is only valid within the transaction it was made with.
type EntryCursor struct {
	cursor *bolt.Cursor
	prefix []byte

	current Entry
	index   int
	started bool
	done    bool
}

// Cursor makes an Indexable iterator over the entries of bucket.
// A bucket that does not exist is treated as empty.
func Cursor(tx *bolt.Tx, bucket []byte, opts ...Option) *EntryCursor {
	contract.Pre.NotNil(tx, contract.Expression("tx"))
	contract.Pre.False(len(bucket) == 0, contract.Expression("len(bucket) == 0"))
	c := option.ToConfig[Config](opts)
	ec := &EntryCursor{prefix: c.Prefix}
	if b := tx.Bucket(bucket); b != nil {
		ec.cursor = b.Cursor()
	} else {
		ec.done = true
	}
	return ec
}

func (c *EntryCursor) HasStarted() bool { return c.started }

func (c *EntryCursor) HasCurrent() bool { return c.started && !c.done }

func (c *EntryCursor) Current() Entry {
	contract.Pre.True(c.HasCurrent(), contract.Expression("HasCurrent()"))
	return c.current
}

func (c *EntryCursor) CurrentIndex() int {
	contract.Pre.True(c.HasCurrent(), contract.Expression("HasCurrent()"))
	return c.index
}

func (c *EntryCursor) Next() bool {
	first := !c.started
	c.started = true
	if c.done {
		return false
	}
	var k, v []byte
	switch {
	case !first:
		k, v = c.cursor.Next()
	case 0 < len(c.prefix):
		k, v = c.cursor.Seek(c.prefix)
	default:
		k, v = c.cursor.First()
	}
	if k == nil || !bytes.HasPrefix(k, c.prefix) {
		c.done = true
		c.current = Entry{}
		return false
	}
	if !first {
		c.index++
	}
	c.current = Entry{Key: bytes.Clone(k), Value: bytes.Clone(v)}
	return true
}

func (c *EntryCursor) Start() iterator.Iterator[Entry] {
	if !c.started {
		c.Next()
	}
	return c
}

// Decode turns entries into lazily decoded values.
// A malformed value fails only its own Result, with ErrDecode.
func Decode[T any](entries iterator.Iterator[Entry]) iterator.Iterator[*result.Result[T]] {
	return iterator.Map(entries, func(e Entry) *result.Result[T] {
		return result.Create(func() (T, error) {
			var v T
			if err := gob.NewDecoder(bytes.NewReader(e.Value)).Decode(&v); err != nil {
				return v, ErrDecode.Wrap(err)
			}
			return v, nil
		})
	})
}

// Store is a bolt database that holds append-only buckets of gob encoded values.
type Store struct {
	DB *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// Close the database and release the file lock.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Append stores values at the end of bucket, creating the bucket when needed.
// Keys are the big endian form of the bucket sequence, so key order is insertion order.
func (s *Store) Append(bucket []byte, values ...any) error {
	contract.Pre.False(len(bucket) == 0, contract.Expression("len(bucket) == 0"))
	return s.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		for _, v := range values {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := gob.NewEncoder(&buf).Encode(v); err != nil {
				return ErrEncode.Wrap(err)
			}
			if err := b.Put(uintToBytes(seq), buf.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *bolt.Tx) error) error {
	return s.DB.View(fn)
}

// CollectAll decodes every value of bucket in insertion order.
func CollectAll[T any](s *Store, bucket []byte) ([]T, error) {
	out := make([]T, 0)
	err := s.View(func(tx *bolt.Tx) error {
		values := Decode[T](Cursor(tx, bucket))
		for values.Start(); values.HasCurrent(); values.Next() {
			v, err := values.Current().Await()
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func uintToBytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
