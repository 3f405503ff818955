package adapter

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	m "github.com/mouse-blink/litrep/internal/model"
)

// ResultStore persists pass results between runs, keyed by a fingerprint of
// the options, the file id and its contents. A nil result records that the
// file was left unchanged.
type ResultStore interface {
	Load(key string) (*m.Result, bool, error)
	Save(key string, result *m.Result) error
	Close() error
}

// ResultKey derives the store key of one file from the options fingerprint,
// its id and its contents.
func ResultKey(fingerprint, id, code string) string {
	d := xxhash.New()
	_, _ = d.WriteString(fingerprint)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(code)

	return id + "@" + strconv.FormatUint(d.Sum64(), 16)
}

// unchanged is the stored form of a nil result.
var unchanged = []byte{}

type badgerStore struct {
	db *badger.DB
}

// NewBadgerResultStore opens (or creates) a Badger-backed store in dir.
func NewBadgerResultStore(dir string) (ResultStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir failed: %w", err)
	}

	// values are compressed before they reach badger
	opts := badger.DefaultOptions(dir).
		WithCompression(options.None).
		WithLoggingLevel(badger.ERROR).
		WithMetricsEnabled(false)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache db failed: %w", err)
	}

	return &badgerStore{db: db}, nil
}

func (b *badgerStore) Load(key string) (*m.Result, bool, error) {
	var raw []byte

	found := false

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}

			return err
		}

		found = true

		raw, err = item.ValueCopy(nil)

		return err
	})
	if err != nil || !found {
		return nil, false, err
	}

	res, err := decodeResult(raw)
	if err != nil {
		return nil, false, fmt.Errorf("cached result %s: %w", key, err)
	}

	return res, true, nil
}

func (b *badgerStore) Save(key string, result *m.Result) error {
	blob, err := encodeResult(result)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
}

func (b *badgerStore) Close() error {
	return b.db.Close()
}

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemResultStore returns an in-memory ResultStore.
func NewMemResultStore() ResultStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Load(key string) (*m.Result, bool, error) {
	s.mu.Lock()
	blob, ok := s.data[key]
	s.mu.Unlock()

	if !ok {
		return nil, false, nil
	}

	res, err := decodeResult(blob)
	if err != nil {
		return nil, false, err
	}

	return res, true, nil
}

func (s *memStore) Save(key string, result *m.Result) error {
	blob, err := encodeResult(result)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = blob

	return nil
}

func (s *memStore) Close() error {
	return nil
}

// NopResultStore never finds anything and drops every save.
type NopResultStore struct{}

func (NopResultStore) Load(string) (*m.Result, bool, error) { return nil, false, nil }

func (NopResultStore) Save(string, *m.Result) error { return nil }

func (NopResultStore) Close() error { return nil }

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func encodeResult(result *m.Result) ([]byte, error) {
	if result == nil {
		return unchanged, nil
	}

	packed, err := msgpack.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	return zstdEncoder.EncodeAll(packed, nil), nil
}

func decodeResult(blob []byte) (*m.Result, error) {
	if len(blob) == 0 {
		return nil, nil
	}

	packed, err := zstdDecoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress result: %w", err)
	}

	var res m.Result
	if err := msgpack.Unmarshal(packed, &res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	return &res, nil
}
