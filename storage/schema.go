// Package storage publishes generated schemas to a NATS JetStream
// key-value bucket, keeping a short revision history per schema.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// historyDepth is the number of revisions kept per schema.
const historyDepth = 5

// Bucket is the subset of jetstream.KeyValue the store uses.
type Bucket interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Keys(ctx context.Context, opts ...jetstream.WatchOpt) ([]string, error)
	History(ctx context.Context, key string, opts ...jetstream.WatchOpt) ([]jetstream.KeyValueEntry, error)
}

// SchemaRecord is one published schema revision.
type SchemaRecord struct {
	// Name is the schema name, also the source of the key.
	Name string `json:"name"`
	// SchemaID is the schema id, the profile IRI.
	SchemaID string `json:"schema_id"`
	// Source is the profile file the schema was generated from.
	Source string `json:"source"`
	// RunID identifies the conversion that produced the schema.
	RunID string `json:"run_id"`
	// Schema is the YAML document.
	Schema    string    `json:"schema"`
	CreatedAt time.Time `json:"created_at"`

	// Revision is the bucket revision, set on read.
	Revision uint64 `json:"-"`
}

// Store provides schema storage operations backed by NATS KV.
type Store struct {
	bucket Bucket
}

// NewStore creates a store over bucket.
func NewStore(bucket Bucket) *Store {
	return &Store{bucket: bucket}
}

// Open returns a store over the named bucket, creating the bucket if it
// doesn't exist.
func Open(ctx context.Context, js jetstream.JetStream, name string) (*Store, error) {
	kv, err := getOrCreateBucket(ctx, js, name)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", name, err)
	}
	return NewStore(kv), nil
}

// Connect connects to the NATS server at url and opens the named bucket.
// The returned close function drains the connection.
func Connect(ctx context.Context, url, bucket string) (*Store, func(), error) {
	nc, err := nats.Connect(url, nats.Name("cimrdfs2linkml"))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}

	store, err := Open(ctx, js, bucket)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	return store, func() { _ = nc.Drain() }, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, err
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "LinkML schemas generated from CIM RDFS profiles",
		History:     historyDepth,
	})
}

// Key derives the bucket key of a schema name. Characters NATS keys do
// not allow are replaced with '_'.
func Key(name string) (string, error) {
	key := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '=':
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
	if strings.Trim(key, "_") == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return key, nil
}

// Publish stores rec as the latest revision of its schema and returns the
// new revision. A zero CreatedAt is set to now.
func (s *Store) Publish(ctx context.Context, rec *SchemaRecord) (uint64, error) {
	key, err := Key(rec.Name)
	if err != nil {
		return 0, err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("marshal schema record: %w", err)
	}

	rev, err := s.bucket.Put(ctx, key, data)
	if err != nil {
		return 0, fmt.Errorf("store schema %s: %w", rec.Name, err)
	}
	rec.Revision = rev
	return rev, nil
}

// Get retrieves the latest revision of the named schema.
func (s *Store) Get(ctx context.Context, name string) (*SchemaRecord, error) {
	key, err := Key(name)
	if err != nil {
		return nil, err
	}

	entry, err := s.bucket.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get schema %s: %w", name, err)
	}
	return decodeEntry(entry)
}

// History returns the kept revisions of the named schema, oldest first.
func (s *Store) History(ctx context.Context, name string) ([]*SchemaRecord, error) {
	key, err := Key(name)
	if err != nil {
		return nil, err
	}

	entries, err := s.bucket.History(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get schema history %s: %w", name, err)
	}

	records := make([]*SchemaRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.Operation() != jetstream.KeyValuePut {
			continue
		}
		rec, err := decodeEntry(entry)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// List returns the keys of all stored schemas, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.bucket.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

func decodeEntry(entry jetstream.KeyValueEntry) (*SchemaRecord, error) {
	var rec SchemaRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal schema %s: %w", entry.Key(), err)
	}
	rec.Revision = entry.Revision()
	return &rec, nil
}
