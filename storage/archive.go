// Package storage archives finished exports in a NATS JetStream object store.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/sckan2json/export"
)

// DefaultBucket is the object store bucket exports are archived in.
const DefaultBucket = "SCKAN_EXPORTS"

const (
	namePrefix = "sckan-"
	timeLayout = "20060102T150405Z"
)

// ArchiveName identifies one archived export.
type ArchiveName struct {
	QueryDate time.Time
	ID        string
}

// String returns the object name, e.g. sckan-20240601T120000Z-<uuid>.json.
func (n ArchiveName) String() string {
	info, _ := export.GetFormatInfo(export.FormatDocument)
	return namePrefix + n.QueryDate.UTC().Format(timeLayout) + "-" + n.ID + info.Extension
}

// NewArchiveName generates a unique name for an export queried at queryDate.
func NewArchiveName(queryDate time.Time) ArchiveName {
	return ArchiveName{
		QueryDate: queryDate.UTC().Truncate(time.Second),
		ID:        uuid.New().String(),
	}
}

// ParseArchiveName parses an object name produced by ArchiveName.String.
func ParseArchiveName(s string) (ArchiveName, error) {
	info, _ := export.GetFormatInfo(export.FormatDocument)
	rest, ok := strings.CutPrefix(s, namePrefix)
	if !ok {
		return ArchiveName{}, fmt.Errorf("%w: %s", ErrInvalidName, s)
	}
	rest, ok = strings.CutSuffix(rest, info.Extension)
	if !ok {
		return ArchiveName{}, fmt.Errorf("%w: %s", ErrInvalidName, s)
	}
	stamp, id, ok := strings.Cut(rest, "-")
	if !ok {
		return ArchiveName{}, fmt.Errorf("%w: %s", ErrInvalidName, s)
	}
	queryDate, err := time.Parse(timeLayout, stamp)
	if err != nil {
		return ArchiveName{}, fmt.Errorf("%w: %s: %v", ErrInvalidName, s, err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return ArchiveName{}, fmt.Errorf("%w: %s: %v", ErrInvalidName, s, err)
	}
	return ArchiveName{QueryDate: queryDate, ID: id}, nil
}

// ArchiveInfo describes a stored export.
type ArchiveInfo struct {
	Name   ArchiveName
	Bucket string
	Size   uint64
	Digest string
}

// objectStore is the subset of jetstream.ObjectStore the archive uses.
type objectStore interface {
	Put(ctx context.Context, meta jetstream.ObjectMeta, reader io.Reader) (*jetstream.ObjectInfo, error)
	GetBytes(ctx context.Context, name string, opts ...jetstream.GetObjectOpt) ([]byte, error)
	List(ctx context.Context, opts ...jetstream.ListObjectsOpt) ([]*jetstream.ObjectInfo, error)
}

// Store archives exports backed by a JetStream object store.
type Store struct {
	bucket  string
	objects objectStore
}

// NewStore creates a Store, creating the object store bucket if it doesn't exist.
func NewStore(ctx context.Context, js jetstream.JetStream, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	obs, err := getOrCreateObjectStore(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("create %s object store: %w", bucket, err)
	}
	return &Store{bucket: bucket, objects: obs}, nil
}

func getOrCreateObjectStore(ctx context.Context, js jetstream.JetStream, name string) (jetstream.ObjectStore, error) {
	obs, err := js.ObjectStore(ctx, name)
	if err == nil {
		return obs, nil
	}
	if !errors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, err
	}
	// Bucket doesn't exist, create it
	return js.CreateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket:      name,
		Description: "SCKAN JSON exports",
	})
}

// Archive stores an encoded export under a new unique name.
func (s *Store) Archive(ctx context.Context, data []byte, queryDate time.Time) (ArchiveInfo, error) {
	name := NewArchiveName(queryDate)
	info, _ := export.GetFormatInfo(export.FormatDocument)

	meta := jetstream.ObjectMeta{
		Name:        name.String(),
		Description: export.Description,
		Metadata: map[string]string{
			"content_type":   info.MIMEType,
			"schema_version": export.SchemaVersion,
			"query_date":     name.QueryDate.Format(time.RFC3339),
		},
	}
	obj, err := s.objects.Put(ctx, meta, bytes.NewReader(data))
	if err != nil {
		return ArchiveInfo{}, fmt.Errorf("store export: %w", err)
	}

	return ArchiveInfo{
		Name:   name,
		Bucket: s.bucket,
		Size:   obj.Size,
		Digest: obj.Digest,
	}, nil
}

// Fetch retrieves an archived export.
func (s *Store) Fetch(ctx context.Context, name ArchiveName) ([]byte, error) {
	data, err := s.objects.GetBytes(ctx, name.String())
	if err != nil {
		if errors.Is(err, jetstream.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get export: %w", err)
	}
	return data, nil
}

// List returns the archived exports, newest query date first. Objects not
// named by Archive are ignored.
func (s *Store) List(ctx context.Context) ([]ArchiveInfo, error) {
	objs, err := s.objects.List(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoObjectsFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list exports: %w", err)
	}

	out := make([]ArchiveInfo, 0, len(objs))
	for _, obj := range objs {
		if obj.Deleted {
			continue
		}
		name, err := ParseArchiveName(obj.Name)
		if err != nil {
			continue // Not ours
		}
		out = append(out, ArchiveInfo{Name: name, Bucket: s.bucket, Size: obj.Size, Digest: obj.Digest})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name.QueryDate.After(out[j].Name.QueryDate)
	})
	return out, nil
}

// Latest returns the most recently queried archived export.
func (s *Store) Latest(ctx context.Context) (ArchiveInfo, error) {
	all, err := s.List(ctx)
	if err != nil {
		return ArchiveInfo{}, err
	}
	if len(all) == 0 {
		return ArchiveInfo{}, ErrNotFound
	}
	return all[0], nil
}
