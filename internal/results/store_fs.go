package results

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/courtneynewtocode/career-compass/internal/storage"
)

const fsPrefix = "results/"

// FileStore keeps one pretty-printed JSON file per result:
// results/<id>_<testId>_<name>.json.
type FileStore struct {
	blobs storage.BlobStore
	now   func() time.Time
}

func NewFileStore(blobs storage.BlobStore) *FileStore {
	return &FileStore{blobs: blobs, now: time.Now}
}

func fileKey(r Result) string {
	name := SanitizeName(r.StudentName())
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("%s%s_%s_%s.json", fsPrefix, r.ID, SanitizeName(r.TestID), name)
}

func (s *FileStore) Save(ctx context.Context, r Result) (Result, error) {
	r, err := prepare(r, s.now())
	if err != nil {
		return Result{}, err
	}
	buf, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encode result: %w", err)
	}
	if _, err := s.blobs.Put(fileKey(r), bytes.NewReader(buf)); err != nil {
		return Result{}, fmt.Errorf("save result: %w", err)
	}
	return r, nil
}

func (s *FileStore) List(ctx context.Context, opts ListOpts) ([]Result, error) {
	keys, err := s.blobs.List(fsPrefix)
	if err != nil {
		return nil, err
	}
	list := make([]Result, 0, len(keys))
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.HasSuffix(k, ".json") {
			continue
		}
		r, err := s.read(k)
		if err != nil {
			log.Printf("results: skip %s: %v", k, err)
			continue
		}
		list = append(list, r)
	}
	return Apply(list, opts), nil
}

func (s *FileStore) Get(ctx context.Context, id string) (Result, error) {
	k, err := s.find(id)
	if err != nil {
		return Result{}, err
	}
	return s.read(k)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	k, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(k); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

func (s *FileStore) find(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", ErrNotFound
	}
	keys, err := s.blobs.List(fsPrefix + id + "_")
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return "", ErrNotFound
	}
	return keys[0], nil
}

func (s *FileStore) read(key string) (Result, error) {
	rc, err := s.blobs.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, err
	}
	defer rc.Close()
	var r Result
	if err := json.NewDecoder(rc).Decode(&r); err != nil {
		return Result{}, fmt.Errorf("invalid result data: %w", err)
	}
	return r, nil
}
