package memory

import (
	"context"
	"fmt"
	"sync"

	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
)

// BlobStore keeps attachment bytes in memory and hands back opaque URLs.
// Setting Fail makes every Store call fail, which tests use to exercise the
// storage error path.
type BlobStore struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	sequence uint64

	Fail bool
}

func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

func (b *BlobStore) Store(_ context.Context, data []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Fail {
		return "", domainerrors.ErrStorage
	}
	b.sequence++
	url := fmt.Sprintf("mem://attachments/att_%06d", b.sequence)
	b.blobs[url] = append([]byte(nil), data...)
	return url, nil
}

// Get returns the stored bytes for url, for test assertions.
func (b *BlobStore) Get(url string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.blobs[url]
	return data, ok
}
