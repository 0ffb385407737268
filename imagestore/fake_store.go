package imagestore

import (
	"context"
	"strconv"
	"sync"
)

// FakeImageStore records uploads in memory for tests and local development.
// DeleteErr, when set, is returned by every Delete call.
type FakeImageStore struct {
	DeleteErr error

	mu       sync.Mutex
	uploads  int
	deleted  []string
	lastData string
}

func (f *FakeImageStore) Upload(ctx context.Context, dataURI string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	f.lastData = dataURI
	return "https://img.fake.test/upload-" + strconv.Itoa(f.uploads), nil
}

func (f *FakeImageStore) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.deleted = append(f.deleted, url)
	return nil
}

// Deleted returns the URLs deleted so far.
func (f *FakeImageStore) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.deleted...)
}
