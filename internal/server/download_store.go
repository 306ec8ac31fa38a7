package server

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// DefaultDownloadTTL 生成结果的保留时间
const DefaultDownloadTTL = 10 * time.Minute

type download struct {
	filename    string
	contentType string
	data        []byte
	expiresAt   time.Time
}

// downloadStore 生成结果的内存暂存，每个 token 只能下载一次
type downloadStore struct {
	mu    sync.Mutex
	items map[string]download
	now   func() time.Time
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]download),
		now:   time.Now,
	}
}

func (s *downloadStore) put(filename, contentType string, data []byte, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	token = newRandomToken(24)
	s.items[token] = download{
		filename:    filename,
		contentType: contentType,
		data:        data,
		expiresAt:   now.Add(ttl),
	}
	return token
}

// take 取出并删除
func (s *downloadStore) take(token string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	v, ok := s.items[token]
	if !ok {
		return download{}, false
	}
	delete(s.items, token)
	return v, true
}

func (s *downloadStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
