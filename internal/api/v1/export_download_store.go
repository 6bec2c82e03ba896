package v1

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"sync"
	"time"
)

// pendingExport 已落盘、等待下载的导出文件
type pendingExport struct {
	path     string
	name     string
	deadline time.Time
}

// downloadTokens 一次性下载令牌；过期或被取走的文件同时从磁盘删除
type downloadTokens struct {
	mu      sync.Mutex
	pending map[string]pendingExport
	now     func() time.Time
}

func newDownloadTokens() *downloadTokens {
	return &downloadTokens{
		pending: make(map[string]pendingExport),
		now:     time.Now,
	}
}

// issue 登记导出文件并返回令牌
func (d *downloadTokens) issue(path, name string, ttl time.Duration) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.expireLocked()

	token := randomToken()
	d.pending[token] = pendingExport{path: path, name: name, deadline: d.now().Add(ttl)}
	return token
}

// take 取走令牌对应的文件；同一令牌只能成功一次
func (d *downloadTokens) take(token string) (pendingExport, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.expireLocked()

	p, ok := d.pending[token]
	if ok {
		delete(d.pending, token)
	}
	return p, ok
}

// size 未过期的令牌数
func (d *downloadTokens) size() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.expireLocked()
	return len(d.pending)
}

func (d *downloadTokens) expireLocked() {
	now := d.now()
	for token, p := range d.pending {
		if now.After(p.deadline) {
			delete(d.pending, token)
			_ = os.Remove(p.path)
		}
	}
}

func randomToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
