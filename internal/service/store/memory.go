package store

import (
	"sync"

	"github.com/Matiiass08/FTE-App/internal/model"
)

// MemoryStore 内存存储：最近上传的三张输入表与各工作流的最近一次结果
// 仅用于重复展示/导出，不做持久化
type MemoryStore struct {
	uploads map[model.Table]model.UploadInfo
	results map[model.ResultKind]any
	mu      sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		uploads: make(map[model.Table]model.UploadInfo),
		results: make(map[model.ResultKind]any),
	}
}

// SetUpload 记录上传文件（同一张表后者覆盖前者），返回被替换的旧记录
func (s *MemoryStore) SetUpload(info model.UploadInfo) (model.UploadInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.uploads[info.Table]
	s.uploads[info.Table] = info
	return prev, ok
}

// GetUpload 获取某张表的上传记录
func (s *MemoryStore) GetUpload(table model.Table) (model.UploadInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.uploads[table]
	return info, ok
}

// Uploads 全部上传记录（按输入表顺序）
func (s *MemoryStore) Uploads() []model.UploadInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.UploadInfo, 0, len(s.uploads))
	for _, t := range model.Tables {
		if info, ok := s.uploads[t]; ok {
			out = append(out, info)
		}
	}
	return out
}

// SetResult 保存某类结果（覆盖上一次）
func (s *MemoryStore) SetResult(kind model.ResultKind, result any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[kind] = result
}

// GetResult 获取某类最近一次结果，没有时返回 ErrNoResult
func (s *MemoryStore) GetResult(kind model.ResultKind) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[kind]
	if !ok {
		return nil, model.ErrNoResult
	}
	return r, nil
}

// ResultKinds 已有结果的类型
func (s *MemoryStore) ResultKinds() []model.ResultKind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ResultKind, 0, len(s.results))
	for _, k := range model.ResultKinds {
		if _, ok := s.results[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Clear 清空上传与结果
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = make(map[model.Table]model.UploadInfo)
	s.results = make(map[model.ResultKind]any)
}
