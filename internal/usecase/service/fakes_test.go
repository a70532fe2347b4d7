package service

import (
	"context"
	"errors"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"
	"strconv"
	"sync"
	"time"
)

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	getErr    error
	deleteErr error
	puts      int
	deletes   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.putErr != nil {
		return "", s.putErr
	}
	s.objects[key] = append([]byte(nil), data...)
	return "https://storage.test/bucket/" + key, nil
}

func (s *fakeStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (s *fakeStorage) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return "https://storage.test/bucket/" + key + "?expires=" + strconv.Itoa(int(ttl.Seconds())), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletes = append(s.deletes, key)
	delete(s.objects, key)
	return nil
}

type fakeFileRepo struct {
	mu     sync.Mutex
	files  map[string]*entity.FileUpload
	addErr error
	getErr error
	nextID int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*entity.FileUpload)}
}

func (r *fakeFileRepo) AddFile(_ context.Context, file *entity.FileUpload) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return "", r.addErr
	}
	r.nextID++
	id := "file-" + strconv.Itoa(r.nextID)
	stored := *file
	stored.ID = id
	r.files[id] = &stored
	return id, nil
}

func (r *fakeFileRepo) GetFile(_ context.Context, id string, includeDeleted bool) (*entity.FileUpload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok || (file.DeletedAt != nil && !includeDeleted) {
		return nil, repo.ErrFileNotFound
	}
	copied := *file
	return &copied, nil
}

func (r *fakeFileRepo) GetFileByKey(_ context.Context, key string) (*entity.FileUpload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, file := range r.files {
		if file.Key == key {
			copied := *file
			return &copied, nil
		}
	}
	return nil, repo.ErrFileNotFound
}

func (r *fakeFileRepo) ListFiles(_ context.Context, request *entity.ListFilesRequest) ([]*entity.FileUpload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	files := make([]*entity.FileUpload, 0)
	for _, file := range r.files {
		if request.CandidateID != "" && (file.CandidateID == nil || *file.CandidateID != request.CandidateID) {
			continue
		}
		if request.Type != "" && file.Type != request.Type {
			continue
		}
		if file.DeletedAt != nil && !request.IncludeDeleted {
			continue
		}
		files = append(files, file)
	}
	return files, nil
}

func (r *fakeFileRepo) UpdateFileCandidate(_ context.Context, id string, candidateID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok || file.DeletedAt != nil {
		return repo.ErrFileNotFound
	}
	file.CandidateID = candidateID
	return nil
}

func (r *fakeFileRepo) SoftDeleteFile(_ context.Context, id string, deletedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok || file.DeletedAt != nil {
		return repo.ErrFileNotFound
	}
	file.DeletedAt = &deletedAt
	return nil
}

type fakeEvents struct {
	mu         sync.Mutex
	published  []*entity.FileEvent
	publishErr error
	stream     chan *entity.FileEvent
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{stream: make(chan *entity.FileEvent)}
}

func (e *fakeEvents) PublishFileEvent(_ context.Context, event *entity.FileEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.publishErr != nil {
		return e.publishErr
	}
	e.published = append(e.published, event)
	return nil
}

func (e *fakeEvents) SubscribeFileEvents(_ context.Context, _ entity.FileEventType) (<-chan *entity.FileEvent, error) {
	return e.stream, nil
}

func (e *fakeEvents) Close() error {
	return nil
}

func (e *fakeEvents) types() []entity.FileEventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	types := make([]entity.FileEventType, 0, len(e.published))
	for _, event := range e.published {
		types = append(types, event.Type)
	}
	return types
}

type fakeExtractor struct {
	text string
	err  error
	got  []byte
}

func (e *fakeExtractor) Extract(_ context.Context, data []byte, _ string) (string, error) {
	e.got = data
	return e.text, e.err
}
