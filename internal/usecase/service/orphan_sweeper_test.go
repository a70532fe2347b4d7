package service

import (
	"context"
	"errors"
	"recruit-backend/internal/entity"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepDeletesUnreferencedBlob(t *testing.T) {
	storage := newFakeStorage()
	storage.objects["uploads/resume/1-abc.pdf"] = []byte("%PDF")
	sweeper := NewOrphanSweeper(newFakeFileRepo(), storage, newFakeEvents(), "test")

	err := sweeper.Sweep(context.Background(), &entity.FileEvent{Type: entity.FileOrphaned, StorageKey: "uploads/resume/1-abc.pdf"})
	require.NoError(t, err)
	assert.Empty(t, storage.objects)
}

func TestSweepKeepsReferencedBlob(t *testing.T) {
	storage := newFakeStorage()
	fileRepo := newFakeFileRepo()
	storage.objects["uploads/resume/1-abc.pdf"] = []byte("%PDF")
	_, err := fileRepo.AddFile(context.Background(), &entity.FileUpload{Key: "uploads/resume/1-abc.pdf"})
	require.NoError(t, err)

	sweeper := NewOrphanSweeper(fileRepo, storage, newFakeEvents(), "test")
	require.NoError(t, sweeper.Sweep(context.Background(), &entity.FileEvent{StorageKey: "uploads/resume/1-abc.pdf"}))
	assert.Contains(t, storage.objects, "uploads/resume/1-abc.pdf")
	assert.Empty(t, storage.deletes)
}

func TestSweepRepoErrorKeepsBlob(t *testing.T) {
	storage := newFakeStorage()
	fileRepo := newFakeFileRepo()
	fileRepo.getErr = errors.New("db is down")
	storage.objects["k"] = []byte("x")

	sweeper := NewOrphanSweeper(fileRepo, storage, newFakeEvents(), "test")
	assert.EqualError(t, sweeper.Sweep(context.Background(), &entity.FileEvent{StorageKey: "k"}), "db is down")
	assert.Contains(t, storage.objects, "k")
}

func TestSweepIgnoresEmptyKey(t *testing.T) {
	storage := newFakeStorage()
	sweeper := NewOrphanSweeper(newFakeFileRepo(), storage, newFakeEvents(), "test")
	require.NoError(t, sweeper.Sweep(context.Background(), &entity.FileEvent{}))
	assert.Empty(t, storage.deletes)
}

func TestOrphanSweeperCleansUpAfterFailedUpload(t *testing.T) {
	storage := newFakeStorage()
	fileRepo := newFakeFileRepo()
	events := newFakeEvents()
	fileRepo.addErr = errors.New("db is down")

	service := NewFile(fileRepo, storage, &fakeExtractor{}, events, entity.DefaultUploadPolicy())
	_, err := service.UploadFile(context.Background(), pdfUpload("cv.pdf", []byte("%PDF")))
	require.Error(t, err)
	require.Len(t, storage.objects, 1)
	orphan := events.published[0]

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	sweeper := NewOrphanSweeper(fileRepo, storage, events, "test")
	go func() { done <- sweeper.Start(ctx) }()

	events.stream <- orphan
	assert.Eventually(t, func() bool {
		storage.mu.Lock()
		defer storage.mu.Unlock()
		return len(storage.objects) == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
