package service

import (
	"context"
	"errors"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"

	"github.com/labstack/gommon/log"
)

// OrphanSweeper удаляет из хранилища блобы, для которых так и не появилась запись в базе
type OrphanSweeper struct {
	fileRepo repo.File
	storage  repo.ObjectStorage
	events   repo.FileEvent
	workerID string
}

func NewOrphanSweeper(fileRepo repo.File, storage repo.ObjectStorage, events repo.FileEvent, workerID string) *OrphanSweeper {
	return &OrphanSweeper{
		fileRepo: fileRepo,
		storage:  storage,
		events:   events,
		workerID: workerID,
	}
}

func (w *OrphanSweeper) Start(ctx context.Context) error {
	orphans, err := w.events.SubscribeFileEvents(ctx, entity.FileOrphaned)
	if err != nil {
		return err
	}

	log.Infof("Запущен воркер очистки осиротевших объектов: %s", w.workerID)

	for {
		select {
		case <-ctx.Done():
			log.Infof("Остановка воркера очистки осиротевших объектов: %s", w.workerID)
			return nil
		case event, ok := <-orphans:
			if !ok {
				log.Infof("Поток событий закрыт, воркер %s завершает работу", w.workerID)
				return nil
			}
			if err := w.Sweep(ctx, event); err != nil {
				log.Errorf("Ошибка очистки объекта %s: %v", event.StorageKey, err)
			}
		}
	}
}

// Sweep удаляет блоб, только если на его ключ не ссылается ни одна запись
func (w *OrphanSweeper) Sweep(ctx context.Context, event *entity.FileEvent) error {
	if event.StorageKey == "" {
		return nil
	}
	_, err := w.fileRepo.GetFileByKey(ctx, event.StorageKey)
	switch {
	case err == nil:
		// запись всё-таки создана (ответ базы мог потеряться после коммита), блоб не трогаем
		return nil
	case !errors.Is(err, repo.ErrFileNotFound):
		return err
	}
	if err := w.storage.Delete(ctx, event.StorageKey); err != nil {
		return err
	}
	log.Infof("Удалён осиротевший объект %s", event.StorageKey)
	return nil
}
