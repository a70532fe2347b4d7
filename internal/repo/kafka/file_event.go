package kafka

import (
	"context"
	"errors"
	"fmt"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	FileEventsTopic = "file-events"
	// PublishBatchTimeout ограничивает ожидание батча при синхронной записи
	PublishBatchTimeout = 10 * time.Millisecond
)

type FileEventRepository struct {
	writer  *kafka.Writer
	brokers []string
	groupID string
}

// NewFileEventRepository создаёт топик событий файлов. groupID задаёт consumer group подписчиков:
// экземпляры с одинаковым groupID делят события между собой
func NewFileEventRepository(brokers []string, groupID string) (repo.FileEvent, error) {
	if len(brokers) == 0 {
		return nil, errors.New("не предоставлены брокеры Kafka")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	factor, err := replicationFactor(ctx, brokers, DesiredReplicationFactor)
	if err != nil {
		return nil, fmt.Errorf("ошибка при определении фактора репликации: %w", err)
	}
	err = ensureTopic(ctx, brokers, FileEventsTopic, TopicConfig{
		NumPartitions:     NumPartitions,
		ReplicationFactor: factor,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании топика %s: %w", FileEventsTopic, err)
	}

	return &FileEventRepository{
		writer:  newWriter(brokers),
		brokers: brokers,
		groupID: groupID,
	}, nil
}

// newWriter пишет в топик событий, партиция выбирается по ключу сообщения
func newWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        FileEventsTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: PublishBatchTimeout,
	}
}

func (r *FileEventRepository) PublishFileEvent(ctx context.Context, event *entity.FileEvent) error {
	b, err := msgpack.Marshal(event)
	if err != nil {
		return err
	}
	// события одного объекта попадают в одну партицию
	return r.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.StorageKey),
		Value: b,
	})
}

func (r *FileEventRepository) SubscribeFileEvents(ctx context.Context, eventType entity.FileEventType) (<-chan *entity.FileEvent, error) {
	if r.groupID == "" {
		return nil, errors.New("для подписки нужен KAFKA_GROUP_ID")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  r.brokers,
		Topic:    FileEventsTopic,
		GroupID:  r.groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	ch := make(chan *entity.FileEvent)
	go func() {
		defer close(ch)
		defer func() { _ = reader.Close() }()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				return
			}
			var event entity.FileEvent
			if err := msgpack.Unmarshal(m.Value, &event); err != nil || event.Type != eventType {
				continue
			}
			select {
			case ch <- &event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (r *FileEventRepository) Close() error {
	return r.writer.Close()
}
