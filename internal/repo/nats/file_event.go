package nats

import (
	"context"
	"recruit-backend/internal/entity"
	"recruit-backend/internal/repo"

	"github.com/labstack/gommon/log"
	natsgo "github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
)

const subjectPrefix = "files."

type FileEventRepository struct {
	conn  *natsgo.Conn
	queue string
}

// NewFileEventRepository публикует события в subject files.<тип>. queue - имя queue group подписчиков
func NewFileEventRepository(conn *natsgo.Conn, queue string) repo.FileEvent {
	return &FileEventRepository{
		conn:  conn,
		queue: queue,
	}
}

func Subject(eventType entity.FileEventType) string {
	return subjectPrefix + string(eventType)
}

func (r *FileEventRepository) PublishFileEvent(_ context.Context, event *entity.FileEvent) error {
	b, err := msgpack.Marshal(event)
	if err != nil {
		return err
	}
	return r.conn.Publish(Subject(event.Type), b)
}

func (r *FileEventRepository) SubscribeFileEvents(ctx context.Context, eventType entity.FileEventType) (<-chan *entity.FileEvent, error) {
	msgs := make(chan *natsgo.Msg, 64)
	sub, err := r.conn.ChanQueueSubscribe(Subject(eventType), r.queue, msgs)
	if err != nil {
		return nil, err
	}

	ch := make(chan *entity.FileEvent)
	go func() {
		defer close(ch)
		defer func() { _ = sub.Unsubscribe() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				var event entity.FileEvent
				if err := msgpack.Unmarshal(msg.Data, &event); err != nil {
					log.Warnf("Некорректное событие в %s: %v", msg.Subject, err)
					continue
				}
				select {
				case ch <- &event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

// Close сбрасывает буфер публикаций. Соединением владеет вызывающий
func (r *FileEventRepository) Close() error {
	return r.conn.Flush()
}
