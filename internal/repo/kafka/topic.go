package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	NumPartitions = 3
	// DesiredReplicationFactor урезается до числа живых брокеров
	DesiredReplicationFactor = 3
)

type TopicConfig struct {
	NumPartitions     int
	ReplicationFactor int
}

// ensureTopic создаёт топик через контроллер кластера, если его ещё нет
func ensureTopic(ctx context.Context, brokers []string, topic string, config TopicConfig) error {
	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	exists, err := topicExists(conn, topic)
	if err != nil || exists {
		return err
	}

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer func() { _ = controllerConn.Close() }()

	return controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     config.NumPartitions,
		ReplicationFactor: config.ReplicationFactor,
	})
}

func topicExists(conn *kafka.Conn, topic string) (bool, error) {
	partitions, err := conn.ReadPartitions(topic)
	if errors.Is(err, kafka.UnknownTopicOrPartition) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(partitions) > 0, nil
}

// replicationFactor возвращает min(живые брокеры, desired)
func replicationFactor(ctx context.Context, brokers []string, desired int) (int, error) {
	if len(brokers) == 0 {
		return 0, errors.New("пустой список брокеров")
	}
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(dialCtx, "tcp", brokers[0])
	if err != nil {
		return 0, fmt.Errorf("не удалось подключиться к брокеру %s: %w", brokers[0], err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return 0, err
	}
	metadata, err := conn.Brokers()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения метаданных о брокерах: %w", err)
	}
	if len(metadata) == 0 {
		return min(len(brokers), desired), nil
	}
	return min(len(metadata), desired), nil
}
