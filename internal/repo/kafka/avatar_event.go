package kafka

import (
	"context"
	"errors"
	"fmt"
	"hogwarts-school/internal/entity"
	"hogwarts-school/internal/repo"
	"net"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/segmentio/kafka-go"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	NumPartitions     = 3
	AvatarEventsTopic = "avatar-events"
)

// TopicConfig содержит настройки для создания топика
type TopicConfig struct {
	NumPartitions     int
	ReplicationFactor int
}

type AvatarEventKafkaRepository struct {
	writer        *kafka.Writer
	readerFactory func() *kafka.Reader
}

// createTopicIfNotExists создает топик, если он не существует
func createTopicIfNotExists(ctx context.Context, brokers []string, topic string, config TopicConfig) error {
	var dialer kafka.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	topicExists, err := checkIfTopicExists(conn, topic)
	if err != nil {
		return err
	}
	if topicExists {
		return nil
	}

	// Топики создаются только через контроллер кластера
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

// checkIfTopicExists проверяет, существует ли топик
func checkIfTopicExists(conn *kafka.Conn, topic string) (bool, error) {
	partitions, err := conn.ReadPartitions(topic)
	if err != nil {
		if errors.Is(err, kafka.UnknownTopicOrPartition) {
			return false, nil
		}
		return false, err
	}
	return len(partitions) > 0, nil
}

// getMaxReplicationFactor определяет максимально возможный фактор репликации
// на основе количества доступных брокеров
func getMaxReplicationFactor(ctx context.Context, brokers []string, desiredFactor int) (int, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(dialCtx, "tcp", brokers[0])
	if err != nil {
		return 0, fmt.Errorf("не удалось подключиться к брокеру: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return 0, fmt.Errorf("ошибка установки таймаута чтения: %w", err)
	}

	brokerMetadata, err := conn.Brokers()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения метаданных о брокерах: %w", err)
	}
	if len(brokerMetadata) == 0 {
		// метаданные пусты, ориентируемся на переданный список
		return min(len(brokers), desiredFactor), nil
	}
	// Не можем реплицировать больше, чем у нас есть брокеров
	return min(len(brokerMetadata), desiredFactor), nil
}

func NewAvatarEventKafkaRepository(brokers []string) (repo.AvatarEventRepository, error) {
	if len(brokers) == 0 {
		return nil, errors.New("не предоставлены брокеры Kafka")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	replicationFactor, err := getMaxReplicationFactor(ctx, brokers, 3)
	if err != nil {
		return nil, fmt.Errorf("ошибка при определении фактора репликации: %w", err)
	}
	topicConfig := TopicConfig{
		NumPartitions:     NumPartitions,
		ReplicationFactor: replicationFactor,
	}
	if err := createTopicIfNotExists(ctx, brokers, AvatarEventsTopic, topicConfig); err != nil {
		return nil, fmt.Errorf("ошибка при создании топика %s: %w", AvatarEventsTopic, err)
	}

	return &AvatarEventKafkaRepository{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    AvatarEventsTopic,
			Balancer: &kafka.Hash{},
		},
		readerFactory: func() *kafka.Reader {
			// Уникальная группа на каждое подключение: каждый подписчик получает все новые события
			groupID := fmt.Sprintf("avatar-listener-%d", time.Now().UnixNano())
			return kafka.NewReader(kafka.ReaderConfig{
				Brokers:     brokers,
				Topic:       AvatarEventsTopic,
				GroupID:     groupID,
				MinBytes:    1,
				MaxBytes:    10e6,
				StartOffset: kafka.LastOffset,
			})
		},
	}, nil
}

func (r *AvatarEventKafkaRepository) PublishAvatarEvent(ctx context.Context, event *entity.AvatarEvent) error {
	message, err := avatarEventMessage(event)
	if err != nil {
		return err
	}
	return r.writer.WriteMessages(ctx, message)
}

// avatarEventMessage кодирует событие в msgpack. Ключ - студент: события одного студента
// попадают в одну партицию и не переупорядочиваются
func avatarEventMessage(event *entity.AvatarEvent) (kafka.Message, error) {
	b, err := msgpack.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.Itoa(event.StudentID)),
		Value: b,
	}, nil
}

func (r *AvatarEventKafkaRepository) SubscribeAvatarEvents(ctx context.Context) (<-chan *entity.AvatarEvent, error) {
	reader := r.readerFactory()
	ch := make(chan *entity.AvatarEvent)
	go func() {
		defer close(ch)
		defer func() { _ = reader.Close() }()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				return
			}
			var event entity.AvatarEvent
			if err := msgpack.Unmarshal(m.Value, &event); err != nil {
				log.Warnf("Пропущено нечитаемое событие аватара: %v", err)
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

func (r *AvatarEventKafkaRepository) Close() error {
	return r.writer.Close()
}
