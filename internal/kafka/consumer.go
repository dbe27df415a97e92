package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/vatcheck/internal/ports"
	"github.com/Gunvolt24/vatcheck/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// checkRequester — зависимость на бизнес-логику,
// которая разбирает запрос из сообщения и проверяет номер.
type checkRequester interface {
	ValidateFromMessage(ctx context.Context, raw []byte) error
}

// Consumer — читает запросы на проверку из топика и передаёт их в сервис.
type Consumer struct {
	reader         reader
	service        checkRequester
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — консьюмер с ручным коммитом оффсетов; пустые таймауты берутся по умолчанию.
func NewConsumer(cfg *ConsumerConfig, service checkRequester, log ports.Logger) *Consumer {
	full := cfg.withDefaults()
	return &Consumer{
		reader:         kafka.NewReader(full.ReaderConfig()),
		service:        service,
		log:            log,
		processTimeout: full.ProcessTimeout,
		retryInitial:   full.RetryInitial,
		retryMax:       full.RetryMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — основной цикл:
// 1) читаем сообщение без авто-коммита;
// 2) любой вердикт проверки (включая фатальную ошибку реестра) → CommitMessages, повторов нет;
// 3) невалидный запрос → лог и CommitMessages (пропускаем навсегда);
// 4) остановка во время обработки → без коммита (сообщение будет прочитано заново).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := c.retryInitial

	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// временная ошибка брокера/сети: пауза с equal-jitter и повтор
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.handleMessage(ctx, rc.Topic, &msg) {
			c.commitSafely(ctx, &msg)
			continue
		}
		// без коммита: короткая пауза, чтобы не крутить цикл вхолостую
		_ = c.sleepWithBackoff(ctx, c.withJitterEqual(minDuration(c.retryInitial, 500*time.Millisecond)))
	}
}

// Close — закрывает reader (повторный вызов ничего не делает).
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
