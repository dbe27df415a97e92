package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/pkg/ctxmeta"
	"github.com/Gunvolt24/vatcheck/pkg/metrics"
	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

// outcome — итог обработки одного сообщения.
type outcome int

const (
	outcomeVerdict     outcome = iota // номер проверен, вердикт записан
	outcomeInvalid                    // запрос не разобран
	outcomeFatalFault                 // strict + ошибка реестра: вердикт окончательный
	outcomeInterrupted                // остановка сервиса посреди обработки
	outcomeFailed                     // непредвиденная ошибка
)

// commit — коммитить ли оффсет после такого итога.
func (o outcome) commit() bool {
	switch o {
	case outcomeVerdict, outcomeInvalid, outcomeFatalFault:
		return true
	default:
		return false
	}
}

// classifyOutcome — сопоставляет ошибку сервиса с итогом; parent — контекст цикла Run.
func classifyOutcome(parent context.Context, err error) outcome {
	switch {
	case parent.Err() != nil:
		// остановка важнее результата: даже полученный вердикт не коммитим
		return outcomeInterrupted
	case err == nil:
		return outcomeVerdict
	case errors.Is(err, validate.ErrInvalidRequest):
		return outcomeInvalid
	case errors.Is(err, domain.ErrFatalFault):
		return outcomeFatalFault
	default:
		return outcomeFailed
	}
}

// messageContext — source=kafka и request_id из координат сообщения (topic/partition/offset).
func messageContext(ctx context.Context, topic string, msg *kafka.Message) context.Context {
	ctx = ctxmeta.WithSource(ctx, ctxmeta.SourceKafka)
	return ctxmeta.WithRequestID(ctx, fmt.Sprintf("%s/%d/%d", topic, msg.Partition, msg.Offset))
}

// handleMessage обрабатывает одно сообщение; true — оффсет нужно закоммитить.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	msgCtx := messageContext(ctx, topic, msg)

	procCtx, cancel := context.WithTimeout(msgCtx, c.processTimeout)
	err := c.service.ValidateFromMessage(procCtx, msg.Value)
	cancel()

	res := classifyOutcome(ctx, err)
	switch res {
	case outcomeVerdict:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
	case outcomeInterrupted:
		c.log.Warnf(msgCtx, "processing interrupted: %v (not committed)", err)
	case outcomeInvalid:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(msgCtx, "invalid check request: %v (skipped)", err)
	case outcomeFatalFault:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Errorf(msgCtx, "registry fault: %v (committed, no retry)", err)
	case outcomeFailed:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(msgCtx, "processing failed: %v (not committed)", err)
	}
	return res.commit()
}

func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
	}
}

// sleepWithBackoff — false, если контекст отменён раньше.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff — удвоение с потолком retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	return min(current*2, c.retryMax)
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(c.jitterRand.Int63n(int64(d-half)+1))
}

func minDuration(a, b time.Duration) time.Duration { return min(a, b) }
