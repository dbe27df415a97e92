//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/vatcheck/internal/domain"
)

// UniqueTopicAndGroup — уникальные topic/group для теста.
// Пример: base="vat-checks-itest" → "vat-checks-itest-<suffix>".
func UniqueTopicAndGroup(base string) (topic, group string) {
	suffix := UniqSuffix()
	return base + "-" + suffix, base + "-g-" + suffix
}

// EnsureTopic — создаёт топик (если уже есть — OK) и ждёт его появления в метаданных.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую (берётся первый).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return err
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		c, dErr := kafka.DialContext(ctx, "tcp", addr)
		if dErr == nil {
			parts, pErr := c.ReadPartitions(topic)
			_ = c.Close()
			if pErr == nil && len(parts) > 0 {
				return nil
			}
			dErr = pErr
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("topic %q not ready: %v", topic, dErr)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// PublishRequests — отправляет запросы на проверку (по одному номеру в сообщении).
func PublishRequests(ctx context.Context, brokers []string, topic string, reqs ...domain.CheckRequest) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
	}
	defer w.Close()

	msgs := make([]kafka.Message, 0, len(reqs))
	for _, r := range reqs {
		raw, err := json.Marshal(r)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: []byte(r.VatNumber), Value: raw})
	}
	return w.WriteMessages(ctx, msgs...)
}

// PublishRaw — отправляет произвольные байты (битые сообщения).
func PublishRaw(ctx context.Context, brokers []string, topic string, values ...[]byte) error {
	w := &kafka.Writer{Addr: kafka.TCP(brokers...), Topic: topic, RequiredAcks: kafka.RequireAll}
	defer w.Close()

	msgs := make([]kafka.Message, 0, len(values))
	for _, v := range values {
		msgs = append(msgs, kafka.Message{Value: v})
	}
	return w.WriteMessages(ctx, msgs...)
}

func bootstrapAddr(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}
