package kafka

import (
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Значения по умолчанию. Обработка включает запрос в реестр,
// поэтому таймаут сообщения не меньше полного таймаута VIES (30s).
const (
	DefaultProcessTimeout = 35 * time.Second
	DefaultRetryInitial   = time.Second
	DefaultRetryMax       = 30 * time.Second

	// запрос на проверку — один номер, сообщения маленькие
	maxMessageBytes = 64 << 10
)

// ConsumerConfig — параметры консьюмера запросов на проверку.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // first|last (регистр и пробелы не важны)

	ProcessTimeout time.Duration // таймаут обработки одного сообщения
	RetryInitial   time.Duration // начальная пауза после ошибки FetchMessage
	RetryMax       time.Duration // потолок экспоненциальной паузы
}

// Validate — обязательные поля для consumer group.
func (c *ConsumerConfig) Validate() error {
	var errs []error
	if len(c.Brokers) == 0 {
		errs = append(errs, errors.New("kafka: no brokers"))
	}
	if strings.TrimSpace(c.Topic) == "" {
		errs = append(errs, errors.New("kafka: empty topic"))
	}
	if strings.TrimSpace(c.GroupID) == "" {
		errs = append(errs, errors.New("kafka: empty group id"))
	}
	return errors.Join(errs...)
}

// withDefaults — копия конфигурации с заполненными таймаутами; RetryMax не меньше RetryInitial.
func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = DefaultProcessTimeout
	}
	if c.RetryInitial <= 0 {
		c.RetryInitial = DefaultRetryInitial
	}
	if c.RetryMax <= 0 {
		c.RetryMax = DefaultRetryMax
	}
	if c.RetryMax < c.RetryInitial {
		c.RetryMax = c.RetryInitial
	}
	return c
}

// ReaderConfig — конфигурация kafka.Reader с ручным коммитом оффсетов.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MaxBytes:       maxMessageBytes,
		CommitInterval: 0,
	}

	if strings.EqualFold(strings.TrimSpace(c.StartOffset), "first") {
		rc.StartOffset = kafka.FirstOffset
	} else {
		rc.StartOffset = kafka.LastOffset
	}
	return rc
}
