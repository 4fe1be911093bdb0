package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// drainTimeout bounds how long cleanup waits for queued change events.
const drainTimeout = 5 * time.Second

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		res *BackendResult
		err error
	)
	switch config.Type {
	case SQLiteBackend:
		res, err = f.createSQLiteBackend(config)
	case MemoryBackend:
		res = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.AMQPURL != "" {
		f.attachPublisher(ctx, res, config)
	}
	return res, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	kv, err := storage.NewSQLiteKV(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite session store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		log.FieldSession, kv.Session())

	return &BackendResult{
		KV:      kv,
		Cleanup: kv.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) *BackendResult {
	f.logger.Info("Initialized memory backend", "quota_bytes", config.QuotaBytes)
	return &BackendResult{KV: storage.NewMemoryKV(config.QuotaBytes)}
}

// attachPublisher wires an AMQP publisher behind an async queue so that
// mutations never wait on the broker. A broker that cannot be reached now is
// retried on later publishes, so failure here only logs.
func (f *DefaultFactory) attachPublisher(ctx context.Context, res *BackendResult, config Config) {
	client := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
	if err := client.Connect(ctx, 1); err != nil {
		f.logger.Warn("AMQP broker unreachable, change events will be retried lazily", log.FieldError, err)
	} else {
		f.logger.Info("Initialized AMQP publisher",
			"exchange", config.AMQPExchange,
			"queue", config.AMQPQueue)
	}

	async := amqp.NewAsyncPublisher(client, amqp.DefaultBuffer, f.logger)
	res.Publisher = async
	prev := res.Cleanup
	res.Cleanup = func() error {
		drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		drainErr := async.Close(drainCtx)
		if n := async.Dropped(); n > 0 {
			f.logger.Warn("Change events dropped while the queue was full", "count", n)
		}

		var err error
		if prev != nil {
			err = prev()
		}
		return errors.Join(drainErr, err, client.Close())
	}
}
