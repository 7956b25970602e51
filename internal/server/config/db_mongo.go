// Package config содержит инициализацию подключения к MongoDB.
//
// Пакет выполняет:
//   - открытие соединения с MongoDB по URI;
//   - проверку доступности базы (Ping);
//   - выбор базы данных (явно из конфига, из пути URI или "test").
//
// Подключение создаётся явно через NewMongo и закрывается через Close,
// глобального состояния нет.
package config

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase — база, которую использует драйвер, если в URI её нет.
const DefaultDatabase = "test"

// Mongo — долгоживущее подключение к MongoDB, общее для всех запросов.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo подключается к MongoDB, проверяет соединение и возвращает Mongo.
//
// Ошибка подключения или Ping возвращается как есть: вызывающий код
// (cmd/server) считает её фатальной.
func NewMongo(ctx context.Context, cfg DBConfig) (*Mongo, error) {
	dbName, err := ResolveDatabase(cfg)
	if err != nil {
		return nil, err
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Mongo{
		Client: client,
		DB:     client.Database(dbName),
	}, nil
}

// Collection возвращает коллекцию по имени.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// Close закрывает подключение.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

// ResolveDatabase выбирает имя базы: db.name, затем путь URI, затем DefaultDatabase.
func ResolveDatabase(cfg DBConfig) (string, error) {
	if cfg.Name != "" {
		return cfg.Name, nil
	}
	cs, err := connstring.Parse(cfg.URI)
	if err != nil {
		return "", fmt.Errorf("parse mongo uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return DefaultDatabase, nil
}
