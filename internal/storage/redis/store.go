// Package redis stores journal keys as plain Redis strings under a fixed prefix.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/storage"
)

var ErrInvalidURL = errors.New("invalid Redis URL")

type Store struct {
	url    string
	prefix string
	client *goredis.Client
}

func New(redisURL string) *Store {
	return &Store{
		url:    redisURL,
		prefix: constants.RedisKeyPrefix,
	}
}

// IsURL reports whether s looks like a Redis URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "redis://") || strings.HasPrefix(s, "rediss://")
}

func (s *Store) options() (*goredis.Options, error) {
	opt, err := goredis.ParseURL(s.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	opt.DialTimeout = 3 * time.Second
	opt.ReadTimeout = 2 * time.Second
	opt.WriteTimeout = 2 * time.Second
	return opt, nil
}

func (s *Store) connect() error {
	if s.client != nil {
		return nil
	}
	opt, err := s.options()
	if err != nil {
		return err
	}
	client := goredis.NewClient(opt)

	ctx, cancel := s.ctx()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.client = client
	return nil
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.RedisCallTimeout)
}

func (s *Store) Init() error { return s.connect() }
func (s *Store) Load() error { return s.connect() }

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Get(key string) (string, bool, error) {
	if s.client == nil {
		return "", false, storage.ErrNotLoaded
	}
	ctx, cancel := s.ctx()
	defer cancel()

	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(key, value string) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(key string) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.client == nil {
		return nil, storage.ErrNotLoaded
	}
	ctx, cancel := s.ctx()
	defer cancel()

	keys := []string{}
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetConfigPath returns the URL with any password removed.
func (s *Store) GetConfigPath() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return "redis"
	}
	return u.Redacted()
}
