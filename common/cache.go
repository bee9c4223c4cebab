// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pierrec/lz4/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	ErrCacheMiss = errors.New("cache miss")
)

// Cache is a two tier byte cache: an in-process LRU backed by an optional
// redis server. Values are lz4 compressed in both tiers.
type Cache struct {
	local *lru.Cache
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCache creates a cache holding at most localSize entries in memory. An
// empty redisURL disables the redis tier.
func NewCache(localSize int, redisURL string, ttl time.Duration) (*Cache, error) {
	local, err := lru.New(localSize)
	if err != nil {
		return nil, fmt.Errorf("could not create LRU cache: %w", err)
	}

	c := &Cache{
		local: local,
		ttl:   ttl,
	}

	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("could not parse redis URL: %w", err)
		}
		c.rdb = redis.NewClient(opt)
	}

	return c, nil
}

// SetupCache builds a cache from the cache.* configuration keys
func SetupCache() (*Cache, error) {
	redisURL := ""
	if viper.GetBool("cache.redis") {
		redisURL = viper.GetString("cache.redis_url")
	}

	size := viper.GetInt("cache.local_size")
	if size <= 0 {
		size = 128
	}

	return NewCache(size, redisURL, time.Duration(viper.GetInt("cache.ttl"))*time.Second)
}

func (c *Cache) Set(ctx context.Context, key string, val []byte) error {
	compressed, err := compress(val)
	if err != nil {
		return err
	}
	c.local.Add(key, compressed)

	if c.rdb != nil {
		return c.rdb.Set(ctx, key, compressed, c.ttl).Err()
	}
	return nil
}

// Get returns the value stored under key or ErrCacheMiss
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.local.Get(key); ok {
		return decompress(v.([]byte))
	}

	if c.rdb == nil {
		return nil, ErrCacheMiss
	}

	val, err := c.rdb.GetEx(ctx, key, c.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		log.Warn().Err(err).Str("Key", key).Msg("redis lookup failed")
		return nil, err
	}

	// promote to the local tier
	c.local.Add(key, val)
	return decompress(val)
}

// Len returns the number of entries held in the local tier
func (c *Cache) Len() int {
	return c.local.Len()
}

func compress(in []byte) ([]byte, error) {
	w := &bytes.Buffer{}
	zw := lz4.NewWriter(w)
	if _, err := io.Copy(zw, bytes.NewReader(in)); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func decompress(in []byte) ([]byte, error) {
	w := &bytes.Buffer{}
	zr := lz4.NewReader(bytes.NewReader(in))
	if _, err := io.Copy(w, zr); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
