package marketcache

import (
	"context"
	"errors"
	"time"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/internal/service/metrics"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/cache"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// Namespaces used by the acquisition and analysis paths.
const (
	NamespaceMarketData = "market_data"
	NamespaceTechnical  = "technical"
	NamespaceAssets     = "assets"
)

// Store is a namespaced view over a cache backend with degrade-to-miss
// semantics: the cache is an optimization, never a dependency. Every backend
// failure is logged, counted, and reported to the caller as a plain miss or
// no-op so the surrounding workflow proceeds as if uncached.
type Store struct {
	svc cache.Service
	l   *applogger.Logger
}

func New(svc cache.Service, l *applogger.Logger) *Store {
	metrics.Register()
	return &Store{svc: svc, l: l}
}

func (s *Store) key(namespace, key string) string {
	return namespace + ":" + key
}

// Get loads a cached value into dest. Returns false on absence, expiry, or
// any backend failure.
func (s *Store) Get(ctx context.Context, namespace, key string, dest interface{}) bool {
	err := s.svc.Get(ctx, s.key(namespace, key), dest)
	if err == nil {
		metrics.CacheOps.WithLabelValues(namespace, "hit").Inc()
		return true
	}
	if errors.Is(err, cache.ErrCacheMiss) {
		metrics.CacheOps.WithLabelValues(namespace, "miss").Inc()
		return false
	}
	metrics.CacheOps.WithLabelValues(namespace, "error").Inc()
	s.l.Warn("cache get failed, treating as miss",
		applogger.String("namespace", namespace),
		applogger.String("key", key),
		applogger.Error(err),
	)
	return false
}

// Set stores a value with the given TTL. Failures are logged and swallowed.
func (s *Store) Set(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) bool {
	if err := s.svc.Set(ctx, s.key(namespace, key), value, ttl); err != nil {
		metrics.CacheOps.WithLabelValues(namespace, "error").Inc()
		s.l.Warn("cache set failed, continuing uncached",
			applogger.String("namespace", namespace),
			applogger.String("key", key),
			applogger.Error(err),
		)
		return false
	}
	metrics.CacheOps.WithLabelValues(namespace, "set").Inc()
	return true
}

// Delete removes a key. Failures are logged and swallowed.
func (s *Store) Delete(ctx context.Context, namespace, key string) bool {
	if err := s.svc.Delete(ctx, s.key(namespace, key)); err != nil {
		s.l.Warn("cache delete failed",
			applogger.String("namespace", namespace),
			applogger.String("key", key),
			applogger.Error(err),
		)
		return false
	}
	return true
}

// Exists reports whether an unexpired entry is present; backend failures
// read as absent.
func (s *Store) Exists(ctx context.Context, namespace, key string) bool {
	ok, err := s.svc.Exists(ctx, s.key(namespace, key))
	if err != nil {
		s.l.Warn("cache exists failed",
			applogger.String("namespace", namespace),
			applogger.String("key", key),
			applogger.Error(err),
		)
		return false
	}
	return ok
}

// RemainingTTL returns the remaining lifetime of an entry, or a negative
// duration when the entry is absent or the backend failed.
func (s *Store) RemainingTTL(ctx context.Context, namespace, key string) time.Duration {
	ttl, err := s.svc.TTL(ctx, s.key(namespace, key))
	if err != nil {
		s.l.Warn("cache ttl failed",
			applogger.String("namespace", namespace),
			applogger.String("key", key),
			applogger.Error(err),
		)
		return -1
	}
	return ttl
}
