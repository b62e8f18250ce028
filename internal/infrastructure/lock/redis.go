package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain"
)

// DefaultTTL vencimiento del candado si el proceso que lo tomó muere sin liberarlo.
const DefaultTTL = 5 * time.Minute

// liberar borra la clave solo si el token sigue siendo el nuestro.
var liberar = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis candado distribuido con SET NX PX y borrado condicionado por token.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    zerolog.Logger
}

// NewRedis construye el candado. ttl <= 0 usa DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration, log zerolog.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl, prefix: "lock:", log: log}
}

// TryLock toma la clave sin esperar. Clave tomada → domain.ErrConflict; fallo de Redis → domain.ErrStorage.
func (r *Redis) TryLock(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	k := r.prefix + key
	ok, err := r.client.SetNX(ctx, k, token, r.ttl).Result()
	if err != nil {
		return nil, domain.StorageError("redis setnx", err)
	}
	if !ok {
		return nil, fmt.Errorf("candado %s: %w", key, domain.ErrConflict)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			// Contexto propio: el de la petición puede estar cancelado al liberar.
			c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := liberar.Run(c, r.client, []string{k}, token).Err(); err != nil {
				r.log.Warn().Err(err).Str("key", k).Msg("no se pudo liberar el candado; vence por TTL")
			}
		})
	}, nil
}

// NewRedisClient conecta a partir de una URL redis:// y verifica con PING.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
