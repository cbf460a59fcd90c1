package history

import (
	"context"
	"fmt"
	"probpick/internal/models"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// appendScript pushes a record only if its id is new to the companion id set.
var appendScript = redis.NewScript(`
if redis.call('SADD', KEYS[2], ARGV[1]) == 0 then
	return 0
end
redis.call('RPUSH', KEYS[1], ARGV[2])
return 1
`)

// RedisStore keeps records as JSON strings in a list, in selection order.
type RedisStore struct {
	client *redis.Client
	key    string
	idsKey string
}

func NewRedisStore(ctx context.Context, dsn, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, &models.PersistenceError{Op: "open", Err: err}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &models.PersistenceError{Op: "open", Err: fmt.Errorf("failed to connect to redis: %w", err)}
	}
	return &RedisStore{client: client, key: key, idsKey: key + ":ids"}, nil
}

func (s *RedisStore) Load(ctx context.Context) (*models.SelectionHistory, error) {
	items, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, &models.PersistenceError{Op: "read", Err: err}
	}

	h := models.NewSelectionHistory()
	for i, item := range items {
		var rec models.SelectionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, &models.PersistenceError{Op: "decode", Err: fmt.Errorf("%s[%d]: %w", s.key, i, err)}
		}
		h.Problems = append(h.Problems, rec)
	}
	return h, nil
}

func (s *RedisStore) Append(ctx context.Context, record models.SelectionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return &models.PersistenceError{Op: "encode", Err: err}
	}

	added, err := appendScript.Run(ctx, s.client, []string{s.key, s.idsKey}, strconv.Itoa(record.ProblemID), string(payload)).Int()
	if err != nil {
		return &models.PersistenceError{Op: "append", Err: err}
	}
	if added == 0 {
		return &models.PersistenceError{Op: "append", Err: fmt.Errorf("%w, problem %d", models.ErrAlreadySelected, record.ProblemID)}
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) (int, error) {
	var length *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		length = pipe.LLen(ctx, s.key)
		pipe.Del(ctx, s.key, s.idsKey)
		return nil
	})
	if err != nil {
		return 0, &models.PersistenceError{Op: "clear", Err: err}
	}
	return int(length.Val()), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
