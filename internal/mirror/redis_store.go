package mirror

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each node in a hash at <prefix><path>/<id> and the ids of a
// subtree in a set at <prefix><path>.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) nodeKey(path string, id int64) string {
	return fmt.Sprintf("%s%s/%d", s.prefix, path, id)
}

func (s *RedisStore) indexKey(path string) string {
	return s.prefix + path
}

func (s *RedisStore) Put(ctx context.Context, path string, id int64, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	if err := s.client.HSet(ctx, s.nodeKey(path, id), flatten(values)...).Err(); err != nil {
		return err
	}
	return s.client.SAdd(ctx, s.indexKey(path), strconv.FormatInt(id, 10)).Err()
}

func (s *RedisStore) Get(ctx context.Context, path string, id int64) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, s.nodeKey(path, id)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func (s *RedisStore) Delete(ctx context.Context, path string, id int64) error {
	if err := s.client.Del(ctx, s.nodeKey(path, id)).Err(); err != nil {
		return err
	}
	return s.client.SRem(ctx, s.indexKey(path), strconv.FormatInt(id, 10)).Err()
}

func (s *RedisStore) Scan(ctx context.Context, path string) ([]Node, error) {
	members, err := s.client.SMembers(ctx, s.indexKey(path)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		values, err := s.Get(ctx, path, id)
		if err != nil {
			return nil, err
		}
		if values == nil {
			continue
		}
		out = append(out, Node{ID: id, Values: values})
	}
	return out, nil
}

// flatten returns field/value pairs ordered by field name.
func flatten(values map[string]string) []any {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, values[k])
	}
	return args
}
