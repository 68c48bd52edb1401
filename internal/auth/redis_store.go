package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisClient is the subset of *redis.Client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps sessions server side. The cookie only carries an opaque
// token; the payload lives under "session:<token>" with the session TTL.
type RedisStore struct {
	client RedisClient
	opts   CookieOptions
}

func NewRedisStore(client RedisClient, opts CookieOptions) *RedisStore {
	if opts.Name == "" {
		opts.Name = "session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 12 * time.Hour
	}
	return &RedisStore{client: client, opts: opts}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *RedisStore) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(s.opts.Name)
	if err != nil || c.Value == "" {
		return NewSession(), nil
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return NewSession(), nil
	}
	raw, err := s.client.Get(r.Context(), sessionKey(c.Value)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return NewSession(), nil
	}
	sess := sessionFrom(p)
	sess.token = c.Value
	return sess, nil
}

// Save writes a changed session. Establish and Clear rotate the token so a
// pre-login token never carries an identity.
func (s *RedisStore) Save(w http.ResponseWriter, sess *Session) error {
	if !sess.Dirty() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if sess.token != "" && (sess.rotate || sess.empty()) {
		if err := s.client.Del(ctx, sessionKey(sess.token)).Err(); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		sess.token = ""
	}
	if sess.empty() {
		s.opts.expire(w)
		return nil
	}
	if sess.token == "" {
		sess.token = uuid.NewString()
	}
	raw, err := json.Marshal(sess.payload())
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, sessionKey(sess.token), raw, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	sess.rotate = false
	http.SetCookie(w, s.opts.cookie(sess.token, int(s.opts.TTL.Seconds())))
	return nil
}
