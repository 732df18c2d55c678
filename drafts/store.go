package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps each visitor's form between round-trips so a reload does not
// lose it. Entries expire after a TTL; an abandoned draft just ages out.
type Store interface {
	Load(ctx context.Context, session string) (Form, bool, error)
	Save(ctx context.Context, session string, f Form) error
	Delete(ctx context.Context, session string) error
}

type memoryEntry struct {
	form    Form
	expires time.Time
}

// MemoryStore is the Store used when no Redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, session string) (Form, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[session]
	if !ok {
		return Form{}, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, session)
		return Form{}, false, nil
	}
	return e.form, true, nil
}

func (m *MemoryStore) Save(_ context.Context, session string, f Form) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()
	m.entries[session] = memoryEntry{form: f, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, session)
	return nil
}

// Len counts live and not yet pruned entries.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryStore) pruneLocked() {
	now := m.now()
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
}

// RedisStore keeps forms as JSON strings under draft:<session>.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func draftKey(session string) string { return "draft:" + session }

func (r *RedisStore) Load(ctx context.Context, session string) (Form, bool, error) {
	raw, err := r.client.Get(ctx, draftKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Form{}, false, nil
	}
	if err != nil {
		return Form{}, false, fmt.Errorf("load draft: %w", err)
	}
	f, err := decodeForm(raw)
	if err != nil {
		// A draft we can't read is as good as none.
		log.Printf("[drafts] dropping unreadable draft session=%s err=%v", session, err)
		r.client.Del(ctx, draftKey(session))
		return Form{}, false, nil
	}
	return f, true, nil
}

func (r *RedisStore) Save(ctx context.Context, session string, f Form) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := r.client.Set(ctx, draftKey(session), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, session string) error {
	if err := r.client.Del(ctx, draftKey(session)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func decodeForm(raw []byte) (Form, error) {
	var f Form
	if err := json.Unmarshal(raw, &f); err != nil {
		return Form{}, err
	}
	if len(f.Draft.Days) == 0 {
		return Form{}, errors.New("draft without days")
	}
	if f.Draft.States == nil {
		f.Draft.States = []string{}
	}
	switch f.Status {
	case StatusEditing, StatusSubmitted:
	case "":
		f.Status = StatusEditing
	default:
		return Form{}, fmt.Errorf("unknown status %q", f.Status)
	}
	return f, nil
}
