package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"maqola/platform/internal/model"
)

// Memory is a Store kept in process memory. It's meant for tests and local
// experiments, nothing survives a restart.
type Memory struct {
	mu           sync.RWMutex
	now          func() time.Time
	lastUserID   uint
	lastPubID    uint
	users        map[uint]model.User
	emails       map[string]uint
	publications map[uint]model.Publication
}

func NewMemory() *Memory {
	return &Memory{
		now:          time.Now,
		users:        map[uint]model.User{},
		emails:       map[string]uint{},
		publications: map[uint]model.Publication{},
	}
}

// WithClock replaces the clock used for CreatedAt. Not safe to call once the
// store is in use.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) InsertUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.emails[u.Email]; ok {
		return ErrDuplicateEmail
	}

	m.lastUserID++
	u.ID = m.lastUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = m.now()
	}

	stored := *u
	stored.Publications = nil

	m.users[u.ID] = stored
	m.emails[u.Email] = u.ID

	return nil
}

func (m *Memory) GetUser(_ context.Context, id uint) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[email]
	if !ok {
		return nil, ErrNotFound
	}

	u := m.users[id]
	return &u, nil
}

func (m *Memory) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.emails[email]
	return ok, nil
}

func (m *Memory) DeleteUser(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}

	for pid, p := range m.publications {
		if p.AuthorID == id {
			delete(m.publications, pid)
		}
	}

	delete(m.emails, u.Email)
	delete(m.users, id)

	return nil
}

func (m *Memory) InsertPublication(_ context.Context, p *model.Publication) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Same outcome as the foreign key constraint in SQL
	if _, ok := m.users[p.AuthorID]; !ok {
		return ErrNotFound
	}

	m.lastPubID++
	p.ID = m.lastPubID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.now()
	}

	stored := *p
	stored.Author = nil
	m.publications[p.ID] = stored

	return nil
}

func (m *Memory) GetPublication(_ context.Context, id uint) (*model.Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.publications[id]
	if !ok {
		return nil, ErrNotFound
	}

	m.attachAuthor(&p)
	return &p, nil
}

func (m *Memory) ListPublications(_ context.Context, f PublicationFilter) ([]model.Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []model.Publication{}
	for _, p := range m.publications {
		if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
			continue
		}

		m.attachAuthor(&p)
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}

		return out[i].ID > out[j].ID
	})

	return out, nil
}

// must be called with m.mu held
func (m *Memory) attachAuthor(p *model.Publication) {
	if u, ok := m.users[p.AuthorID]; ok {
		p.Author = &u
	}
}
