package http

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tenderdesk/procurement-service/internal/domain"
	"github.com/tenderdesk/procurement-service/internal/repository"
)

type memUsers struct {
	mu     sync.Mutex
	rows   []domain.User
	nextID int64
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.rows = append(m.rows, *user)
	return nil
}

func (m *memUsers) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			m.rows[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memUsers) Deactivate(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].IsActive = false
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memUsers) find(match func(domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return m.find(func(u domain.User) bool { return u.ID == id })
}

func (m *memUsers) GetActiveByUsername(_ context.Context, username string) (*domain.User, error) {
	return m.find(func(u domain.User) bool { return u.IsActive && u.Username == username })
}

func (m *memUsers) GetActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.find(func(u domain.User) bool { return u.IsActive && u.Email == email })
}

func (m *memUsers) ListActiveByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, u := range m.rows {
		if u.IsActive && u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) ExistsWithRole(_ context.Context, role domain.Role) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) countInactive(username string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.rows {
		if !u.IsActive && u.Username == username {
			n++
		}
	}
	return n
}

type memItems struct {
	mu     sync.Mutex
	rows   []domain.Item
	nextID int64
}

func (m *memItems) Create(_ context.Context, item *domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	item.ID = m.nextID
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	m.rows = append(m.rows, *item)
	return nil
}

func (m *memItems) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.rows {
		if it.ID == id {
			found := it
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memItems) List(_ context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Item
	for _, it := range m.rows {
		if filter.UserID != nil && it.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && it.Status != *filter.Status {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (m *memItems) UpdateStatus(_ context.Context, item *domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == item.ID {
			m.rows[i].Status = item.Status
			item.UpdatedAt = time.Now()
			m.rows[i].UpdatedAt = item.UpdatedAt
			return nil
		}
	}
	return pgx.ErrNoRows
}
