package countries

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var errInjected = errors.New("injected store failure")

// memStore is an in-memory Store that enforces the same unique indexes as the
// SQL schema. fail, when set, is consulted before each operation by name.
type memStore struct {
	mu     sync.Mutex
	rows   map[int64]Country
	nextID int64

	fail func(op string) error
}

func newMemStore(seed ...Country) *memStore {
	m := &memStore{rows: map[int64]Country{}}
	for _, c := range seed {
		if err := m.Insert(context.Background(), &c); err != nil {
			panic(err)
		}
	}
	return m
}

func (m *memStore) check(op string) error {
	if m.fail != nil {
		return m.fail(op)
	}
	return nil
}

func fieldValue(c Country, f Field) (string, bool) {
	switch f {
	case FieldName:
		return c.Name, true
	case FieldCapital:
		return c.Capital, true
	case FieldCode:
		return c.Code, true
	case FieldContinent:
		if c.Continent == nil {
			return "", false
		}
		return *c.Continent, true
	case FieldLanguage:
		if c.Language == nil {
			return "", false
		}
		return *c.Language, true
	}
	return "", false
}

func (m *memStore) sorted() []Country {
	out := make([]Country, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) List(ctx context.Context) ([]Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("List"); err != nil {
		return nil, err
	}
	return m.sorted(), nil
}

func (m *memStore) FindByID(ctx context.Context, id int64) (*Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("FindByID"); err != nil {
		return nil, err
	}
	c, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memStore) FindOne(ctx context.Context, field Field, value string) (*Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("FindOne"); err != nil {
		return nil, err
	}
	for _, c := range m.sorted() {
		if v, ok := fieldValue(c, field); ok && v == value {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Exists(ctx context.Context, field Field, value string) (bool, error) {
	c, err := m.FindOne(ctx, field, value)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return c != nil, err
}

func (m *memStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	c, err := m.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return c != nil, err
}

func (m *memStore) conflict(c *Country) error {
	for id, other := range m.rows {
		if id == c.ID {
			continue
		}
		if other.Name == c.Name {
			return ErrDuplicateName
		}
		if other.Code == c.Code {
			return ErrDuplicateCode
		}
	}
	return nil
}

func (m *memStore) Insert(ctx context.Context, c *Country) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Insert"); err != nil {
		return err
	}
	c.ID = 0
	if err := m.conflict(c); err != nil {
		return err
	}
	m.nextID++
	c.ID = m.nextID
	m.rows[c.ID] = *c
	return nil
}

func (m *memStore) Update(ctx context.Context, c *Country) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Update"); err != nil {
		return err
	}
	if _, ok := m.rows[c.ID]; !ok {
		return ErrNotFound
	}
	if err := m.conflict(c); err != nil {
		return err
	}
	m.rows[c.ID] = *c
	return nil
}

func (m *memStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("DeleteByID"); err != nil {
		return false, err
	}
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func (m *memStore) DeleteByName(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("DeleteByName"); err != nil {
		return 0, err
	}
	var n int64
	for id, c := range m.rows {
		if c.Name == name {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

// DeleteByContinent stages the deletion and only applies it when every
// per-row step succeeds, mirroring the transactional SQL implementation.
func (m *memStore) DeleteByContinent(ctx context.Context, continent string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []int64
	for _, c := range m.sorted() {
		if c.Continent != nil && *c.Continent == continent {
			if err := m.check("DeleteByContinent.row"); err != nil {
				return 0, err
			}
			ids = append(ids, c.ID)
		}
	}
	for _, id := range ids {
		delete(m.rows, id)
	}
	return int64(len(ids)), nil
}

func (m *memStore) Summary(ctx context.Context) (*Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := &Summary{PerContinent: map[string]int64{}}
	for _, c := range m.rows {
		key := NoContinent
		if c.Continent != nil {
			key = *c.Continent
		}
		sum.PerContinent[key]++
		sum.Total++
	}
	return sum, nil
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func strPtr(s string) *string { return &s }
