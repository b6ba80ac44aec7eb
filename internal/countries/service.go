package countries

import (
	"context"
	"errors"

	"github.com/zjoart/paises/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Service validates candidates and delegates to the Store
type Service struct {
	store   Store
	workers int

	// onChange runs after every successful write; used to refresh the summary image
	onChange func()
}

// Option configures a Service
type Option func(*Service)

// WithWorkers bounds how many batch elements are processed at once
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithOnChange registers a hook run after successful writes
func WithOnChange(fn func()) Option {
	return func(s *Service) { s.onChange = fn }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, workers: 8}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// List returns every stored country
func (s *Service) List(ctx context.Context) ([]Country, error) {
	return s.store.List(ctx)
}

// Find returns the country whose field equals value, or nil when absent
func (s *Service) Find(ctx context.Context, field Field, value string) (*Country, error) {
	c, err := s.store.FindOne(ctx, field, value)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// FindByID returns the country with id, or nil when absent
func (s *Service) FindByID(ctx context.Context, id int64) (*Country, error) {
	c, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// Summary returns counts for the status endpoint
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	return s.store.Summary(ctx)
}

// checkDuplicates runs the name then code uniqueness checks. A nil existing
// means creation; otherwise unchanged values are skipped.
func (s *Service) checkDuplicates(ctx context.Context, c *Country, existing *Country) error {
	if existing == nil || c.Name != existing.Name {
		taken, err := s.store.Exists(ctx, FieldName, c.Name)
		if err != nil {
			return err
		}
		if taken {
			return errDuplicateName(c.Name)
		}
	}
	if existing == nil || c.Code != existing.Code {
		taken, err := s.store.Exists(ctx, FieldCode, c.Code)
		if err != nil {
			return err
		}
		if taken {
			return errDuplicateCode(c.Code)
		}
	}
	return nil
}

// translateWrite turns store constraint errors into validation failures
func translateWrite(err error, c *Country) error {
	switch {
	case errors.Is(err, ErrDuplicateName):
		return errDuplicateName(c.Name)
	case errors.Is(err, ErrDuplicateCode):
		return errDuplicateCode(c.Code)
	}
	return err
}

func (s *Service) create(ctx context.Context, candidate Country) (*Country, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkDuplicates(ctx, &candidate, nil); err != nil {
		return nil, err
	}
	candidate.ID = 0
	if err := s.store.Insert(ctx, &candidate); err != nil {
		return nil, translateWrite(err, &candidate)
	}
	return &candidate, nil
}

// Create validates and stores a single country
func (s *Service) Create(ctx context.Context, candidate Country) (*Country, error) {
	c, err := s.create(ctx, candidate)
	if err != nil {
		return nil, err
	}
	logger.Info("service: country saved", logger.Fields{"name": c.Name, "id": c.ID})
	s.changed()
	return c, nil
}

// ItemError is a failure of one element of a batch
type ItemError struct {
	Index int
	Err   error
}

// CreateResult holds the outcome of a batch, both slices in input order
type CreateResult struct {
	Saved  []Country
	Errors []ItemError
}

// CreateMany validates and stores each candidate independently.
// A failing element never prevents its siblings from being saved.
func (s *Service) CreateMany(ctx context.Context, candidates []Country) *CreateResult {
	saved := make([]*Country, len(candidates))
	errs := make([]error, len(candidates))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range candidates {
		i := i
		g.Go(func() error {
			saved[i], errs[i] = s.create(ctx, candidates[i])
			return nil
		})
	}
	_ = g.Wait()

	res := &CreateResult{Saved: []Country{}}
	for i := range candidates {
		if errs[i] != nil {
			logger.Warn("service: batch element rejected", logger.Fields{"index": i}, logger.WithError(errs[i]))
			res.Errors = append(res.Errors, ItemError{Index: i, Err: errs[i]})
			continue
		}
		res.Saved = append(res.Saved, *saved[i])
	}

	logger.Info("service: batch create complete", logger.Fields{"saved": len(res.Saved), "failed": len(res.Errors)})
	if len(res.Saved) > 0 {
		s.changed()
	}
	return res
}

// Update replaces name, code and capital of the country with id.
// Continent and language keep their stored values.
func (s *Service) Update(ctx context.Context, id int64, candidate Country) (*Country, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, errNotFoundID(id)
	}
	if err != nil {
		return nil, err
	}

	if err := s.checkDuplicates(ctx, &candidate, existing); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = candidate.Name
	updated.Code = candidate.Code
	updated.Capital = candidate.Capital
	if err := s.store.Update(ctx, &updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errNotFoundID(id)
		}
		return nil, translateWrite(err, &updated)
	}

	logger.Info("service: country updated", logger.Fields{"id": id})
	s.changed()
	return &updated, nil
}

// Delete removes the country with id
func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errNotFoundID(id)
	}
	ok, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errNotFoundID(id)
	}
	s.changed()
	return nil
}

// DeleteByName removes every country named exactly name
func (s *Service) DeleteByName(ctx context.Context, name string) error {
	n, err := s.store.DeleteByName(ctx, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFoundName(name)
	}
	s.changed()
	return nil
}

// DeleteByContinent removes all countries of a continent atomically
func (s *Service) DeleteByContinent(ctx context.Context, continent string) (int64, error) {
	n, err := s.store.DeleteByContinent(ctx, continent)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errNotFoundContinent(continent)
	}
	s.changed()
	return n, nil
}
