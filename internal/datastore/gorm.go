package datastore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
)

type GormStore struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormStore(db *gorm.DB, timeout time.Duration) *GormStore {
	return &GormStore{db: db, timeout: timeout}
}

func (s *GormStore) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if s.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			return s.db.WithContext(ctx), cancel
		}
	}
	return s.db.WithContext(ctx), func() {}
}

func applyFilters(tx *gorm.DB, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		if err := validIdentifier(f.Column); err != nil {
			return nil, err
		}
		if f.Op == OpIn {
			tx = tx.Where(f.Column+" IN ?", f.Value)
			continue
		}
		tx = tx.Where(f.Column+" "+string(f.Op)+" ?", normalize(f.Value))
	}
	return tx, nil
}

func (s *GormStore) query(tx *gorm.DB, table string, q Query) (*gorm.DB, error) {
	if err := validIdentifier(table); err != nil {
		return nil, err
	}

	tx = tx.Table(table)
	tx, err := applyFilters(tx, q.Filters)
	if err != nil {
		return nil, err
	}

	if q.Order != "" {
		if err := validIdentifier(q.Order); err != nil {
			return nil, err
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.Order}, Desc: q.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	for _, assoc := range q.Embed {
		tx = tx.Preload(assoc)
	}
	return tx, nil
}

func (s *GormStore) Get(ctx context.Context, table string, q Query, dest any) error {
	db, cancel := s.session(ctx)
	defer cancel()

	tx, err := s.query(db, table, q)
	if err != nil {
		return err
	}
	return httperr.NewStoreError("get", table, tx.Find(dest).Error)
}

func (s *GormStore) First(ctx context.Context, table string, q Query, dest any) error {
	db, cancel := s.session(ctx)
	defer cancel()

	tx, err := s.query(db, table, q)
	if err != nil {
		return err
	}
	return httperr.NewStoreError("get", table, tx.Take(dest).Error)
}

func (s *GormStore) Count(ctx context.Context, table string, filters ...Filter) (int64, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	tx, err := s.query(db, table, Query{Filters: filters})
	if err != nil {
		return 0, err
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, httperr.NewStoreError("count", table, err)
	}
	return n, nil
}

func (s *GormStore) Insert(ctx context.Context, table string, record any) error {
	if err := validIdentifier(table); err != nil {
		return err
	}
	db, cancel := s.session(ctx)
	defer cancel()

	return httperr.NewStoreError("insert", table, db.Table(table).Create(record).Error)
}

func (s *GormStore) Update(
	ctx context.Context,
	table string,
	filters []Filter,
	patch map[string]any,
) (int64, error) {
	if len(filters) == 0 {
		// an unfiltered update is never what the core means
		return 0, httperr.NewStoreError("update", table, gorm.ErrMissingWhereClause)
	}

	db, cancel := s.session(ctx)
	defer cancel()

	tx, err := s.query(db, table, Query{Filters: filters})
	if err != nil {
		return 0, err
	}

	normalized := make(map[string]any, len(patch))
	for k, v := range patch {
		if err := validIdentifier(k); err != nil {
			return 0, err
		}
		normalized[k] = normalize(v)
	}

	res := tx.Updates(normalized)
	if res.Error != nil {
		return 0, httperr.NewStoreError("update", table, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) Upsert(ctx context.Context, table string, record any, conflictColumns ...string) error {
	if err := validIdentifier(table); err != nil {
		return err
	}

	cols := make([]clause.Column, 0, len(conflictColumns))
	for _, c := range conflictColumns {
		if err := validIdentifier(c); err != nil {
			return err
		}
		cols = append(cols, clause.Column{Name: c})
	}

	db, cancel := s.session(ctx)
	defer cancel()

	err := db.Table(table).
		Clauses(clause.OnConflict{Columns: cols, UpdateAll: true}).
		Create(record).Error
	return httperr.NewStoreError("upsert", table, err)
}

func (s *GormStore) Delete(ctx context.Context, table string, model any, filters ...Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, httperr.NewStoreError("delete", table, gorm.ErrMissingWhereClause)
	}

	db, cancel := s.session(ctx)
	defer cancel()

	tx, err := s.query(db, table, Query{Filters: filters})
	if err != nil {
		return 0, err
	}

	res := tx.Delete(model)
	if res.Error != nil {
		return 0, httperr.NewStoreError("delete", table, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) Tx(ctx context.Context, fn func(tx Store) error) error {
	db, cancel := s.session(ctx)
	defer cancel()

	return db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// Compile-time check
var _ Store = (*GormStore)(nil)
