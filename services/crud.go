package services

import (
	"context"
	"errors"
	"time"

	"consultancy-backend/models"

	"gorm.io/gorm"
)

// base carries what every service needs: the database and a clock.
type base struct {
	db  *gorm.DB
	now func() time.Time
}

func newBase(db *gorm.DB) base {
	return base{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// SetClock replaces the time source. Tests use it to pin dates.
func (b *base) SetClock(now func() time.Time) { b.now = now }

func (b *base) tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return b.db.WithContext(ctx).Transaction(fn)
}

// ListFilter narrows list queries. Empty fields are ignored.
type ListFilter struct {
	ProjectID string
	Status    string
}

func (f ListFilter) apply(q *gorm.DB) *gorm.DB {
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func getByID[T any](tx *gorm.DB, entity, id string) (*T, error) {
	var out T
	if err := tx.Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFoundOr(err, entity, id)
	}
	return &out, nil
}

func listAll[T any](tx *gorm.DB, filter ListFilter, order string) ([]T, error) {
	out := []T{}
	if err := filter.apply(tx.Model(new(T))).Order(order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// patchByID applies column updates to one row and returns the fresh row.
func patchByID[T any](tx *gorm.DB, entity, id string, updates map[string]any) (*T, error) {
	if _, err := getByID[T](tx, entity, id); err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := tx.Model(new(T)).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return getByID[T](tx, entity, id)
}

func deleteByID[T any](tx *gorm.DB, entity, id string) error {
	res := tx.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

// projectName resolves the denormalized name for an optional project reference.
func projectName(tx *gorm.DB, id *string) (string, error) {
	if id == nil || *id == "" {
		return "", nil
	}
	var p models.Project
	if err := tx.Select("id", "name").Where("id = ?", *id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", newValidationError("project_id", "unknown project %q", *id)
		}
		return "", err
	}
	return p.Name, nil
}

// clientName resolves the denormalized name for an optional client reference.
func clientName(tx *gorm.DB, id *string) (string, error) {
	if id == nil || *id == "" {
		return "", nil
	}
	var c models.Client
	if err := tx.Select("id", "name").Where("id = ?", *id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", newValidationError("client_id", "unknown client %q", *id)
		}
		return "", err
	}
	return c.Name, nil
}

// refreshReference rewrites the denormalized name column when a patch moves a
// record to another project or client.
func refreshReference(tx *gorm.DB, updates map[string]any, idKey, nameKey string,
	resolve func(*gorm.DB, *string) (string, error)) error {
	raw, ok := updates[idKey]
	if !ok {
		return nil
	}
	id, _ := raw.(string)
	if id == "" {
		updates[idKey] = nil
		updates[nameKey] = ""
		return nil
	}
	name, err := resolve(tx, &id)
	if err != nil {
		return err
	}
	updates[nameKey] = name
	return nil
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
