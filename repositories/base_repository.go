package repositories

import (
	"context"
	"errors"
	"strings"

	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/pkg/queryparams"
	"gestionmax.fr/hub/pkg/textsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope affine une requête de liste (filtres propres à chaque entité).
type Scope func(db *gorm.DB) *gorm.DB

// IBaseRepository regroupe le CRUD générique des entités "à plat".
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint, preloads ...string) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	FindPaginated(ctx context.Context, params queryparams.ListParams, scopes ...Scope) ([]T, int64, error)
	SetAllowedSortColumns(columns []string)
}

// BaseRepository implémente IBaseRepository pour n'importe quel modèle gorm.
type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]bool
}

// NewBaseRepository crée un repository générique sur db.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{
		db:                 db,
		allowedSortColumns: map[string]bool{"id": true, "created_at": true},
	}
}

// SetAllowedSortColumns remplace la liste blanche des colonnes de tri.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSortColumns[c] = true
	}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entité nil")
	}
	return translateError(r.getDB(ctx).Omit(clause.Associations).Create(entity).Error)
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint, preloads ...string) (*T, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var entity T
	q := r.getDB(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&entity, id).Error; err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("BaseRepository.FindByID: erreur DB", zap.Uint("id", id), zap.Error(err))
		}
		return nil, err
	}
	return &entity, nil
}

// Save écrit toutes les colonnes de l'entité, sans toucher aux associations.
func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entité nil")
	}
	return translateError(r.getDB(ctx).Omit(clause.Associations).Save(entity).Error)
}

// Delete supprime définitivement la ligne ; ErrNotFound si rien n'a été supprimé.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Delete(new(T), id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	err := r.getDB(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindPaginated applique les scopes, compte, trie sur une colonne autorisée puis pagine.
func (r *BaseRepository[T]) FindPaginated(ctx context.Context, params queryparams.ListParams, scopes ...Scope) ([]T, int64, error) {
	var results []T
	var total int64

	query := r.getDB(ctx).Model(new(T))
	for _, s := range scopes {
		query = s(query)
	}

	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		configslog.Log.Error("BaseRepository.FindPaginated: comptage en erreur", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	sortBy := params.SortBy
	if !r.allowedSortColumns[sortBy] {
		configslog.SLog.Debugf("Colonne de tri refusée (%s), created_at utilisé", sortBy)
		sortBy = queryparams.DefaultSortBy
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: sortBy}, Desc: orderBy == "desc"}).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	if err != nil {
		configslog.Log.Error("BaseRepository.FindPaginated: lecture en erreur", zap.Error(err))
		return nil, total, err
	}
	return results, total, nil
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)

func statusScope(status string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("statut = ?", status)
	}
}

func searchScope(term string, columns ...string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(term) == "" {
			return db
		}
		fragment, args := textsearch.SQLFilterAny(columns, term)
		return db.Where(fragment, args...)
	}
}
