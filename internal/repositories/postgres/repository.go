package postgres

import (
	"context"

	"github.com/SAP-F-2025/behavioral-assessment/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db         *gorm.DB
	user       repositories.UserRepository
	invitation repositories.InvitationRepository
	result     repositories.ResultRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:         db,
		user:       NewUserPostgreSQL(db),
		invitation: NewInvitationPostgreSQL(db),
		result:     NewResultPostgreSQL(db),
	}
}

func (r *repository) User() repositories.UserRepository             { return r.user }
func (r *repository) Invitation() repositories.InvitationRepository { return r.invitation }
func (r *repository) Result() repositories.ResultRepository         { return r.result }

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// getDB prefers the caller's transaction over the root connection.
func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
