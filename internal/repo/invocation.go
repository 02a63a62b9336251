package repo

import (
	"context"

	"github.com/KNICEX/btcmarkets-cli/internal/entity"
	"gorm.io/gorm"
)

type InvocationRepo interface {
	Create(ctx context.Context, inv entity.Invocation) (int64, error)
	// Latest returns up to limit invocations, newest first.
	Latest(ctx context.Context, limit int) ([]entity.Invocation, error)
	FindByCommand(ctx context.Context, command string) ([]entity.Invocation, error)
}

type invocationRepo struct {
	db *gorm.DB
}

func NewInvocationRepo(db *gorm.DB) InvocationRepo {
	return &invocationRepo{
		db: db,
	}
}

func (r *invocationRepo) Create(ctx context.Context, inv entity.Invocation) (int64, error) {
	err := r.db.WithContext(ctx).Create(&inv).Error
	if err != nil {
		return 0, err
	}
	return inv.Id, nil
}

func (r *invocationRepo) Latest(ctx context.Context, limit int) ([]entity.Invocation, error) {
	var invs []entity.Invocation
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}

func (r *invocationRepo) FindByCommand(ctx context.Context, command string) ([]entity.Invocation, error) {
	var invs []entity.Invocation
	err := r.db.WithContext(ctx).Where("command = ?", command).Order("id").Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}
