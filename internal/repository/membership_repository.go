package repository

import (
	"context"

	"gorm.io/gorm"

	"chatapi/internal/model"
)

// MembershipRepository defines persistence operations on the user-room
// join rows.
type MembershipRepository interface {
	Create(ctx context.Context, membership *model.Membership) error
	// Find returns gorm.ErrRecordNotFound when no membership exists for
	// the (room, user) pair.
	Find(ctx context.Context, roomID, userID uint) (*model.Membership, error)
	Delete(ctx context.Context, roomID, userID uint) error
	ListByRoom(ctx context.Context, roomID uint) ([]model.Membership, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountAdminByUser(ctx context.Context, userID uint) (int64, error)
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *membershipRepository) Find(ctx context.Context, roomID, userID uint) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) Delete(ctx context.Context, roomID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&model.Membership{}).Error
}

func (r *membershipRepository) ListByRoom(ctx context.Context, roomID uint) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("joined_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *membershipRepository) CountAdminByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("user_id = ? AND is_admin = ?", userID, true).
		Count(&count).Error
	return count, err
}
