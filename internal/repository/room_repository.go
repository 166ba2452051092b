package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chatapi/internal/model"
	"chatapi/internal/pagination"
)

// RoomFilter narrows room listings.
type RoomFilter struct {
	Search     string
	IsPrivate  *bool
	MemberID   uint // non-zero: only rooms this user belongs to
	PublicOnly bool
}

// RoomRepository defines room persistence operations.
type RoomRepository interface {
	// Create persists the room and its creator's admin membership in one
	// transaction; either both rows exist afterwards or neither does.
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id uint) (*model.Room, error)
	FindByIDWithRelations(ctx context.Context, id uint) (*model.Room, error)
	List(ctx context.Context, filter RoomFilter, params pagination.Params) ([]model.Room, int64, error)
	ListByMember(ctx context.Context, userID uint, params pagination.Params) ([]model.Room, int64, error)
	CountCreatedBy(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id uint) error
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		membership := &model.Membership{
			UserID:   room.CreatedBy,
			RoomID:   room.ID,
			IsAdmin:  true,
			JoinedAt: time.Now(),
		}
		return tx.Create(membership).Error
	})
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByIDWithRelations(ctx context.Context, id uint) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Memberships.User").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context, filter RoomFilter, params pagination.Params) ([]model.Room, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Room{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.IsPrivate != nil {
		query = query.Where("is_private = ?", *filter.IsPrivate)
	}
	if filter.MemberID != 0 {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&model.Membership{}).Select("room_id").Where("user_id = ?", filter.MemberID),
		)
	}
	if filter.PublicOnly {
		query = query.Where("is_private = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rooms []model.Room
	err := query.Preload("Creator").Preload("Memberships.User").
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

func (r *roomRepository) ListByMember(ctx context.Context, userID uint, params pagination.Params) ([]model.Room, int64, error) {
	return r.List(ctx, RoomFilter{MemberID: userID}, params)
}

func (r *roomRepository) CountCreatedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Room{}).
		Where("created_by = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, id).Error
}
