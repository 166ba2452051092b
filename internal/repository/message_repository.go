package repository

import (
	"context"

	"gorm.io/gorm"

	"chatapi/internal/model"
	"chatapi/internal/pagination"
)

// MessageFilter narrows message listings. Nil pointer fields mean "no
// filter on this attribute".
type MessageFilter struct {
	RoomID   uint
	UserID   uint
	IsSystem *bool
	Search   string
}

// MessageRepository defines message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uint) (*model.Message, error)
	FindByIDWithRelations(ctx context.Context, id uint) (*model.Message, error)
	// List returns messages newest first.
	List(ctx context.Context, filter MessageFilter, params pagination.Params) ([]model.Message, int64, error)
	Update(ctx context.Context, message *model.Message) error
	Delete(ctx context.Context, id uint) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	LastByUser(ctx context.Context, userID uint) (*model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindByIDWithRelations(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) List(ctx context.Context, filter MessageFilter, params pagination.Params) ([]model.Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Message{})

	if filter.RoomID != 0 {
		query = query.Where("room_id = ?", filter.RoomID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.IsSystem != nil {
		query = query.Where("is_system_message = ?", *filter.IsSystem)
	}
	if filter.Search != "" {
		// LIKE follows the store's collation; case-insensitive under the
		// MySQL utf8mb4 default.
		query = query.Where("content LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.Message
	err := query.Preload("User").Preload("Room").
		Order("created_at DESC").
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *messageRepository) Update(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Message{}, id).Error
}

func (r *messageRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) LastByUser(ctx context.Context, userID uint) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}
