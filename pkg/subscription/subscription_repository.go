package subscription

import (
	"GIVD-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		GetPlans(ctx context.Context) ([]*entities.Plan, error)
		GetPlanByID(ctx context.Context, id string) (*entities.Plan, error)
		GetUserSubscription(ctx context.Context, userID string) (*entities.Subscription, error)
		GetSubscriptionByOrderID(ctx context.Context, orderID string) (*entities.Subscription, error)
		CreateSubscription(ctx context.Context, sub *entities.Subscription) error
		UpdateSubscription(ctx context.Context, sub *entities.Subscription) error
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetPlans(ctx context.Context) ([]*entities.Plan, error) {
	var plans []*entities.Plan
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price asc").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *subscriptionRepository) GetPlanByID(ctx context.Context, id string) (*entities.Plan, error) {
	var plan entities.Plan
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *subscriptionRepository) GetUserSubscription(ctx context.Context, userID string) (*entities.Subscription, error) {
	var sub entities.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Plan").
		Order("created_at desc").
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetSubscriptionByOrderID(ctx context.Context, orderID string) (*entities.Subscription, error) {
	var sub entities.Subscription
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) CreateSubscription(ctx context.Context, sub *entities.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) UpdateSubscription(ctx context.Context, sub *entities.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}
