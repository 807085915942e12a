package repositories

import (
	"context"
	"fmt"
	"time"

	"digiwallet/internal/models"

	"gorm.io/gorm"
)

// RecurringPaymentRepository provides durable access to recurring payment
// schedules.
type RecurringPaymentRepository interface {
	Create(p *models.RecurringPayment) error
	Update(p *models.RecurringPayment) error
	GetByID(id uint) (*models.RecurringPayment, error)
	GetByUserID(userID uint) ([]*models.RecurringPayment, error)

	// FindDue returns active payments in the given status whose
	// NextRunDate is on or before the given date.
	FindDue(ctx context.Context, status string, date time.Time) ([]*models.RecurringPayment, error)
}

type recurringPaymentRepository struct {
	db *gorm.DB
}

func NewRecurringPaymentRepository(db *gorm.DB) RecurringPaymentRepository {
	return &recurringPaymentRepository{db: db}
}

func (r *recurringPaymentRepository) Create(p *models.RecurringPayment) error {
	if err := r.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to create recurring payment: %w", err)
	}
	return nil
}

func (r *recurringPaymentRepository) Update(p *models.RecurringPayment) error {
	if err := r.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to update recurring payment: %w", err)
	}
	return nil
}

func (r *recurringPaymentRepository) GetByID(id uint) (*models.RecurringPayment, error) {
	var p models.RecurringPayment
	if err := r.db.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecurringPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get recurring payment: %w", err)
	}
	return &p, nil
}

func (r *recurringPaymentRepository) GetByUserID(userID uint) ([]*models.RecurringPayment, error) {
	var payments []*models.RecurringPayment
	if err := r.db.Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get user recurring payments: %w", err)
	}
	return payments, nil
}

func (r *recurringPaymentRepository) FindDue(ctx context.Context, status string, date time.Time) ([]*models.RecurringPayment, error) {
	var payments []*models.RecurringPayment
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND status = ? AND next_run_date <= ?", true, status, date).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find due payments: %w", err)
	}
	return payments, nil
}
