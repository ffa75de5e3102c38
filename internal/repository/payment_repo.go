package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourstay/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("deleted_at IS NULL").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, txnID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ? AND deleted_at IS NULL", txnID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("user_id = ? AND deleted_at IS NULL", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PaymentRepository) Save(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// MarkSuccessIdempotent moves the payment to Success exactly once. Returns
// false without writing when the payment is already Success, so repeated
// gateway deliveries of the same outcome are no-ops.
func (r *PaymentRepository) MarkSuccessIdempotent(ctx context.Context, txnID, gateway, gatewayTxnID, rawResponse string) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ?", txnID).
			First(&p).Error; err != nil {
			return err
		}
		if p.Status == domain.PaymentSuccess {
			changed = false
			return nil
		}
		res := tx.Model(&domain.Payment{}).Where("transaction_id = ?", txnID).
			Updates(map[string]interface{}{
				"status":                 domain.PaymentSuccess,
				"gateway":                gateway,
				"gateway_transaction_id": gatewayTxnID,
				"gateway_raw_response":   rawResponse,
				"failure_reason":         "",
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}

type PaymentOverallStats struct {
	TotalAmount        float64 `json:"total_amount"`
	TotalTransactions  int64   `json:"total_transactions"`
	AverageTransaction float64 `json:"average_transaction"`
}

type PaymentGroupStat struct {
	Key    string  `json:"key"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type PaymentStats struct {
	Overall  PaymentOverallStats `json:"overall"`
	ByMethod []PaymentGroupStat  `json:"by_method"`
	ByStatus []PaymentGroupStat  `json:"by_status"`
}

func (r *PaymentRepository) Stats(ctx context.Context) (*PaymentStats, error) {
	var stats PaymentStats

	if err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("status = ?", domain.PaymentSuccess).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(1) AS total_transactions, COALESCE(AVG(amount), 0) AS average_transaction").
		Scan(&stats.Overall).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("status = ?", domain.PaymentSuccess).
		Select("payment_method AS key, COUNT(1) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("payment_method").
		Scan(&stats.ByMethod).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Select("status AS key, COUNT(1) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Scan(&stats.ByStatus).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// DeletedAt tombstones are set by admins only; kept here for symmetry with
// bookings.
func (r *PaymentRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}
