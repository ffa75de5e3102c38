package domain

import "time"

type PaymentStatus string

const (
	PaymentInitiated  PaymentStatus = "Initiated"
	PaymentProcessing PaymentStatus = "Processing"
	PaymentSuccess    PaymentStatus = "Success"
	PaymentFailed     PaymentStatus = "Failed"
	PaymentCancelled  PaymentStatus = "Cancelled"
	PaymentRefunded   PaymentStatus = "Refunded"
	PaymentPartial    PaymentStatus = "Partial"
)

type RefundStatus string

const (
	RefundNotInitiated RefundStatus = "Not Initiated"
	RefundPending      RefundStatus = "Pending"
	RefundProcessed    RefundStatus = "Processed"
	RefundFailed       RefundStatus = "Failed"
	RefundPartial      RefundStatus = "Partial"
)

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "Credit Card"
	MethodDebitCard  PaymentMethod = "Debit Card"
	MethodUPI        PaymentMethod = "UPI"
	MethodNetBanking PaymentMethod = "Net Banking"
	MethodWallet     PaymentMethod = "Wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking, MethodWallet:
		return true
	}
	return false
}

type PaymentDetails struct {
	CardLast4 string `json:"card_last4,omitempty" gorm:"column:card_last4"`
	CardBrand string `json:"card_brand,omitempty" gorm:"column:card_brand"`
	UpiID     string `json:"upi_id,omitempty" gorm:"column:upi_id"`
	BankName  string `json:"bank_name,omitempty" gorm:"column:bank_name"`
}

// GatewayResponse captures the simulated processor's callback verbatim.
type GatewayResponse struct {
	Gateway              string `json:"gateway,omitempty" gorm:"column:gateway"`
	GatewayTransactionID string `json:"gateway_transaction_id,omitempty" gorm:"column:gateway_transaction_id;index"`
	Response             string `json:"response,omitempty" gorm:"column:gateway_raw_response;type:text"`
}

type Refund struct {
	RefundID     string       `json:"refund_id,omitempty" gorm:"column:refund_id"`
	Amount       float64      `json:"refund_amount" gorm:"column:refund_amount"`
	Status       RefundStatus `json:"refund_status" gorm:"column:refund_status;type:varchar(20);default:'Not Initiated'"`
	Reason       string       `json:"refund_reason,omitempty" gorm:"column:refund_reason;type:text"`
	InitiatedAt  *time.Time   `json:"refund_initiated_at,omitempty" gorm:"column:refund_initiated_at"`
	CompletedAt  *time.Time   `json:"refund_completed_at,omitempty" gorm:"column:refund_completed_at"`
}

const DefaultMaxRetries = 3

type Payment struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	TransactionID string          `json:"transaction_id" gorm:"uniqueIndex;not null"`
	BookingID     int64           `json:"booking_id" gorm:"index;not null"`
	UserID        int64           `json:"user_id" gorm:"index;not null"`
	Amount        float64         `json:"amount" gorm:"not null" validate:"gte=0"`
	Currency      string          `json:"currency" gorm:"default:'INR'"`
	Method        PaymentMethod   `json:"payment_method" gorm:"column:payment_method;type:varchar(20)"`
	Details       PaymentDetails  `json:"payment_details" gorm:"embedded"`
	Status        PaymentStatus   `json:"status" gorm:"type:varchar(20);default:'Initiated';index"`
	Gateway       GatewayResponse `json:"gateway_response" gorm:"embedded"`
	Refund        Refund          `json:"refund" gorm:"embedded"`
	FailureReason string          `json:"failure_reason,omitempty" gorm:"type:text"`
	RetryCount    int             `json:"retry_count" gorm:"default:0"`
	MaxRetries    int             `json:"max_retries" gorm:"default:3"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"-" gorm:"index"`
}

func (Payment) TableName() string { return "payments" }

// Refundable reports whether a refund may be requested: the payment succeeded
// and no refund has been initiated yet.
func (p *Payment) Refundable() bool {
	return p.Status == PaymentSuccess && p.Refund.Status == RefundNotInitiated
}
