// Package gateway simulates the external payment processor. It keeps its own
// embedded ledger of charge registrations and callback deliveries so the
// payment module can hand out gateway request blobs and accept webhook
// redeliveries idempotently. No real gateway is ever contacted.
package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	bolt "github.com/boltdb/bolt"
)

var (
	chargesBucket   = []byte("charges")
	callbacksBucket = []byte("callbacks")
)

// ErrUnknownCharge is returned for a callback referencing a transaction the
// gateway never saw.
var ErrUnknownCharge = errors.New("unknown gateway charge")

// ChargeRequest is the blob a client would forward to the processor's checkout.
type ChargeRequest struct {
	Gateway     string  `json:"gateway"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Receipt     string  `json:"receipt"`
}

type chargeRecord struct {
	TransactionID string    `json:"transaction_id"`
	Request       ChargeRequest `json:"request"`
	CreatedAt     time.Time `json:"created_at"`
}

type Simulator struct {
	db   *bolt.DB
	name string
}

// NewSimulator opens (or creates) the gateway ledger at path.
func NewSimulator(path, name string) (*Simulator, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(chargesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(callbacksBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Simulator{db: db, name: name}, nil
}

func (s *Simulator) Close() error { return s.db.Close() }

// Register records a charge and returns the request blob. Registering the
// same transaction id again returns the stored record unchanged without
// writing.
func (s *Simulator) Register(txnID string, amount float64, currency, description string) (*ChargeRequest, error) {
	var out ChargeRequest
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(chargesBucket)

		if existing := b.Get([]byte(txnID)); existing != nil {
			var rec chargeRecord
			if err := json.Unmarshal(existing, &rec); err != nil {
				return err
			}
			out = rec.Request
			return nil
		}

		rec := chargeRecord{
			TransactionID: txnID,
			Request: ChargeRequest{
				Gateway:     s.name,
				Amount:      amount,
				Currency:    currency,
				Description: description,
				Receipt:     txnID,
			},
			CreatedAt: time.Now().UTC(),
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		out = rec.Request
		return b.Put([]byte(txnID), raw)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordCallback stores a callback delivery verbatim. A byte-identical
// redelivery is skipped entirely; the bool reports whether a write happened.
func (s *Simulator) RecordCallback(txnID string, delivery []byte) (bool, error) {
	var written bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(chargesBucket).Get([]byte(txnID)) == nil {
			return ErrUnknownCharge
		}

		b := tx.Bucket(callbacksBucket)
		if bytes.Equal(b.Get([]byte(txnID)), delivery) {
			return nil
		}
		written = true
		return b.Put([]byte(txnID), delivery)
	})
	return written, err
}
