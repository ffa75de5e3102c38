package gateway

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	s, err := NewSimulator(filepath.Join(t.TempDir(), "gateway.db"), "SimPay")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRegisterIsIdempotent(t *testing.T) {
	s := newTestSimulator(t)

	first, err := s.Register("TXN1", 7080, "INR", "Hotel booking BK1")
	require.NoError(t, err)
	assert.Equal(t, "SimPay", first.Gateway)
	assert.Equal(t, 7080.0, first.Amount)
	assert.Equal(t, "TXN1", first.Receipt)

	// same transaction id with different arguments returns the stored record
	second, err := s.Register("TXN1", 9999, "USD", "tampered")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecordCallbackSkipsIdenticalRedelivery(t *testing.T) {
	s := newTestSimulator(t)
	_, err := s.Register("TXN1", 7080, "INR", "Hotel booking BK1")
	require.NoError(t, err)

	delivery := []byte(`{"transaction_id":"TXN1","status":"Success"}`)

	written, err := s.RecordCallback("TXN1", delivery)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = s.RecordCallback("TXN1", delivery)
	require.NoError(t, err)
	assert.False(t, written, "byte-identical redelivery writes nothing")

	written, err = s.RecordCallback("TXN1", []byte(`{"status":"Failed"}`))
	require.NoError(t, err)
	assert.True(t, written, "a different delivery is stored")
}

func TestRecordCallbackUnknownCharge(t *testing.T) {
	s := newTestSimulator(t)

	_, err := s.RecordCallback("TXN404", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownCharge)
}
