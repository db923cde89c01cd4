package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeExpenseToken(t *testing.T) {
	// Test case 1: Standard date/time values
	createdAt := time.Date(2025, 6, 15, 14, 30, 45, 123456789, time.UTC)
	expenseID := "0b6f9f2e-7f0f-4c8e-9a39-2e4f4a1c9d1e"

	token := EncodeExpenseToken(createdAt, expenseID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedExpenseID, err := DecodeExpenseToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, expenseID, decodedExpenseID, "Expense ID should match after decode")

	// Test case 2: Zero time value
	zeroToken := EncodeExpenseToken(time.Time{}, expenseID)
	decodedZeroTime, decodedID, err := DecodeExpenseToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, time.Time{}, decodedZeroTime, "Zero time should match after decode")
	assert.Equal(t, expenseID, decodedID, "Expense ID should match after decode")

	// Test case 3: Current time values
	now := time.Now().UTC()
	nowToken := EncodeExpenseToken(now, expenseID)
	decodedNow, _, err := DecodeExpenseToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
}

func TestDecodeExpenseTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeExpenseToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	noSeparator := base64.StdEncoding.EncodeToString([]byte("2025-06-15T00:00:00Z"))
	_, _, err = DecodeExpenseToken(noSeparator)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid timestamp
	badTime := base64.StdEncoding.EncodeToString([]byte("notatime|some-expense-id"))
	_, _, err = DecodeExpenseToken(badTime)
	assert.Error(t, err, "Should return an error for invalid timestamp format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention timestamp parsing issue")
}

func TestExpenseTokenPreservesIDsContainingSeparator(t *testing.T) {
	// IDs are UUIDs in practice, but the codec must not corrupt a value
	// containing the separator character.
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	_, decodedID, err := DecodeExpenseToken(EncodeExpenseToken(createdAt, "weird|id"))
	assert.NoError(t, err)
	assert.Equal(t, "weird|id", decodedID, "SplitN should keep everything after the first separator")
}
