package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeExpenseToken creates a base64 token from an expense's creation time
// and ID. Listing endpoints page on (created_at DESC, expense_id DESC), so
// both fields are needed to resume after ties.
func EncodeExpenseToken(createdAt time.Time, expenseID string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.Format(timeFormat), expenseID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeExpenseToken parses the token produced by EncodeExpenseToken.
func DecodeExpenseToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return createdAt, parts[1], nil
}
