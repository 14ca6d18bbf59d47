package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderFilter scopes reporting queries. AND semantics across fields, OR
// semantics within each field slice. The zero filter matches all orders.
type OrderFilter struct {
	CustomerIDs []int64
	Statuses    []OrderStatus
	CreatedAt   *TimeRange
}

func (f OrderFilter) Validate() error {
	if f.CreatedAt != nil {
		if err := f.CreatedAt.Validate(); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
	}

	return nil
}

type TimeRange struct {
	Before *time.Time
	After  *time.Time
}

func (t TimeRange) Validate() error {
	if t.Before == nil && t.After == nil {
		return errors.New("both Before and After are nil")
	}

	if t.Before != nil && t.After != nil {
		if t.Before.Before(*t.After) {
			return fmt.Errorf("before precedes After")
		}
	}

	return nil
}
