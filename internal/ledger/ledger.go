// Package ledger keeps the append-only sales journal.
package ledger

import (
	"fmt"
	"iter"
	"time"

	"posledger/internal/domain"
	"posledger/internal/money"
)

type Ledger struct {
	sales  []domain.Sale
	nextID int
}

func New() *Ledger { return &Ledger{nextID: 1} }

// Restore rebuilds a ledger from persisted sales in their stored order.
// The next id is max(id)+1.
func Restore(sales []domain.Sale) (*Ledger, error) {
	l := New()
	seen := make(map[int]bool, len(sales))
	for _, s := range sales {
		if s.ID <= 0 {
			return nil, &domain.ValidationError{Field: "id", Message: fmt.Sprintf("must be positive, got %d", s.ID)}
		}
		if seen[s.ID] {
			return nil, &domain.ValidationError{Field: "id", Message: fmt.Sprintf("duplicate sale id %d", s.ID)}
		}
		seen[s.ID] = true
		l.sales = append(l.sales, s)
		if s.ID >= l.nextID {
			l.nextID = s.ID + 1
		}
	}
	return l, nil
}

// NextID returns and reserves the next sale id.
func (l *Ledger) NextID() int {
	id := l.nextID
	l.nextID++
	return id
}

// PeekID returns the id NextID would reserve, without reserving it.
func (l *Ledger) PeekID() int { return l.nextID }

// Append adds a sale to the end of the journal. Its id must be greater
// than every id already recorded.
func (l *Ledger) Append(s domain.Sale) error {
	if err := l.CheckAppend(s.ID); err != nil {
		return err
	}
	l.sales = append(l.sales, s)
	if s.ID >= l.nextID {
		l.nextID = s.ID + 1
	}
	return nil
}

// CheckAppend reports whether a sale with id could be appended now.
func (l *Ledger) CheckAppend(id int) error {
	if id <= 0 {
		return &domain.ValidationError{Field: "id", Message: fmt.Sprintf("must be positive, got %d", id)}
	}
	if top := l.maxID(); len(l.sales) > 0 && id <= top {
		return &domain.ValidationError{Field: "id", Message: fmt.Sprintf("sale id %d is not after %d", id, top)}
	}
	return nil
}

func (l *Ledger) maxID() int {
	top := 0
	for _, s := range l.sales {
		if s.ID > top {
			top = s.ID
		}
	}
	return top
}

// All returns a copy of every sale in journal order.
func (l *Ledger) All() []domain.Sale {
	return append([]domain.Sale(nil), l.sales...)
}

func (l *Ledger) Len() int { return len(l.sales) }

// Filter yields the sales matching pred. The journal is captured when
// Filter is called; later appends are not seen. The sequence can be
// ranged over more than once.
func (l *Ledger) Filter(pred func(domain.Sale) bool) iter.Seq[domain.Sale] {
	snapshot := l.All()
	return func(yield func(domain.Sale) bool) {
		for _, s := range snapshot {
			if pred != nil && !pred(s) {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// TotalRevenue returns round(sum(sale.Total)) over sales.
func TotalRevenue(sales iter.Seq[domain.Sale]) money.Money {
	var totals []money.Money
	for s := range sales {
		totals = append(totals, s.Total)
	}
	return money.Sum(totals...)
}

// SameDay matches sales whose timestamp, read in its own offset, falls on
// now's local calendar date.
func SameDay(now time.Time) func(domain.Sale) bool {
	today := now.Local().Format(time.DateOnly)
	return func(s domain.Sale) bool {
		return s.Timestamp.Format(time.DateOnly) == today
	}
}

// Any matches every sale.
func Any(domain.Sale) bool { return true }
