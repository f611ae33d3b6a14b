package ledger

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posledger/internal/domain"
	"posledger/internal/money"
)

func sale(id int, at time.Time, total string) domain.Sale {
	return domain.Sale{ID: id, Timestamp: at, Total: money.MustParse(total)}
}

func TestNextIDIsMonotonic(t *testing.T) {
	l := New()
	assert.Equal(t, 1, l.NextID())
	assert.Equal(t, 2, l.NextID())
	assert.Equal(t, 3, l.NextID())
}

func TestRestoreResumesIDs(t *testing.T) {
	now := time.Now()
	l, err := Restore([]domain.Sale{sale(2, now, "1"), sale(9, now, "2"), sale(4, now, "3")})
	require.NoError(t, err)
	assert.Equal(t, 10, l.NextID())
	assert.Equal(t, 3, l.Len())

	_, err = Restore([]domain.Sale{sale(1, now, "1"), sale(1, now, "1")})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAppendKeepsOrderAndRejectsStaleIDs(t *testing.T) {
	l := New()
	now := time.Now()
	require.NoError(t, l.Append(sale(l.NextID(), now, "1")))
	require.NoError(t, l.Append(sale(l.NextID(), now, "2")))

	err := l.Append(sale(2, now, "3"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	err = l.Append(sale(0, now, "3"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	ids := []int{}
	for _, s := range l.All() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{1, 2}, ids)
}

func TestCheckAppendDoesNotMutate(t *testing.T) {
	l := New()
	now := time.Now()
	require.NoError(t, l.Append(sale(l.NextID(), now, "1")))
	require.NoError(t, l.Append(sale(l.NextID(), now, "2")))

	assert.ErrorIs(t, l.CheckAppend(0), domain.ErrInvalidArgument)
	assert.ErrorIs(t, l.CheckAppend(2), domain.ErrInvalidArgument)
	assert.NoError(t, l.CheckAppend(l.PeekID()))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l.PeekID())
}

func TestFilterIsASnapshot(t *testing.T) {
	l := New()
	now := time.Now()
	require.NoError(t, l.Append(sale(l.NextID(), now, "5")))

	seq := l.Filter(Any)
	require.NoError(t, l.Append(sale(l.NextID(), now, "7")))

	assert.Len(t, slices.Collect(seq), 1)
	assert.Len(t, slices.Collect(seq), 1, "sequence must be restartable")
	assert.Len(t, slices.Collect(l.Filter(nil)), 2)
}

func TestSameDayAndRevenue(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	l := New()
	require.NoError(t, l.Append(sale(l.NextID(), yesterday, "100.00")))
	require.NoError(t, l.Append(sale(l.NextID(), now, "53.73")))
	require.NoError(t, l.Append(sale(l.NextID(), now.Add(-time.Hour), "10.005")))

	today := slices.Collect(l.Filter(SameDay(now)))
	require.Len(t, today, 2)
	assert.Equal(t, 2, today[0].ID)

	assert.Equal(t, "63.74", TotalRevenue(l.Filter(SameDay(now))).Text())
	assert.Equal(t, "163.74", TotalRevenue(l.Filter(Any)).Text())
	assert.Equal(t, "0.00", TotalRevenue(l.Filter(func(domain.Sale) bool { return false })).Text())
}
