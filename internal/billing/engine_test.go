package billing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/meetsplit/internal/apperr"
	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
	"github.com/mmynk/meetsplit/internal/storage/sqlstore"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	store        *sqlstore.SQLStore
	engine       *Engine
	metrics      *Metrics
	meeting      *models.Meeting
	participants []*models.Participant
}

func setup(t *testing.T, names ...string) *fixture {
	t.Helper()
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "meetsplit-billing-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlstore.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &fixture{store: store}
	for i, name := range names {
		user := models.NewUser(name+"@example.com", name, "hash")
		require.NoError(t, store.CreateUser(ctx, user))
		if i == 0 {
			f.meeting = &models.Meeting{Name: "Dinner", ScheduledAt: 1700000000, OwnerID: user.ID}
			require.NoError(t, store.CreateMeeting(ctx, f.meeting))
		}
		p := &models.Participant{MeetingID: f.meeting.ID, UserID: user.ID, JoinedAt: int64(i)}
		require.NoError(t, store.CreateParticipant(ctx, p))
		f.participants = append(f.participants, p)
	}

	f.metrics = NewMetrics(prometheus.NewRegistry())
	f.engine = NewEngine(store, f.metrics)
	return f
}

func (f *fixture) ids(idx ...int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = f.participants[n].ID
	}
	return out
}

func (f *fixture) checks(t *testing.T, itemID string) []*models.Check {
	t.Helper()
	checks, err := f.store.ListChecks(context.Background(), storage.CheckFilter{CustomItemID: itemID})
	require.NoError(t, err)
	return checks
}

func assertGroup(t *testing.T, checks []*models.Check, size int, split, quantity string) {
	t.Helper()
	require.Len(t, checks, size)
	for _, c := range checks {
		assert.True(t, c.SplitAmount.Equal(dec(split)), "split = %s, want %s", c.SplitAmount, split)
		assert.True(t, c.Quantity.Equal(dec(quantity)), "quantity = %s, want %s", c.Quantity, quantity)
	}
}

func TestPurchaseLifecycle(t *testing.T) {
	f := setup(t, "Alice", "Bob", "Carol")
	ctx := context.Background()

	item, checks, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("30"), dec("2"), f.ids(0, 1, 2))
	require.NoError(t, err)
	assertGroup(t, checks, 3, "20", "2")
	assertGroup(t, f.checks(t, item.ID), 3, "20", "2")

	updated, err := f.engine.UpdateChargeGroup(ctx, item.ID, ItemChanges{Price: ptr(dec("45"))})
	require.NoError(t, err)
	assertGroup(t, updated, 3, "30", "2")

	result, err := f.engine.RemoveParticipantsAndRecalculate(ctx, f.meeting.ID, item.ID, f.ids(2))
	require.NoError(t, err)
	assert.False(t, result.Dissolved)
	assertGroup(t, result.Remaining, 2, "45", "2")

	st, err := f.engine.PersonalStatement(ctx, f.participants[0])
	require.NoError(t, err)
	require.Len(t, st.Lines, 1)
	assert.Equal(t, "Pizza", st.Lines[0].ItemName)
	assert.True(t, st.Total.Equal(dec("45")))

	st, err = f.engine.PersonalStatement(ctx, f.participants[2])
	require.NoError(t, err)
	assert.Empty(t, st.Lines)
	assert.True(t, st.Total.IsZero())
}

func TestCreatePurchaseDefaultsToAllParticipants(t *testing.T) {
	f := setup(t, "Alice", "Bob", "Carol", "Dave")

	_, checks, err := f.engine.CreatePurchase(context.Background(), f.meeting.ID, "Beer", dec("5"), dec("4"), nil)
	require.NoError(t, err)
	assertGroup(t, checks, 4, "5", "4")
}

func TestCreatePurchaseDuplicateIDsCountOnce(t *testing.T) {
	f := setup(t, "Alice", "Bob")

	_, checks, err := f.engine.CreatePurchase(context.Background(), f.meeting.ID, "Wine", dec("12"), dec("1"), f.ids(0, 1, 0))
	require.NoError(t, err)
	assertGroup(t, checks, 2, "6", "1")
}

func TestCreatePurchaseUnknownParticipantWritesNothing(t *testing.T) {
	f := setup(t, "Alice", "Bob")
	ctx := context.Background()

	_, _, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("30"), dec("1"), []string{f.participants[0].ID, "missing"})
	var pnf *apperr.ParticipantNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "missing", pnf.ParticipantID)

	for _, p := range f.participants {
		st, err := f.engine.PersonalStatement(ctx, p)
		require.NoError(t, err)
		assert.Empty(t, st.Lines)
	}
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.recalculations.WithLabelValues(reasonCreate)))
}

func TestCreatePurchaseParticipantFromOtherMeeting(t *testing.T) {
	f := setup(t, "Alice", "Bob")
	other := setup(t, "Zed")

	_, _, err := f.engine.CreatePurchase(context.Background(), f.meeting.ID, "Pizza", dec("30"), dec("1"), other.ids(0))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateChargeGroup(t *testing.T) {
	f := setup(t, "Alice", "Bob", "Carol")
	ctx := context.Background()

	item := &models.CustomItem{Name: "Cake", Price: dec("10")}
	require.NoError(t, f.store.CreateCustomItem(ctx, item))

	t.Run("splits across given participants", func(t *testing.T) {
		checks, err := f.engine.CreateChargeGroup(ctx, f.meeting.ID, item, dec("3"), f.ids(0, 1))
		require.NoError(t, err)
		assertGroup(t, checks, 2, "15", "3")
	})

	t.Run("second group for the same item conflicts", func(t *testing.T) {
		_, err := f.engine.CreateChargeGroup(ctx, f.meeting.ID, item, dec("1"), f.ids(2))
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Len(t, f.checks(t, item.ID), 2)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := f.engine.CreateChargeGroup(ctx, f.meeting.ID, &models.CustomItem{ID: "missing"}, dec("1"), nil)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCreateChargeGroupEmptyMeeting(t *testing.T) {
	f := setup(t, "Alice")
	ctx := context.Background()
	_, err := f.store.DeleteParticipants(ctx, storage.ParticipantFilter{MeetingID: f.meeting.ID})
	require.NoError(t, err)

	item := &models.CustomItem{Name: "Cake", Price: dec("10")}
	require.NoError(t, f.store.CreateCustomItem(ctx, item))

	_, err = f.engine.CreateChargeGroup(ctx, f.meeting.ID, item, dec("1"), nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidGroup)
}

func TestUpdateChargeGroup(t *testing.T) {
	tests := []struct {
		name      string
		changes   ItemChanges
		wantName  string
		wantPrice string
		wantSplit string
		wantQty   string
		reason    string
	}{
		{
			name:      "name only",
			changes:   ItemChanges{Name: ptr("Large pizza")},
			wantName:  "Large pizza",
			wantPrice: "30",
			wantSplit: "20",
			wantQty:   "2",
		},
		{
			name:      "price only keeps quantity",
			changes:   ItemChanges{Price: ptr(dec("15"))},
			wantName:  "Pizza",
			wantPrice: "15",
			wantSplit: "10",
			wantQty:   "2",
			reason:    reasonPrice,
		},
		{
			name:      "quantity only keeps price",
			changes:   ItemChanges{Quantity: ptr(dec("3"))},
			wantName:  "Pizza",
			wantPrice: "30",
			wantSplit: "30",
			wantQty:   "3",
			reason:    reasonQuantity,
		},
		{
			name:      "price and quantity",
			changes:   ItemChanges{Price: ptr(dec("9")), Quantity: ptr(dec("1"))},
			wantName:  "Pizza",
			wantPrice: "9",
			wantSplit: "3",
			wantQty:   "1",
			reason:    reasonQuantity,
		},
		{
			name:      "name and quantity",
			changes:   ItemChanges{Name: ptr("Slice"), Quantity: ptr(dec("6"))},
			wantName:  "Slice",
			wantPrice: "30",
			wantSplit: "60",
			wantQty:   "6",
			reason:    reasonQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, "Alice", "Bob", "Carol")
			ctx := context.Background()

			item, _, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("30"), dec("2"), nil)
			require.NoError(t, err)

			_, err = f.engine.UpdateChargeGroup(ctx, item.ID, tt.changes)
			require.NoError(t, err)

			stored, err := f.store.GetCustomItem(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, stored.Name)
			assert.True(t, stored.Price.Equal(dec(tt.wantPrice)), "price = %s", stored.Price)
			assertGroup(t, f.checks(t, item.ID), 3, tt.wantSplit, tt.wantQty)

			if tt.reason != "" {
				assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.recalculations.WithLabelValues(tt.reason)))
			}
		})
	}
}

func TestUpdateChargeGroupIsIdempotent(t *testing.T) {
	f := setup(t, "Alice", "Bob", "Carol")
	ctx := context.Background()

	item, _, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("10"), dec("1"), nil)
	require.NoError(t, err)

	changes := ItemChanges{Price: ptr(dec("20"))}
	first, err := f.engine.UpdateChargeGroup(ctx, item.ID, changes)
	require.NoError(t, err)
	second, err := f.engine.UpdateChargeGroup(ctx, item.ID, changes)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].SplitAmount.Equal(second[i].SplitAmount))
	}
	assertGroup(t, second, 3, "6.67", "1")
}

func TestUpdateChargeGroupMixedQuantities(t *testing.T) {
	f := setup(t, "Alice", "Bob")
	ctx := context.Background()

	item, checks, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("10"), dec("2"), nil)
	require.NoError(t, err)

	_, err = f.store.UpdateChecks(ctx, storage.CheckFilter{ID: checks[0].ID}, storage.CheckUpdate{Quantity: ptr(dec("5"))})
	require.NoError(t, err)

	_, err = f.engine.UpdateChargeGroup(ctx, item.ID, ItemChanges{Price: ptr(dec("20"))})
	assert.ErrorIs(t, err, apperr.ErrInvalidGroup)

	stored, err := f.store.GetCustomItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(dec("10")), "price change must roll back")
}

func TestUpdateChargeGroupUnknownItem(t *testing.T) {
	f := setup(t, "Alice")

	_, err := f.engine.UpdateChargeGroup(context.Background(), "missing", ItemChanges{Name: ptr("x")})
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "item", nf.Kind)
}

func TestRemoveParticipantsAndRecalculate(t *testing.T) {
	t.Run("removing everyone dissolves the group", func(t *testing.T) {
		f := setup(t, "Alice", "Bob")
		ctx := context.Background()

		item, _, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("30"), dec("1"), nil)
		require.NoError(t, err)

		result, err := f.engine.RemoveParticipantsAndRecalculate(ctx, f.meeting.ID, item.ID, f.ids(0, 1))
		require.NoError(t, err)
		assert.True(t, result.Dissolved)
		assert.Empty(t, result.Remaining)

		stored, err := f.store.GetCustomItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
		assert.Empty(t, f.checks(t, item.ID))
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.dissolved))
	})

	t.Run("participant without a row", func(t *testing.T) {
		f := setup(t, "Alice", "Bob", "Carol")
		ctx := context.Background()

		item, _, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("30"), dec("1"), f.ids(0, 1))
		require.NoError(t, err)

		_, err = f.engine.RemoveParticipantsAndRecalculate(ctx, f.meeting.ID, item.ID, f.ids(0, 2))
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assertGroup(t, f.checks(t, item.ID), 2, "15", "1")
	})

	t.Run("participant outside the meeting", func(t *testing.T) {
		f := setup(t, "Alice", "Bob")
		ctx := context.Background()

		item, _, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("30"), dec("1"), nil)
		require.NoError(t, err)

		_, err = f.engine.RemoveParticipantsAndRecalculate(ctx, f.meeting.ID, item.ID, []string{"missing"})
		var pnf *apperr.ParticipantNotFoundError
		assert.True(t, errors.As(err, &pnf))
		assertGroup(t, f.checks(t, item.ID), 2, "15", "1")
	})

	t.Run("no ids", func(t *testing.T) {
		f := setup(t, "Alice")

		_, err := f.engine.RemoveParticipantsAndRecalculate(context.Background(), f.meeting.ID, "item", nil)
		assert.ErrorIs(t, err, apperr.ErrInvalidGroup)
	})
}

func TestDeleteChargeGroup(t *testing.T) {
	f := setup(t, "Alice", "Bob")
	ctx := context.Background()

	item, _, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("30"), dec("1"), nil)
	require.NoError(t, err)

	require.NoError(t, f.engine.DeleteChargeGroup(ctx, item.ID))
	assert.Empty(t, f.checks(t, item.ID))

	err = f.engine.DeleteChargeGroup(ctx, item.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMeetingStatement(t *testing.T) {
	f := setup(t, "Alice", "Bob", "Carol")
	ctx := context.Background()

	_, _, err := f.engine.CreatePurchase(ctx, f.meeting.ID, "Pizza", dec("30"), dec("1"), nil)
	require.NoError(t, err)
	_, _, err = f.engine.CreatePurchase(ctx, f.meeting.ID, "Wine", dec("8"), dec("2"), f.ids(0, 1))
	require.NoError(t, err)

	statements, err := f.engine.MeetingStatement(ctx, f.participants)
	require.NoError(t, err)
	require.Len(t, statements, 3)

	want := map[string]string{"Alice": "18", "Bob": "18", "Carol": "10"}
	for _, st := range statements {
		assert.True(t, st.Total.Equal(dec(want[st.Name])), "%s total = %s", st.Name, st.Total)

		var sum decimal.Decimal
		for line := range st.All() {
			sum = sum.Add(line.SplitAmount)
		}
		assert.True(t, sum.Equal(st.Total))
	}
}
