// Package billing implements the bill engine: it splits purchased items
// across meeting participants and keeps each item's charge group consistent
// as prices, quantities and membership change.
//
// Every operation runs in a single storage transaction. All existence checks
// happen before the first write, and any error rolls the whole operation back.
package billing

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/meetsplit/internal/apperr"
	"github.com/mmynk/meetsplit/internal/calculator"
	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
)

// Engine computes and persists charge groups.
type Engine struct {
	store   storage.Store
	metrics *Metrics
}

// NewEngine creates an engine on top of store. metrics may be nil.
func NewEngine(store storage.Store, metrics *Metrics) *Engine {
	return &Engine{store: store, metrics: metrics}
}

// ItemChanges describes an edit to a purchased item. Nil fields are unchanged.
type ItemChanges struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *decimal.Decimal
}

// RemovalResult is the outcome of RemoveParticipantsAndRecalculate.
type RemovalResult struct {
	// Dissolved is true when every row was removed and the item deleted.
	Dissolved bool

	// Remaining holds the recomputed rows when the group survived.
	Remaining []*models.Check
}

// CreatePurchase records a new item and splits it across participantIDs, or
// across every participant of the meeting when participantIDs is empty.
func (e *Engine) CreatePurchase(ctx context.Context, meetingID, name string, price, quantity decimal.Decimal, participantIDs []string) (*models.CustomItem, []*models.Check, error) {
	item := &models.CustomItem{Name: name, Price: price}
	var checks []*models.Check

	err := e.store.WithTx(ctx, func(tx storage.Tx) error {
		// Resolve first so a bad id leaves no orphaned item behind.
		participants, err := resolveParticipants(ctx, tx, meetingID, participantIDs)
		if err != nil {
			return err
		}
		if err := tx.CreateCustomItem(ctx, item); err != nil {
			return err
		}
		checks, err = writeGroup(ctx, tx, item, quantity, participants)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	e.metrics.recalculated(reasonCreate)
	slog.Debug("Purchase created", "meeting_id", meetingID, "item_id", item.ID, "group_size", len(checks))
	return item, checks, nil
}

// CreateChargeGroup splits an existing item across participantIDs, or across
// every participant of the meeting when participantIDs is empty. Each id must
// belong to the meeting. Duplicate ids count once.
func (e *Engine) CreateChargeGroup(ctx context.Context, meetingID string, item *models.CustomItem, quantity decimal.Decimal, participantIDs []string) ([]*models.Check, error) {
	var checks []*models.Check

	err := e.store.WithTx(ctx, func(tx storage.Tx) error {
		stored, err := tx.GetCustomItem(ctx, item.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return apperr.NotFound("item", item.ID)
		}

		existing, err := tx.GetCheck(ctx, storage.CheckFilter{CustomItemID: item.ID})
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict("check", "a check for this item already exists")
		}

		participants, err := resolveParticipants(ctx, tx, meetingID, participantIDs)
		if err != nil {
			return err
		}

		checks, err = writeGroup(ctx, tx, stored, quantity, participants)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.metrics.recalculated(reasonCreate)
	return checks, nil
}

// UpdateChargeGroup edits an item and recomputes its group when the price or
// the quantity changes:
//
//   - name only: the item is renamed, rows are untouched
//   - price only: split uses the group's current quantity, only split amounts change
//   - price and quantity, or quantity only: both split amount and quantity change
//
// The split is always taken over the group's current size. It returns the
// updated rows, or nil when no recompute happened.
func (e *Engine) UpdateChargeGroup(ctx context.Context, itemID string, changes ItemChanges) ([]*models.Check, error) {
	var (
		updated []*models.Check
		reason  string
	)

	err := e.store.WithTx(ctx, func(tx storage.Tx) error {
		item, err := tx.GetCustomItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.NotFound("item", itemID)
		}

		if err := tx.UpdateCustomItem(ctx, itemID, storage.ItemUpdate{Name: changes.Name, Price: changes.Price}); err != nil {
			return err
		}

		if changes.Price == nil && changes.Quantity == nil {
			return nil
		}

		filter := storage.CheckFilter{CustomItemID: itemID}
		checks, err := tx.ListChecks(ctx, filter)
		if err != nil {
			return err
		}

		price := item.Price
		if changes.Price != nil {
			price = *changes.Price
		}

		var update storage.CheckUpdate
		quantity := decimal.Zero
		if changes.Quantity != nil {
			quantity = *changes.Quantity
			update.Quantity = &quantity
			reason = reasonQuantity
		} else {
			quantity, err = groupQuantity(itemID, checks)
			if err != nil {
				return err
			}
			reason = reasonPrice
		}

		split, err := splitFor(itemID, len(checks), price, quantity)
		if err != nil {
			return err
		}
		update.SplitAmount = &split

		updated, err = tx.UpdateChecks(ctx, filter, update)
		return err
	})
	if err != nil {
		return nil, err
	}

	if reason != "" {
		e.metrics.recalculated(reason)
		slog.Debug("Charge group recalculated", "item_id", itemID, "reason", reason, "group_size", len(updated))
	}
	return updated, nil
}

// RemoveParticipantsAndRecalculate takes participantIDs out of the item's
// charge group. Removing everyone deletes the rows and the item. Otherwise
// the remaining rows are recomputed with the group's quantity over the new,
// smaller size.
func (e *Engine) RemoveParticipantsAndRecalculate(ctx context.Context, meetingID, itemID string, participantIDs []string) (*RemovalResult, error) {
	result := &RemovalResult{}
	ids := dedupe(participantIDs)
	if len(ids) == 0 {
		return nil, &apperr.InvalidGroupError{ItemID: itemID, Reason: "no participants to remove"}
	}

	err := e.store.WithTx(ctx, func(tx storage.Tx) error {
		item, err := tx.GetCustomItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.NotFound("item", itemID)
		}

		if _, err := resolveParticipants(ctx, tx, meetingID, ids); err != nil {
			return err
		}

		filter := storage.CheckFilter{CustomItemID: itemID}
		checks, err := tx.ListChecks(ctx, filter)
		if err != nil {
			return err
		}

		inGroup := make(map[string]bool, len(checks))
		for _, c := range checks {
			inGroup[c.ParticipantID] = true
		}
		for _, id := range ids {
			if !inGroup[id] {
				return &apperr.NotFoundError{Kind: "check", ID: id}
			}
		}

		if len(ids) == len(checks) {
			result.Dissolved = true
			return deleteGroup(ctx, tx, itemID)
		}

		quantity, err := groupQuantity(itemID, checks)
		if err != nil {
			return err
		}

		if _, err := tx.DeleteChecks(ctx, storage.CheckFilter{CustomItemID: itemID, ParticipantIDs: ids}); err != nil {
			return err
		}

		split, err := splitFor(itemID, len(checks)-len(ids), item.Price, quantity)
		if err != nil {
			return err
		}

		result.Remaining, err = tx.UpdateChecks(ctx, filter, storage.CheckUpdate{SplitAmount: &split})
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.Dissolved {
		e.metrics.groupDissolved()
		slog.Debug("Charge group dissolved", "item_id", itemID)
	} else {
		e.metrics.recalculated(reasonRemoval)
		slog.Debug("Charge group recalculated", "item_id", itemID, "reason", reasonRemoval, "group_size", len(result.Remaining))
	}
	return result, nil
}

// DeleteChargeGroup deletes the item and every row of its group.
func (e *Engine) DeleteChargeGroup(ctx context.Context, itemID string) error {
	err := e.store.WithTx(ctx, func(tx storage.Tx) error {
		item, err := tx.GetCustomItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.NotFound("item", itemID)
		}
		return deleteGroup(ctx, tx, itemID)
	})
	if err != nil {
		return err
	}

	e.metrics.groupDissolved()
	return nil
}

// resolveParticipants returns the meeting's participants named by ids, or
// all of them when ids is empty. It fails before any write is made.
func resolveParticipants(ctx context.Context, tx storage.Tx, meetingID string, ids []string) ([]*models.Participant, error) {
	if len(ids) == 0 {
		participants, err := tx.ListParticipants(ctx, storage.ParticipantFilter{MeetingID: meetingID})
		if err != nil {
			return nil, err
		}
		if len(participants) == 0 {
			return nil, &apperr.InvalidGroupError{Reason: "meeting has no participants"}
		}
		return participants, nil
	}

	ids = dedupe(ids)
	participants := make([]*models.Participant, 0, len(ids))
	for _, id := range ids {
		p, err := tx.GetParticipant(ctx, storage.ParticipantFilter{ID: id, MeetingID: meetingID})
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &apperr.ParticipantNotFoundError{ParticipantID: id, MeetingID: meetingID}
		}
		participants = append(participants, p)
	}
	return participants, nil
}

// writeGroup persists one row per participant, all with the same split.
func writeGroup(ctx context.Context, tx storage.Tx, item *models.CustomItem, quantity decimal.Decimal, participants []*models.Participant) ([]*models.Check, error) {
	split, err := splitFor(item.ID, len(participants), item.Price, quantity)
	if err != nil {
		return nil, err
	}

	checks := make([]*models.Check, 0, len(participants))
	for _, p := range participants {
		check := &models.Check{
			ParticipantID: p.ID,
			CustomItemID:  item.ID,
			Quantity:      quantity,
			SplitAmount:   split,
		}
		if err := tx.CreateCheck(ctx, check); err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func deleteGroup(ctx context.Context, tx storage.Tx, itemID string) error {
	if _, err := tx.DeleteChecks(ctx, storage.CheckFilter{CustomItemID: itemID}); err != nil {
		return err
	}
	return tx.DeleteCustomItem(ctx, itemID)
}

// splitFor is calculator.SplitRounded with the item id attached to errors.
func splitFor(itemID string, groupSize int, price, quantity decimal.Decimal) (decimal.Decimal, error) {
	split, err := calculator.SplitRounded(groupSize, price, quantity)
	if err != nil {
		return decimal.Zero, &apperr.InvalidGroupError{ItemID: itemID, Reason: "cannot split across zero participants"}
	}
	return split, nil
}

// groupQuantity returns the quantity shared by every row of a group.
func groupQuantity(itemID string, checks []*models.Check) (decimal.Decimal, error) {
	if len(checks) == 0 {
		return decimal.Zero, &apperr.InvalidGroupError{ItemID: itemID, Reason: "charge group has no rows"}
	}

	quantity := checks[0].Quantity
	for _, c := range checks[1:] {
		if !c.Quantity.Equal(quantity) {
			return decimal.Zero, &apperr.InvalidGroupError{ItemID: itemID, Reason: "rows disagree on quantity"}
		}
	}
	return quantity, nil
}

// dedupe drops repeated ids, keeping the first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
