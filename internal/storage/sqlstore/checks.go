package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
)

const checkColumns = `id, participant_id, custom_item_id, custom_item_number, splited_bill`

// CreateCustomItem persists a new custom item.
func (s *SQLStore) CreateCustomItem(ctx context.Context, item *models.CustomItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	_, err := s.exec(ctx,
		"INSERT INTO custom_items (id, name, price, created_at) VALUES (?, ?, ?, ?)",
		item.ID, item.Name, item.Price, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert custom item: %w", err)
	}

	return nil
}

// GetCustomItem retrieves a custom item by ID.
func (s *SQLStore) GetCustomItem(ctx context.Context, id string) (*models.CustomItem, error) {
	item := &models.CustomItem{}
	err := s.get(ctx, item, "SELECT id, name, price, created_at FROM custom_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom item: %w", err)
	}

	return item, nil
}

// UpdateCustomItem applies the non-nil fields of update.
func (s *SQLStore) UpdateCustomItem(ctx context.Context, id string, update storage.ItemUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	var set sets
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Price != nil {
		set.add("price", *update.Price)
	}

	args := append(set.args, id)
	n, err := s.exec(ctx, `UPDATE custom_items SET `+set.clause()+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update custom item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("custom item not found: %s", id)
	}

	return nil
}

// DeleteCustomItem removes a custom item. Its checks must be deleted first.
func (s *SQLStore) DeleteCustomItem(ctx context.Context, id string) error {
	n, err := s.exec(ctx, "DELETE FROM custom_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete custom item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("custom item not found: %s", id)
	}

	return nil
}

// CreateCheck persists one row of a charge group.
func (s *SQLStore) CreateCheck(ctx context.Context, check *models.Check) error {
	if check.ID == "" {
		check.ID = uuid.New().String()
	}

	_, err := s.exec(ctx,
		`INSERT INTO checks (`+checkColumns+`) VALUES (?, ?, ?, ?, ?)`,
		check.ID, check.ParticipantID, check.CustomItemID, check.Quantity, check.SplitAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert check: %w", err)
	}

	return nil
}

func checkConds(filter storage.CheckFilter) conds {
	var c conds
	c.eq("id", filter.ID)
	c.eq("custom_item_id", filter.CustomItemID)
	c.eq("participant_id", filter.ParticipantID)
	c.in("participant_id", filter.ParticipantIDs)
	return c
}

// GetCheck returns the first check matching filter.
func (s *SQLStore) GetCheck(ctx context.Context, filter storage.CheckFilter) (*models.Check, error) {
	c := checkConds(filter)
	check := &models.Check{}
	err := s.get(ctx, check, `SELECT `+checkColumns+` FROM checks`+c.where()+` LIMIT 1`, c.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check: %w", err)
	}

	return check, nil
}

// ListChecks returns every check matching filter.
func (s *SQLStore) ListChecks(ctx context.Context, filter storage.CheckFilter) ([]*models.Check, error) {
	c := checkConds(filter)
	var checks []*models.Check
	err := s.selectAll(ctx, &checks, `SELECT `+checkColumns+` FROM checks`+c.where()+` ORDER BY id`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}

	return checks, nil
}

// UpdateChecks applies update to every check matching filter and returns the
// rows as they are after the update.
func (s *SQLStore) UpdateChecks(ctx context.Context, filter storage.CheckFilter, update storage.CheckUpdate) ([]*models.Check, error) {
	c := checkConds(filter)
	if c.empty() {
		return nil, fmt.Errorf("refusing to update checks without a filter")
	}
	if update.IsEmpty() {
		return s.ListChecks(ctx, filter)
	}

	var set sets
	if update.SplitAmount != nil {
		set.add("splited_bill", *update.SplitAmount)
	}
	if update.Quantity != nil {
		set.add("custom_item_number", *update.Quantity)
	}

	args := append(set.args, c.args...)
	if _, err := s.exec(ctx, `UPDATE checks SET `+set.clause()+c.where(), args...); err != nil {
		return nil, fmt.Errorf("failed to update checks: %w", err)
	}

	return s.ListChecks(ctx, filter)
}

// DeleteChecks removes every check matching filter.
func (s *SQLStore) DeleteChecks(ctx context.Context, filter storage.CheckFilter) (int64, error) {
	c := checkConds(filter)
	if c.empty() {
		return 0, fmt.Errorf("refusing to delete checks without a filter")
	}

	n, err := s.exec(ctx, `DELETE FROM checks`+c.where(), c.args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete checks: %w", err)
	}

	return n, nil
}

// ListStatementLines returns the participant's share of every item they
// are charged for.
func (s *SQLStore) ListStatementLines(ctx context.Context, participantID string) ([]models.StatementLine, error) {
	var lines []models.StatementLine
	err := s.selectAll(ctx, &lines, `
		SELECT i.name AS item_name, c.splited_bill, c.custom_item_number
		FROM checks c
		JOIN custom_items i ON i.id = c.custom_item_id
		WHERE c.participant_id = ?
		ORDER BY i.created_at, i.name`,
		participantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list statement lines: %w", err)
	}

	return lines, nil
}
