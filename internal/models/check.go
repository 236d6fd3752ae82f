package models

import "github.com/shopspring/decimal"

// CustomItem is something purchased during a meeting. It has no link to the
// meeting of its own; it is reachable only through its Check rows and is
// deleted together with the last of them.
type CustomItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `db:"id"`

	// Name is what was bought (e.g., "Pizza", "Beer").
	Name string `db:"name"`

	// Price is the unit price.
	Price decimal.Decimal `db:"price"`

	// CreatedAt is the Unix timestamp when the item was recorded.
	CreatedAt int64 `db:"created_at"`
}

// Check is one participant's share of one CustomItem.
// All Checks with the same CustomItemID form the item's charge group.
type Check struct {
	ID            string `db:"id"`
	ParticipantID string `db:"participant_id"`
	CustomItemID  string `db:"custom_item_id"`

	// Quantity is how many units of the item were bought. It is the same on
	// every row of the group.
	Quantity decimal.Decimal `db:"custom_item_number"`

	// SplitAmount is this participant's share:
	// price * quantity / group size, rounded to cents.
	SplitAmount decimal.Decimal `db:"splited_bill"`
}

// StatementLine is one row of a participant's statement.
type StatementLine struct {
	ItemName    string          `db:"item_name"`
	SplitAmount decimal.Decimal `db:"splited_bill"`
	Quantity    decimal.Decimal `db:"custom_item_number"`
}
