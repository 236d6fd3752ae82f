// Package models defines the core domain models for Meetsplit.
//
// # Models
//
//   - User: a registered account; must be activated before logging in
//   - Meeting: a scheduled get-together owned by one User
//   - Participant: one User's membership in one Meeting
//   - Feedback: a participant's single comment about a Meeting
//   - CustomItem: something bought during a Meeting, with a unit price
//   - Check: one participant's share of one CustomItem
//
// The Check rows that share a CustomItem form a charge group. Every row of a
// group carries the same quantity and the same split amount.
//
// # Conventions
//
//  1. IDs are UUID strings generated by the store when left empty
//  2. Timestamps are Unix seconds
//  3. Money and quantities are decimal.Decimal, never float64
//  4. Relationships are ID strings, not pointers
package models
