package billing

import (
	"context"
	"iter"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/meetsplit/internal/calculator"
	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
)

// Statement lists what one participant owes.
type Statement struct {
	ParticipantID string
	Lines         []models.StatementLine

	// Total is the sum of the lines' split amounts.
	Total decimal.Decimal
}

// All returns the statement lines in storage order. The sequence can be
// ranged over any number of times.
func (s *Statement) All() iter.Seq[models.StatementLine] {
	return slices.Values(s.Lines)
}

// ParticipantStatement is a Statement labelled with the participant's name.
type ParticipantStatement struct {
	Statement
	Participant *models.Participant

	// Name is the user's display name, empty if the user no longer exists.
	Name string
}

// PersonalStatement lists the participant's shares with their item names.
func (e *Engine) PersonalStatement(ctx context.Context, participant *models.Participant) (*Statement, error) {
	return personalStatement(ctx, e.store, participant)
}

// MeetingStatement builds one statement per participant. There is no total
// across participants.
func (e *Engine) MeetingStatement(ctx context.Context, participants []*models.Participant) ([]*ParticipantStatement, error) {
	var statements []*ParticipantStatement

	err := e.store.WithTx(ctx, func(tx storage.Tx) error {
		userIDs := make([]string, len(participants))
		for i, p := range participants {
			userIDs[i] = p.UserID
		}
		users, err := tx.GetUsersByIDs(ctx, userIDs)
		if err != nil {
			return err
		}

		statements = make([]*ParticipantStatement, 0, len(participants))
		for _, p := range participants {
			st, err := personalStatement(ctx, tx, p)
			if err != nil {
				return err
			}

			var name string
			if user, ok := users[p.UserID]; ok {
				name = user.Name
			}
			statements = append(statements, &ParticipantStatement{
				Statement:   *st,
				Participant: p,
				Name:        name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return statements, nil
}

func personalStatement(ctx context.Context, checks storage.CheckStore, participant *models.Participant) (*Statement, error) {
	lines, err := checks.ListStatementLines(ctx, participant.ID)
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, len(lines))
	for i, line := range lines {
		amounts[i] = line.SplitAmount
	}

	return &Statement{
		ParticipantID: participant.ID,
		Lines:         lines,
		Total:         calculator.Total(amounts...),
	}, nil
}
