package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/meetsplit/internal/apperr"
	"github.com/mmynk/meetsplit/internal/billing"
	"github.com/mmynk/meetsplit/internal/calculator"
	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
	"github.com/mmynk/meetsplit/pkg/api"
	"github.com/mmynk/meetsplit/pkg/api/apiconnect"
)

var _ apiconnect.CheckServiceHandler = (*CheckService)(nil)

// CheckService exposes the bill engine. The caller must take part in the
// meeting named by every request.
type CheckService struct {
	store  storage.Store
	engine *billing.Engine
}

// NewCheckService creates a new CheckService.
func NewCheckService(store storage.Store, engine *billing.Engine) *CheckService {
	return &CheckService{store: store, engine: engine}
}

// CreatePurchase records an item and splits it across the given
// participants, or across everyone in the meeting.
func (s *CheckService) CreatePurchase(ctx context.Context, req *connect.Request[api.CreatePurchaseRequest]) (*connect.Response[api.CreatePurchaseResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := checkAmounts(&req.Msg.Price, &req.Msg.Quantity); err != nil {
		return nil, err
	}
	if _, err := s.requireParticipant(ctx, req.Msg.MeetingID); err != nil {
		return nil, err
	}

	slog.Info("CreatePurchase request received",
		"meeting_id", req.Msg.MeetingID,
		"item", req.Msg.ItemName,
		"participants_count", len(req.Msg.ParticipantIDs),
	)

	price := calculator.RoundAmount(req.Msg.Price)
	item, checks, err := s.engine.CreatePurchase(ctx, req.Msg.MeetingID, req.Msg.ItemName, price, req.Msg.Quantity, req.Msg.ParticipantIDs)
	if err != nil {
		slog.Warn("CreatePurchase failed", "meeting_id", req.Msg.MeetingID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Purchase created", "meeting_id", req.Msg.MeetingID, "item_id", item.ID)
	return connect.NewResponse(&api.CreatePurchaseResponse{
		Item:   itemToAPI(item),
		Checks: checksToAPI(checks),
	}), nil
}

// UpdatePurchase renames an item or changes its price or quantity, and
// recomputes the shares.
func (s *CheckService) UpdatePurchase(ctx context.Context, req *connect.Request[api.UpdatePurchaseRequest]) (*connect.Response[api.UpdatePurchaseResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := checkAmounts(req.Msg.Price, req.Msg.Quantity); err != nil {
		return nil, err
	}
	if _, err := s.requireParticipant(ctx, req.Msg.MeetingID); err != nil {
		return nil, err
	}
	if err := s.requireItemInMeeting(ctx, req.Msg.MeetingID, req.Msg.ItemID); err != nil {
		return nil, err
	}

	changes := billing.ItemChanges{Name: req.Msg.Name, Quantity: req.Msg.Quantity}
	if req.Msg.Price != nil {
		price := calculator.RoundAmount(*req.Msg.Price)
		changes.Price = &price
	}

	if _, err := s.engine.UpdateChargeGroup(ctx, req.Msg.ItemID, changes); err != nil {
		slog.Warn("UpdatePurchase failed", "item_id", req.Msg.ItemID, "error", err)
		return nil, toConnectError(err)
	}

	item, err := s.store.GetCustomItem(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if item == nil {
		return nil, toConnectError(apperr.NotFound("item", req.Msg.ItemID))
	}
	checks, err := s.store.ListChecks(ctx, storage.CheckFilter{CustomItemID: item.ID})
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Purchase updated", "item_id", item.ID)
	return connect.NewResponse(&api.UpdatePurchaseResponse{
		Item:   itemToAPI(item),
		Checks: checksToAPI(checks),
	}), nil
}

// DeletePurchase deletes an item with all its shares.
func (s *CheckService) DeletePurchase(ctx context.Context, req *connect.Request[api.DeletePurchaseRequest]) (*connect.Response[api.DeletePurchaseResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := s.requireParticipant(ctx, req.Msg.MeetingID); err != nil {
		return nil, err
	}
	if err := s.requireItemInMeeting(ctx, req.Msg.MeetingID, req.Msg.ItemID); err != nil {
		return nil, err
	}

	if err := s.engine.DeleteChargeGroup(ctx, req.Msg.ItemID); err != nil {
		slog.Warn("DeletePurchase failed", "item_id", req.Msg.ItemID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Purchase deleted", "item_id", req.Msg.ItemID)
	return connect.NewResponse(&api.DeletePurchaseResponse{}), nil
}

// RemoveFromPurchase takes participants out of an item's split. Removing
// the last of them deletes the item.
func (s *CheckService) RemoveFromPurchase(ctx context.Context, req *connect.Request[api.RemoveFromPurchaseRequest]) (*connect.Response[api.RemoveFromPurchaseResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := s.requireParticipant(ctx, req.Msg.MeetingID); err != nil {
		return nil, err
	}
	if err := s.requireItemInMeeting(ctx, req.Msg.MeetingID, req.Msg.ItemID); err != nil {
		return nil, err
	}

	result, err := s.engine.RemoveParticipantsAndRecalculate(ctx, req.Msg.MeetingID, req.Msg.ItemID, req.Msg.ParticipantIDs)
	if err != nil {
		slog.Warn("RemoveFromPurchase failed", "item_id", req.Msg.ItemID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Participants removed from purchase", "item_id", req.Msg.ItemID, "dissolved", result.Dissolved)
	return connect.NewResponse(&api.RemoveFromPurchaseResponse{
		Dissolved: result.Dissolved,
		Checks:    checksToAPI(result.Remaining),
	}), nil
}

// GetPersonalStatement lists what the caller owes in the meeting.
func (s *CheckService) GetPersonalStatement(ctx context.Context, req *connect.Request[api.GetPersonalStatementRequest]) (*connect.Response[api.GetPersonalStatementResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	participant, err := s.requireParticipant(ctx, req.Msg.MeetingID)
	if err != nil {
		return nil, err
	}

	st, err := s.engine.PersonalStatement(ctx, participant)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetPersonalStatementResponse{Statement: statementToAPI(st, "")}), nil
}

// GetMeetingStatement lists what every participant of the meeting owes.
func (s *CheckService) GetMeetingStatement(ctx context.Context, req *connect.Request[api.GetMeetingStatementRequest]) (*connect.Response[api.GetMeetingStatementResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := s.requireParticipant(ctx, req.Msg.MeetingID); err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipants(ctx, storage.ParticipantFilter{MeetingID: req.Msg.MeetingID})
	if err != nil {
		return nil, toConnectError(err)
	}

	statements, err := s.engine.MeetingStatement(ctx, participants)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Statement, len(statements))
	for i, st := range statements {
		out[i] = statementToAPI(&st.Statement, st.Name)
	}
	return connect.NewResponse(&api.GetMeetingStatementResponse{Statements: out}), nil
}

// requireParticipant returns the caller's membership in the meeting.
func (s *CheckService) requireParticipant(ctx context.Context, meetingID string) (*models.Participant, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := getMeeting(ctx, s.store, meetingID); err != nil {
		return nil, toConnectError(err)
	}

	p, err := s.store.GetParticipant(ctx, storage.ParticipantFilter{MeetingID: meetingID, UserID: userID})
	if err != nil {
		return nil, toConnectError(err)
	}
	if p == nil {
		return nil, toConnectError(apperr.Forbidden("manage checks of a meeting you do not take part in"))
	}
	return p, nil
}

// requireItemInMeeting fails with NotFound unless the item is charged to a
// participant of the meeting.
func (s *CheckService) requireItemInMeeting(ctx context.Context, meetingID, itemID string) error {
	checks, err := s.store.ListChecks(ctx, storage.CheckFilter{CustomItemID: itemID})
	if err != nil {
		return toConnectError(err)
	}

	for _, c := range checks {
		p, err := s.store.GetParticipant(ctx, storage.ParticipantFilter{ID: c.ParticipantID, MeetingID: meetingID})
		if err != nil {
			return toConnectError(err)
		}
		if p != nil {
			return nil
		}
	}
	return toConnectError(apperr.NotFound("item", itemID))
}

// checkAmounts rejects a negative price and a quantity that is not positive.
// Nil values are not checked.
func checkAmounts(price, quantity *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return invalidArgument("price must not be negative")
	}
	if quantity != nil && !quantity.IsPositive() {
		return invalidArgument("quantity must be positive")
	}
	return nil
}

func statementToAPI(st *billing.Statement, name string) *api.Statement {
	out := &api.Statement{
		ParticipantID: st.ParticipantID,
		Name:          name,
		Lines:         make([]*api.StatementLine, 0, len(st.Lines)),
		Total:         st.Total,
	}
	for line := range st.All() {
		out.Lines = append(out.Lines, &api.StatementLine{
			ItemName:    line.ItemName,
			Quantity:    line.Quantity,
			SplitAmount: line.SplitAmount,
		})
	}
	return out
}
