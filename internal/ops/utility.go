package ops

import (
	"context"
	"fmt"

	"tipline/internal/store"
)

// UtilityModule owns the odds and ends: clock queries and feature requests.
type UtilityModule struct {
	store *store.Store
}

// NewUtilityModule builds the utility module.
func NewUtilityModule(st *store.Store) *UtilityModule {
	return &UtilityModule{store: st}
}

// Execute runs one utility operation.
func (m *UtilityModule) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Name {
	case "get_current_time":
		return m.getCurrentTime(req), nil
	case "send_feature_request":
		return m.sendFeatureRequest(ctx, req)
	default:
		return nil, fmt.Errorf("utility module: unknown operation %q", req.Name)
	}
}

func (m *UtilityModule) getCurrentTime(req Request) *Result {
	date := req.Anchor.Format(isoDate)
	weekday := req.Anchor.Weekday().String()
	data := map[string]any{
		"date":    date,
		"weekday": weekday,
	}
	if req.LocalTime != "" {
		data["time"] = req.LocalTime
		return okData(data, "It's %s, %s %s.", req.LocalTime, weekday, date)
	}
	return okData(data, "Today is %s, %s.", weekday, date)
}

func (m *UtilityModule) sendFeatureRequest(ctx context.Context, req Request) (*Result, error) {
	idea := req.Args.Str("idea")
	if idea == "" {
		return fail("idea is required"), nil
	}
	id, err := m.store.InsertFeatureRequest(ctx, req.AccountID, idea, req.Args.Str("category"))
	if err != nil {
		return nil, err
	}
	return okData(map[string]any{"requestId": id},
		"Sent your idea to the team. Thanks for the suggestion!"), nil
}
