package agent

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"tipline/internal/llm"
	"tipline/internal/store"
)

const testAccount = "acct-1"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestDispatcher(t *testing.T, client llm.Client) (*Dispatcher, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "agent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(client, st, zaptest.NewLogger(t)), st
}

func turn(message string) TurnRequest {
	return TurnRequest{
		AccountID: testAccount,
		Message:   message,
		LocalDate: "2026-01-09",
		LocalTime: "10:30 PM",
	}
}

func proposeCalls(calls ...llm.ToolCall) func(context.Context, string, []llm.Message, string, []llm.ToolDefinition) (*llm.Response, error) {
	return func(context.Context, string, []llm.Message, string, []llm.ToolDefinition) (*llm.Response, error) {
		return &llm.Response{ToolCalls: calls}, nil
	}
}

// The core end-to-end path: a tip report with a relative date becomes a
// stored shift on the resolved calendar day, against the user's only job.
func TestHandleLogsTipsYesterday(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: proposeCalls(llm.ToolCall{
			Name: "add_shift",
			Args: map[string]any{"date": "yesterday", "cashTips": 200.0},
		}),
		NarrateFunc: func(_ context.Context, _ string, _ []llm.Message, _ string, _ []llm.ToolOutcome) (string, error) {
			return "Nice, logged $200.00 in tips for yesterday!", nil
		},
	}
	d, st := newTestDispatcher(t, mock)
	ctx := context.Background()

	job := store.Job{AccountID: testAccount, Name: "Bartender", IsActive: true, IsDefault: true}
	require.NoError(t, st.InsertJob(ctx, &job))

	result, err := d.Handle(ctx, turn("I made $200 in tips yesterday"))
	require.NoError(t, err)
	assert.Equal(t, []string{"add_shift"}, result.FunctionsExecuted)
	assert.Equal(t, "Nice, logged $200.00 in tips for yesterday!", result.Reply)

	sh, err := st.ShiftByDate(ctx, testAccount, "2026-01-08", "")
	require.NoError(t, err)
	assert.Equal(t, 200.0, sh.CashTips)
	assert.Equal(t, job.ID, sh.JobID)
}

func TestHandlePlainChatWithoutTools(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: func(context.Context, string, []llm.Message, string, []llm.ToolDefinition) (*llm.Response, error) {
			return &llm.Response{Text: "Hey! Ready to log some shifts?"}, nil
		},
	}
	d, _ := newTestDispatcher(t, mock)

	result, err := d.Handle(context.Background(), turn("hey"))
	require.NoError(t, err)
	assert.Equal(t, "Hey! Ready to log some shifts?", result.Reply)
	assert.Empty(t, result.FunctionsExecuted)
}

func TestHandleJobClarificationShortCircuits(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: proposeCalls(llm.ToolCall{
			Name: "add_shift",
			Args: map[string]any{"date": "today", "cashTips": 50.0},
		}),
	}
	d, st := newTestDispatcher(t, mock)
	ctx := context.Background()

	// Two jobs, neither mentioned nor default: the agent must ask.
	for _, name := range []string{"Server", "Barber"} {
		job := store.Job{AccountID: testAccount, Name: name, IsActive: true}
		require.NoError(t, st.InsertJob(ctx, &job))
	}

	result, err := d.Handle(ctx, turn("made $50 today"))
	require.NoError(t, err)
	// Narration mock returns "", so the clarification prompt is the reply.
	assert.Contains(t, result.Reply, "Which job was this for?")
	assert.Empty(t, result.FunctionsExecuted)

	shifts, err := st.Shifts(ctx, testAccount, store.ShiftFilter{})
	require.NoError(t, err)
	assert.Empty(t, shifts, "no shift may be written before the job is known")
}

// One bad call must not stop the others from executing.
func TestHandlePartialFailureIsolation(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: proposeCalls(
			llm.ToolCall{Name: "imaginary_operation", Args: map[string]any{}},
			llm.ToolCall{Name: "set_weekly_goal", Args: map[string]any{"amount": 500.0}},
		),
	}
	d, st := newTestDispatcher(t, mock)

	result, err := d.Handle(context.Background(), turn("set my weekly goal to $500"))
	require.NoError(t, err)
	assert.Equal(t, []string{"set_weekly_goal"}, result.FunctionsExecuted)

	goals, err := st.Goals(context.Background(), testAccount)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, 500.0, goals[0].TargetAmount)

	// The model still saw both outcomes, including the failed one.
	require.Len(t, mock.LastNarrateOutcomes, 2)
	assert.True(t, mock.LastNarrateOutcomes[0].IsError)
}

func TestHandleDegenerateNarrationFallsBack(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: proposeCalls(llm.ToolCall{
			Name: "set_weekly_goal",
			Args: map[string]any{"amount": 500.0},
		}),
		NarrateFunc: func(context.Context, string, []llm.Message, string, []llm.ToolOutcome) (string, error) {
			return "...", nil
		},
	}
	d, _ := newTestDispatcher(t, mock)

	result, err := d.Handle(context.Background(), turn("weekly goal $500"))
	require.NoError(t, err)
	assert.Contains(t, result.Reply, "weekly goal")
	assert.Contains(t, result.Reply, "$500.00")
}

func TestHandleNarrationErrorSynthesizesConfirmation(t *testing.T) {
	mock := &llm.MockClient{
		NarrateFunc: func(context.Context, string, []llm.Message, string, []llm.ToolOutcome) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	d, st := newTestDispatcher(t, mock)
	ctx := context.Background()

	job := store.Job{AccountID: testAccount, Name: "Bartender", IsActive: true, IsDefault: true}
	require.NoError(t, st.InsertJob(ctx, &job))
	sh := store.Shift{AccountID: testAccount, JobID: job.ID, Date: "2026-01-08", CashTips: 150}
	require.NoError(t, st.InsertShift(ctx, &sh))

	mock.ProposeFunc = proposeCalls(llm.ToolCall{
		Name: "delete_shift",
		Args: map[string]any{"date": "yesterday"},
	})

	result, err := d.Handle(ctx, turn("delete yesterday's shift"))
	require.NoError(t, err)
	// Confirmation prompts outrank everything in the synthesized reply.
	assert.Contains(t, result.Reply, "Delete the shift on 2026-01-08")

	// Nothing was deleted without confirmed=true.
	_, err = st.ShiftByID(ctx, testAccount, sh.ID)
	require.NoError(t, err)
}

func TestHandlePersistsChatHistory(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: func(context.Context, string, []llm.Message, string, []llm.ToolDefinition) (*llm.Response, error) {
			return &llm.Response{Text: "Hello! How can I help?"}, nil
		},
	}
	d, st := newTestDispatcher(t, mock)

	_, err := d.Handle(context.Background(), turn("hi"))
	require.NoError(t, err)

	count, err := st.ChatMessageCount(context.Background(), testAccount)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestHandleProposalErrorFailsTurn(t *testing.T) {
	mock := &llm.MockClient{
		ProposeFunc: func(context.Context, string, []llm.Message, string, []llm.ToolDefinition) (*llm.Response, error) {
			return nil, errors.New("rate limited")
		},
	}
	d, _ := newTestDispatcher(t, mock)

	_, err := d.Handle(context.Background(), turn("hello"))
	assert.Error(t, err)
}

func TestDegenerate(t *testing.T) {
	assert.True(t, degenerate(""))
	assert.True(t, degenerate("   "))
	assert.True(t, degenerate("ok"))
	assert.True(t, degenerate("!!!???...!!!"))
	assert.False(t, degenerate("Logged your shift for yesterday."))
}
