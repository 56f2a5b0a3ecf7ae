// Package agent runs the conversational loop: propose tool calls against the
// catalog, resolve ambiguous arguments, execute through the domain modules,
// then narrate the outcomes back to the user.
package agent

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tipline/internal/brief"
	"tipline/internal/catalog"
	"tipline/internal/llm"
	"tipline/internal/ops"
	"tipline/internal/resolve"
	"tipline/internal/store"
)

// TurnRequest is one user message plus its client-side context.
type TurnRequest struct {
	AccountID string
	Message   string
	History   []llm.Message
	LocalDate string
	LocalTime string
	TimeZone  string
}

// TurnResult is the agent's answer for one turn.
type TurnResult struct {
	Reply             string
	FunctionsExecuted []string
}

// Dispatcher wires the model, catalog, and domain modules together.
type Dispatcher struct {
	client  llm.Client
	catalog *catalog.Catalog
	modules map[catalog.Family]ops.Module
	store   *store.Store
	brief   *brief.Builder
	log     *zap.Logger
}

// New builds a dispatcher with the full module set registered.
func New(client llm.Client, st *store.Store, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		client:  client,
		catalog: catalog.New(),
		modules: map[catalog.Family]ops.Module{
			catalog.FamilyShift:     ops.NewShiftModule(st),
			catalog.FamilyJob:       ops.NewJobModule(st),
			catalog.FamilyGoal:      ops.NewGoalModule(st),
			catalog.FamilyContact:   ops.NewContactModule(st),
			catalog.FamilyInvoice:   ops.NewInvoiceModule(st),
			catalog.FamilyAnalytics: ops.NewAnalyticsModule(st),
			catalog.FamilySettings:  ops.NewSettingsModule(st),
			catalog.FamilyUtility:   ops.NewUtilityModule(st),
		},
		store: st,
		brief: brief.New(st),
		log:   log,
	}
}

// Catalog exposes the operation registry, mainly for the server's debug info.
func (d *Dispatcher) Catalog() *catalog.Catalog { return d.catalog }

// Handle runs one conversation turn.
func (d *Dispatcher) Handle(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	anchor := resolve.Anchor(req.LocalDate)

	briefText, err := d.brief.Build(ctx, req.AccountID, anchor)
	if err != nil {
		return nil, fmt.Errorf("failed to build context brief: %w", err)
	}
	system := systemPrompt(briefText, req.TimeZone)

	proposal, err := d.client.Propose(ctx, system, req.History, req.Message, d.catalog.Tools())
	if err != nil {
		return nil, fmt.Errorf("model proposal failed: %w", err)
	}

	var result *TurnResult
	if len(proposal.ToolCalls) == 0 {
		reply := proposal.Text
		if degenerate(reply) {
			reply = "I'm here to help you track your income. What would you like to do?"
		}
		result = &TurnResult{Reply: reply}
	} else {
		result, err = d.executeAndNarrate(ctx, req, anchor, proposal.ToolCalls, system)
		if err != nil {
			return nil, err
		}
	}

	d.persistTurn(ctx, req, result.Reply)
	return result, nil
}

// executeAndNarrate resolves, routes, and executes every proposed call, then
// asks the model for the final reply. Execution never stops at a failed call;
// each outcome is reported independently.
func (d *Dispatcher) executeAndNarrate(ctx context.Context, req TurnRequest, anchor time.Time, calls []llm.ToolCall, system string) (*TurnResult, error) {
	outcomes := make([]llm.ToolOutcome, 0, len(calls))
	results := make([]*ops.Result, 0, len(calls))
	executed := make([]string, 0, len(calls))

	// The account's jobs are fetched at most once per turn, lazily.
	var jobInfos []resolve.JobInfo
	jobsLoaded := false

	for _, call := range calls {
		op, known := d.catalog.Lookup(call.Name)
		if !known {
			d.log.Warn("model proposed unknown operation", zap.String("operation", call.Name))
			outcomes = append(outcomes, errorOutcome(call, fmt.Sprintf("unknown operation %q", call.Name)))
			results = append(results, &ops.Result{Error: fmt.Sprintf("unknown operation %q", call.Name)})
			continue
		}

		args := ops.Args{}
		for k, v := range call.Args {
			args[k] = v
		}

		for _, param := range op.DateParams {
			if expr := args.Str(param); expr != "" {
				args[param] = resolve.Date(expr, anchor)
			}
		}

		if op.AutoJob && args.Str("jobId") == "" {
			if !jobsLoaded {
				jobs, err := d.store.Jobs(ctx, req.AccountID, false)
				if err != nil {
					return nil, fmt.Errorf("failed to load jobs for resolution: %w", err)
				}
				for _, j := range jobs {
					jobInfos = append(jobInfos, resolve.JobInfo{ID: j.ID, Name: j.Name, IsDefault: j.IsDefault})
				}
				jobsLoaded = true
			}
			choice := resolve.Job("", jobInfos, req.Message)
			if choice.NeedsClarification {
				res := &ops.Result{Success: true, Message: choice.Prompt, NeedsClarification: true}
				outcomes = append(outcomes, llm.ToolOutcome{
					Name: call.Name, Args: call.Args, Response: res.Response(),
				})
				results = append(results, res)
				continue
			}
			args["jobId"] = choice.JobID
		}

		module := d.modules[op.Family]
		res, err := module.Execute(ctx, ops.Request{
			AccountID: req.AccountID,
			Name:      call.Name,
			Args:      args,
			Anchor:    anchor,
			LocalTime: req.LocalTime,
		})
		if err != nil {
			d.log.Error("operation failed",
				zap.String("operation", call.Name),
				zap.Error(err))
			outcomes = append(outcomes, errorOutcome(call, "internal error executing operation"))
			results = append(results, &ops.Result{Error: "internal error"})
			continue
		}

		d.log.Info("operation executed",
			zap.String("operation", call.Name),
			zap.Bool("success", res.Success),
			zap.Bool("needsConfirmation", res.NeedsConfirmation))
		outcomes = append(outcomes, llm.ToolOutcome{
			Name: call.Name, Args: call.Args, Response: res.Response(),
		})
		results = append(results, res)
		executed = append(executed, call.Name)
	}

	reply, err := d.client.Narrate(ctx, system, req.History, req.Message, outcomes)
	if err != nil {
		d.log.Warn("narration failed, synthesizing reply", zap.Error(err))
		reply = ""
	}
	if degenerate(reply) {
		reply = synthesizeReply(calls, results)
	}

	return &TurnResult{Reply: reply, FunctionsExecuted: executed}, nil
}

// persistTurn appends both sides of the exchange to chat history. Persistence
// failures are logged, never surfaced; the reply already happened.
func (d *Dispatcher) persistTurn(ctx context.Context, req TurnRequest, reply string) {
	if err := d.store.AppendChatMessage(ctx, req.AccountID, true, req.Message); err != nil {
		d.log.Warn("failed to persist user message", zap.Error(err))
	}
	if err := d.store.AppendChatMessage(ctx, req.AccountID, false, reply); err != nil {
		d.log.Warn("failed to persist reply", zap.Error(err))
	}
}

func errorOutcome(call llm.ToolCall, msg string) llm.ToolOutcome {
	return llm.ToolOutcome{
		Name:     call.Name,
		Args:     call.Args,
		Response: map[string]any{"success": false, "error": msg},
		IsError:  true,
	}
}
