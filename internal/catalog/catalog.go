// Package catalog holds the fixed registry of operations the agent can
// perform. Each operation declares its parameter schema for the model plus
// the orchestration annotations the dispatcher needs: which parameters carry
// date expressions, whether an omitted job id should be auto-resolved, and
// whether the operation is guarded by the confirmation protocol.
//
// Routing is catalog-driven: the dispatcher builds a static name -> family
// map from this registry, so adding an operation means one entry here plus
// one case in the owning family module. The dispatcher never changes.
package catalog

import (
	"fmt"

	"tipline/internal/llm"
)

// Version identifies the catalog generation sent to the model.
const Version = "2026-02"

// Family groups operations by their owning domain module.
type Family string

const (
	FamilyShift     Family = "shift"
	FamilyJob       Family = "job"
	FamilyGoal      Family = "goal"
	FamilyContact   Family = "contact"
	FamilyInvoice   Family = "invoice"
	FamilyAnalytics Family = "analytics"
	FamilySettings  Family = "settings"
	FamilyUtility   Family = "utility"
)

// Param describes one operation parameter.
type Param struct {
	Type        string // "string", "number", "integer", "boolean", "object"
	Description string
	Enum        []string
	Required    bool
}

// Operation is one catalog entry. Immutable after New.
type Operation struct {
	Name        string
	Description string
	Family      Family
	Params      map[string]Param

	// DateParams lists string parameters holding natural date expressions
	// the dispatcher resolves against the turn's anchor date.
	DateParams []string

	// AutoJob marks operations where an omitted job_id is filled in by the
	// job resolver before execution.
	AutoJob bool

	// Confirm marks destructive operations that accept a confirmed flag and
	// return a preview when it is absent or false.
	Confirm bool
}

// Catalog is the loaded registry. Safe for concurrent reads.
type Catalog struct {
	byName  map[string]Operation
	ordered []Operation
}

// New builds the full operation catalog.
func New() *Catalog {
	var ops []Operation
	ops = append(ops, shiftOps()...)
	ops = append(ops, jobOps()...)
	ops = append(ops, goalOps()...)
	ops = append(ops, contactOps()...)
	ops = append(ops, invoiceOps()...)
	ops = append(ops, analyticsOps()...)
	ops = append(ops, settingsOps()...)
	ops = append(ops, utilityOps()...)

	c := &Catalog{
		byName:  make(map[string]Operation, len(ops)),
		ordered: ops,
	}
	for _, op := range ops {
		if _, dup := c.byName[op.Name]; dup {
			panic(fmt.Sprintf("catalog: duplicate operation %q", op.Name))
		}
		c.byName[op.Name] = op
	}
	return c
}

// Lookup returns the operation definition for a name.
func (c *Catalog) Lookup(name string) (Operation, bool) {
	op, ok := c.byName[name]
	return op, ok
}

// Len returns the number of registered operations.
func (c *Catalog) Len() int { return len(c.ordered) }

// All returns the operations in registration order.
func (c *Catalog) All() []Operation {
	out := make([]Operation, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Tools encodes the catalog into the wire tool definitions sent to the model.
func (c *Catalog) Tools() []llm.ToolDefinition {
	tools := make([]llm.ToolDefinition, 0, len(c.ordered))
	for _, op := range c.ordered {
		tools = append(tools, llm.ToolDefinition{
			Name:        op.Name,
			Description: op.Description,
			InputSchema: encodeSchema(op),
		})
	}
	return tools
}

func encodeSchema(op Operation) map[string]any {
	properties := make(map[string]any, len(op.Params))
	var required []string
	for name, p := range op.Params {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		properties[name] = prop
		if p.Required {
			required = append(required, name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Shorthand constructors for the definition tables.

func str(desc string) Param     { return Param{Type: "string", Description: desc} }
func num(desc string) Param     { return Param{Type: "number", Description: desc} }
func integer(desc string) Param { return Param{Type: "integer", Description: desc} }
func boolean(desc string) Param { return Param{Type: "boolean", Description: desc} }
func object(desc string) Param  { return Param{Type: "object", Description: desc} }

func required(p Param) Param {
	p.Required = true
	return p
}

func enum(p Param, values ...string) Param {
	p.Enum = values
	return p
}

// confirmed is the shared confirmation-flag parameter of every destructive
// operation. When false or omitted the operation previews instead of mutating.
func confirmedParam() Param {
	return boolean("Set true ONLY after the user has explicitly approved the previewed change. False or omitted returns a preview.")
}
