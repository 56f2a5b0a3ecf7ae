package ops

import (
	"context"
	"errors"
	"fmt"

	"tipline/internal/store"
)

var invoiceColumnsByArg = map[string]string{
	"invoiceNumber": "invoice_number",
	"clientName":    "client_name",
	"invoiceDate":   "invoice_date",
	"dueDate":       "due_date",
	"totalAmount":   "total_amount",
	"amountPaid":    "amount_paid",
	"status":        "status",
	"notes":         "notes",
}

var invoiceStatuses = map[string]bool{
	"draft": true, "sent": true, "paid": true, "overdue": true,
}

// InvoiceModule owns the invoice family operations.
type InvoiceModule struct {
	store *store.Store
}

// NewInvoiceModule builds the invoice module.
func NewInvoiceModule(st *store.Store) *InvoiceModule {
	return &InvoiceModule{store: st}
}

// Execute runs one invoice operation.
func (m *InvoiceModule) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Name {
	case "get_invoices":
		return m.getInvoices(ctx, req)
	case "search_invoices":
		return m.searchInvoices(ctx, req)
	case "get_invoice_details":
		return m.getInvoiceDetails(ctx, req)
	case "get_unpaid_invoices":
		return m.getUnpaidInvoices(ctx, req)
	case "get_overdue_invoices":
		return m.getOverdueInvoices(ctx, req)
	case "get_total_receivables":
		return m.getTotalReceivables(ctx, req)
	case "mark_invoice_paid":
		return m.markInvoicePaid(ctx, req)
	case "mark_invoice_overdue":
		return m.markInvoiceOverdue(ctx, req)
	case "link_invoice_to_shift":
		return m.linkInvoiceToShift(ctx, req)
	case "edit_invoice":
		return m.editInvoice(ctx, req)
	case "delete_invoice":
		return m.deleteInvoice(ctx, req)
	default:
		return nil, fmt.Errorf("invoice module: unknown operation %q", req.Name)
	}
}

func (m *InvoiceModule) getInvoices(ctx context.Context, req Request) (*Result, error) {
	invoices, err := m.store.Invoices(ctx, req.AccountID, store.InvoiceFilter{
		Status:     req.Args.Str("status"),
		ClientName: req.Args.Str("client"),
		StartDate:  req.Args.Str("startDate"),
		EndDate:    req.Args.Str("endDate"),
	})
	if err != nil {
		return nil, err
	}

	minAmount, hasMin := req.Args.Num("minAmount")
	maxAmount, hasMax := req.Args.Num("maxAmount")
	var list []map[string]any
	var total float64
	for i := range invoices {
		inv := &invoices[i]
		if hasMin && inv.TotalAmount < minAmount {
			continue
		}
		if hasMax && inv.TotalAmount > maxAmount {
			continue
		}
		list = append(list, invoiceSummary(inv))
		total += inv.TotalAmount
	}
	return okData(map[string]any{
		"invoices":    list,
		"count":       len(list),
		"totalAmount": round2(total),
	}, "Found %d invoice(s) totaling %s.", len(list), money(total)), nil
}

func (m *InvoiceModule) searchInvoices(ctx context.Context, req Request) (*Result, error) {
	term := req.Args.Str("searchTerm")
	if term == "" {
		return fail("searchTerm is required"), nil
	}
	invoices, err := m.store.Invoices(ctx, req.AccountID, store.InvoiceFilter{SearchTerm: term})
	if err != nil {
		return nil, err
	}
	list := make([]map[string]any, 0, len(invoices))
	for i := range invoices {
		list = append(list, invoiceSummary(&invoices[i]))
	}
	return okData(map[string]any{"invoices": list, "count": len(list)},
		"Found %d invoice(s) matching %q.", len(list), term), nil
}

func (m *InvoiceModule) getInvoiceDetails(ctx context.Context, req Request) (*Result, error) {
	inv, res, err := m.findInvoice(ctx, req)
	if res != nil || err != nil {
		return res, err
	}
	d := invoiceSummary(inv)
	d["invoiceDate"] = inv.InvoiceDate
	d["amountPaid"] = round2(inv.AmountPaid)
	d["outstanding"] = round2(inv.Outstanding())
	if inv.ShiftID != "" {
		d["shiftId"] = inv.ShiftID
	}
	if inv.Notes != "" {
		d["notes"] = inv.Notes
	}
	return okData(d, "Invoice %s for %s: %s, %s outstanding.",
		displayNumber(inv), inv.ClientName, money(inv.TotalAmount), money(inv.Outstanding())), nil
}

func (m *InvoiceModule) getUnpaidInvoices(ctx context.Context, req Request) (*Result, error) {
	invoices, err := m.unpaid(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	var list []map[string]any
	var owed float64
	for i := range invoices {
		list = append(list, invoiceSummary(&invoices[i]))
		owed += invoices[i].Outstanding()
	}
	return okData(map[string]any{
		"invoices":  list,
		"count":     len(list),
		"totalOwed": round2(owed),
	}, "You have %d unpaid invoice(s) worth %s.", len(list), money(owed)), nil
}

func (m *InvoiceModule) getOverdueInvoices(ctx context.Context, req Request) (*Result, error) {
	invoices, err := m.unpaid(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	today := req.Anchor.Format(isoDate)
	var list []map[string]any
	var owed float64
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status != "overdue" && (inv.DueDate == "" || inv.DueDate >= today) {
			continue
		}
		list = append(list, invoiceSummary(inv))
		owed += inv.Outstanding()
	}
	return okData(map[string]any{
		"invoices":  list,
		"count":     len(list),
		"totalOwed": round2(owed),
	}, "You have %d overdue invoice(s) worth %s.", len(list), money(owed)), nil
}

func (m *InvoiceModule) getTotalReceivables(ctx context.Context, req Request) (*Result, error) {
	invoices, err := m.unpaid(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	var owed float64
	for i := range invoices {
		owed += invoices[i].Outstanding()
	}
	return okData(map[string]any{
		"totalReceivables": round2(owed),
		"invoiceCount":     len(invoices),
	}, "You're owed %s across %d invoice(s).", money(owed), len(invoices)), nil
}

func (m *InvoiceModule) markInvoicePaid(ctx context.Context, req Request) (*Result, error) {
	inv, res, err := m.findInvoice(ctx, req)
	if res != nil || err != nil {
		return res, err
	}
	amount, hasAmount := req.Args.Num("amountPaid")
	if !hasAmount || amount <= 0 {
		return fail("amountPaid must be a positive number"), nil
	}

	paid := inv.AmountPaid + amount
	updates := map[string]any{"amount_paid": paid}
	fullyPaid := paid >= inv.TotalAmount
	if fullyPaid {
		updates["status"] = "paid"
	}
	if err := m.store.UpdateInvoice(ctx, req.AccountID, inv.ID, updates); err != nil {
		return nil, err
	}

	if fullyPaid {
		return okData(map[string]any{"invoiceId": inv.ID, "status": "paid"},
			"Recorded %s. Invoice %s is now fully paid.", money(amount), displayNumber(inv)), nil
	}
	return okData(map[string]any{
		"invoiceId":   inv.ID,
		"outstanding": round2(inv.TotalAmount - paid),
	}, "Recorded %s toward invoice %s; %s still outstanding.",
		money(amount), displayNumber(inv), money(inv.TotalAmount-paid)), nil
}

func (m *InvoiceModule) markInvoiceOverdue(ctx context.Context, req Request) (*Result, error) {
	inv, res, err := m.findInvoice(ctx, req)
	if res != nil || err != nil {
		return res, err
	}
	if inv.Status == "paid" {
		return fail("invoice %s is already paid", displayNumber(inv)), nil
	}
	if err := m.store.UpdateInvoice(ctx, req.AccountID, inv.ID,
		map[string]any{"status": "overdue"}); err != nil {
		return nil, err
	}
	return ok("Marked invoice %s as overdue.", displayNumber(inv)), nil
}

func (m *InvoiceModule) linkInvoiceToShift(ctx context.Context, req Request) (*Result, error) {
	inv, res, err := m.findInvoice(ctx, req)
	if res != nil || err != nil {
		return res, err
	}
	shiftID := req.Args.Str("shiftId")
	if shiftID == "" {
		return fail("shiftId is required"), nil
	}
	if _, err := m.store.ShiftByID(ctx, req.AccountID, shiftID); errors.Is(err, store.ErrNotFound) {
		return fail("shift %s not found", shiftID), nil
	} else if err != nil {
		return nil, err
	}
	if err := m.store.UpdateInvoice(ctx, req.AccountID, inv.ID,
		map[string]any{"shift_id": shiftID}); err != nil {
		return nil, err
	}
	return ok("Linked invoice %s to the shift.", displayNumber(inv)), nil
}

func (m *InvoiceModule) editInvoice(ctx context.Context, req Request) (*Result, error) {
	inv, res, err := m.findInvoice(ctx, req)
	if res != nil || err != nil {
		return res, err
	}
	updates := req.Args.Object("updates")
	if len(updates) == 0 {
		return fail("updates object is required"), nil
	}

	columns := make(map[string]any, len(updates))
	for arg := range updates {
		col, known := invoiceColumnsByArg[arg]
		if !known {
			return fail("unknown invoice field %q", arg), nil
		}
		switch arg {
		case "totalAmount", "amountPaid":
			v, okNum := updates.Num(arg)
			if !okNum || v < 0 {
				return fail("%s must be a non-negative number", arg), nil
			}
			columns[col] = v
		case "status":
			v := updates.Str(arg)
			if !invoiceStatuses[v] {
				return fail("status must be draft, sent, paid, or overdue"), nil
			}
			columns[col] = v
		default:
			columns[col] = updates.Str(arg)
		}
	}
	if err := m.store.UpdateInvoice(ctx, req.AccountID, inv.ID, columns); err != nil {
		return nil, err
	}
	return ok("Updated invoice %s.", displayNumber(inv)), nil
}

func (m *InvoiceModule) deleteInvoice(ctx context.Context, req Request) (*Result, error) {
	inv, res, err := m.findInvoice(ctx, req)
	if res != nil || err != nil {
		return res, err
	}
	if !req.Args.Bool("confirmed") {
		return confirm(map[string]any{
			"invoiceId": inv.ID,
			"client":    inv.ClientName,
			"amount":    round2(inv.TotalAmount),
		}, "Delete invoice %s for %s (%s)?",
			displayNumber(inv), inv.ClientName, money(inv.TotalAmount)), nil
	}
	if err := m.store.DeleteInvoice(ctx, req.AccountID, inv.ID); err != nil {
		return nil, err
	}
	return ok("Deleted invoice %s.", displayNumber(inv)), nil
}

func (m *InvoiceModule) findInvoice(ctx context.Context, req Request) (*store.Invoice, *Result, error) {
	id := req.Args.Str("invoiceId")
	if id == "" {
		return nil, fail("invoiceId is required"), nil
	}
	inv, err := m.store.InvoiceByID(ctx, req.AccountID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fail("invoice %s not found", id), nil
	}
	if err != nil {
		return nil, nil, err
	}
	return inv, nil, nil
}

// unpaid returns every invoice that still has money outstanding.
func (m *InvoiceModule) unpaid(ctx context.Context, accountID string) ([]store.Invoice, error) {
	invoices, err := m.store.Invoices(ctx, accountID, store.InvoiceFilter{})
	if err != nil {
		return nil, err
	}
	var open []store.Invoice
	for i := range invoices {
		if invoices[i].Status != "paid" && invoices[i].Outstanding() > 0 {
			open = append(open, invoices[i])
		}
	}
	return open, nil
}

func invoiceSummary(inv *store.Invoice) map[string]any {
	s := map[string]any{
		"invoiceId": inv.ID,
		"client":    inv.ClientName,
		"amount":    round2(inv.TotalAmount),
		"status":    inv.Status,
	}
	if inv.InvoiceNumber != "" {
		s["invoiceNumber"] = inv.InvoiceNumber
	}
	if inv.DueDate != "" {
		s["dueDate"] = inv.DueDate
	}
	return s
}

func displayNumber(inv *store.Invoice) string {
	if inv.InvoiceNumber != "" {
		return inv.InvoiceNumber
	}
	if len(inv.ID) >= 8 {
		return inv.ID[:8]
	}
	return inv.ID
}
