package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipline/internal/store"
)

func seedInvoice(t *testing.T, s *store.Store, inv store.Invoice) *store.Invoice {
	t.Helper()
	inv.AccountID = testAccount
	require.NoError(t, s.InsertInvoice(context.Background(), &inv))
	return &inv
}

func TestMarkInvoicePaidPartialAndFull(t *testing.T) {
	s := newTestStore(t)
	m := NewInvoiceModule(s)
	ctx := context.Background()
	inv := seedInvoice(t, s, store.Invoice{ClientName: "Acme", TotalAmount: 1000, Status: "sent"})

	res, err := m.Execute(ctx, execReq("mark_invoice_paid", Args{
		"invoiceId": inv.ID, "amountPaid": 400.0,
	}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 600.0, res.Data["outstanding"])

	res, err = m.Execute(ctx, execReq("mark_invoice_paid", Args{
		"invoiceId": inv.ID, "amountPaid": 600.0,
	}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "paid", res.Data["status"])

	got, err := s.InvoiceByID(ctx, testAccount, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)
	assert.Equal(t, 1000.0, got.AmountPaid)
}

func TestTotalReceivablesExcludesPaid(t *testing.T) {
	s := newTestStore(t)
	m := NewInvoiceModule(s)
	seedInvoice(t, s, store.Invoice{ClientName: "Acme", TotalAmount: 1000, Status: "sent"})
	seedInvoice(t, s, store.Invoice{ClientName: "Beta", TotalAmount: 500, AmountPaid: 200, Status: "sent"})
	seedInvoice(t, s, store.Invoice{ClientName: "Done", TotalAmount: 700, AmountPaid: 700, Status: "paid"})

	res, err := m.Execute(context.Background(), execReq("get_total_receivables", Args{}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 1300.0, res.Data["totalReceivables"])
	assert.Equal(t, 2, res.Data["invoiceCount"])
}

func TestOverdueInvoicesUseAnchorDate(t *testing.T) {
	s := newTestStore(t)
	m := NewInvoiceModule(s)
	seedInvoice(t, s, store.Invoice{ClientName: "Late", TotalAmount: 300, Status: "sent", DueDate: "2026-01-05"})
	seedInvoice(t, s, store.Invoice{ClientName: "Fine", TotalAmount: 300, Status: "sent", DueDate: "2026-02-01"})

	// Anchor is 2026-01-09: only the first invoice is past due.
	res, err := m.Execute(context.Background(), execReq("get_overdue_invoices", Args{}))
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 1, res.Data["count"])
	assert.Equal(t, 300.0, res.Data["totalOwed"])
}

func TestDeleteInvoiceConfirmationProtocol(t *testing.T) {
	s := newTestStore(t)
	m := NewInvoiceModule(s)
	ctx := context.Background()
	inv := seedInvoice(t, s, store.Invoice{ClientName: "Acme", TotalAmount: 1000, Status: "sent"})

	preview, err := m.Execute(ctx, execReq("delete_invoice", Args{"invoiceId": inv.ID}))
	require.NoError(t, err)
	assert.True(t, preview.NeedsConfirmation)

	_, err = s.InvoiceByID(ctx, testAccount, inv.ID)
	require.NoError(t, err)

	applied, err := m.Execute(ctx, execReq("delete_invoice", Args{"invoiceId": inv.ID, "confirmed": true}))
	require.NoError(t, err)
	assert.True(t, applied.Success)

	_, err = s.InvoiceByID(ctx, testAccount, inv.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEditInvoiceValidatesStatus(t *testing.T) {
	s := newTestStore(t)
	m := NewInvoiceModule(s)
	inv := seedInvoice(t, s, store.Invoice{ClientName: "Acme", TotalAmount: 1000, Status: "sent"})

	res, err := m.Execute(context.Background(), execReq("edit_invoice", Args{
		"invoiceId": inv.ID,
		"updates":   map[string]any{"status": "vaporized"},
	}))
	require.NoError(t, err)
	assert.False(t, res.Success)
}
