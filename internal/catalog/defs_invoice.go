package catalog

func invoiceOps() []Operation {
	return []Operation{
		{
			Name:        "get_invoices",
			Description: "List invoices with optional filters.",
			Family:      FamilyInvoice,
			Params: map[string]Param{
				"startDate": str("From date (YYYY-MM-DD)"),
				"endDate":   str("To date (YYYY-MM-DD)"),
				"client":    str("Filter by client name"),
				"status":    enum(str("Filter by status"), "draft", "sent", "paid", "overdue"),
				"minAmount": num("Minimum amount"),
				"maxAmount": num("Maximum amount"),
			},
			DateParams: []string{"startDate", "endDate"},
		},
		{
			Name:        "search_invoices",
			Description: "Search invoices by client or invoice number.",
			Family:      FamilyInvoice,
			Params: map[string]Param{
				"searchTerm": required(str("Search query")),
			},
		},
		{
			Name:        "get_invoice_details",
			Description: "Get complete details of an invoice.",
			Family:      FamilyInvoice,
			Params: map[string]Param{
				"invoiceId": required(str("Invoice UUID")),
			},
		},
		{
			Name:        "get_unpaid_invoices",
			Description: "List all unpaid invoices.",
			Family:      FamilyInvoice,
			Params:      map[string]Param{},
		},
		{
			Name:        "get_overdue_invoices",
			Description: "List all overdue invoices.",
			Family:      FamilyInvoice,
			Params:      map[string]Param{},
		},
		{
			Name:        "get_total_receivables",
			Description: "Get the total amount owed from unpaid invoices.",
			Family:      FamilyInvoice,
			Params:      map[string]Param{},
		},
		{
			Name:        "mark_invoice_paid",
			Description: "Record a payment on an invoice.",
			Family:      FamilyInvoice,
			Params: map[string]Param{
				"invoiceId":  required(str("Invoice UUID")),
				"amountPaid": required(num("Payment amount")),
				"paidDate":   str("Payment date (YYYY-MM-DD, default today)"),
			},
			DateParams: []string{"paidDate"},
		},
		{
			Name:        "mark_invoice_overdue",
			Description: "Mark an invoice as overdue.",
			Family:      FamilyInvoice,
			Params: map[string]Param{
				"invoiceId": required(str("Invoice UUID")),
			},
		},
		{
			Name:        "link_invoice_to_shift",
			Description: "Associate an invoice with a shift.",
			Family:      FamilyInvoice,
			Params: map[string]Param{
				"invoiceId": required(str("Invoice UUID")),
				"shiftId":   required(str("Shift UUID")),
			},
		},
		{
			Name:        "edit_invoice",
			Description: "Modify invoice details.",
			Family:      FamilyInvoice,
			Params: map[string]Param{
				"invoiceId": required(str("Invoice UUID")),
				"updates":   required(object("Fields to update (clientName, totalAmount, dueDate, status, notes)")),
			},
		},
		{
			Name:        "delete_invoice",
			Description: "Delete an invoice. Confirm first.",
			Family:      FamilyInvoice,
			Params: map[string]Param{
				"invoiceId": required(str("Invoice UUID")),
				"confirmed": confirmedParam(),
			},
			Confirm: true,
		},
	}
}
