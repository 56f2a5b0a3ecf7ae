package catalog

// contactRoles is the predefined vendor/staff role list for event contacts.
var contactRoles = []string{
	"dj", "band_musician", "photo_booth", "photographer", "videographer",
	"wedding_planner", "event_coordinator", "hostess", "support_staff",
	"security", "valet", "florist", "linen_rental", "cake_bakery", "catering",
	"rentals", "lighting_av", "officiant", "venue_manager", "venue_coordinator",
	"custom",
}

func contactOps() []Operation {
	return []Operation{
		{
			Name:        "add_event_contact",
			Description: "Add a contact for an event vendor, staff member, or professional the user worked with ('The DJ was Billy', 'wedding planner Sarah', ...).",
			Family:      FamilyContact,
			Params: map[string]Param{
				"name":       required(str("Contact's full name")),
				"role":       enum(str("Role/profession from the predefined list. Use 'custom' if not in list."), contactRoles...),
				"customRole": str("Custom role description when role='custom'"),
				"company":    str("Company/business name"),
				"phone":      str("Phone number"),
				"email":      str("Email address"),
				"website":    str("Website URL"),
				"instagram":  str("Instagram handle (without @)"),
				"notes":      str("Additional notes or details"),
				"shiftId":    str("Optional: link to a specific shift UUID"),
			},
		},
		{
			Name:        "edit_event_contact",
			Description: "Update an existing event contact's information.",
			Family:      FamilyContact,
			Params: map[string]Param{
				"contactId": str("Contact UUID (if known)"),
				"name":      str("Contact name to search for (if contactId not known)"),
				"updates":   required(object("Fields to update (same properties as add_event_contact)")),
			},
		},
		{
			Name:        "delete_event_contact",
			Description: "Delete an event contact. Confirm first.",
			Family:      FamilyContact,
			Params: map[string]Param{
				"contactId": str("Contact UUID (if known)"),
				"name":      str("Contact name to search for (if contactId not known)"),
				"confirmed": confirmedParam(),
			},
			Confirm: true,
		},
		{
			Name:        "search_contacts",
			Description: "Search event contacts by name, role, or company.",
			Family:      FamilyContact,
			Params: map[string]Param{
				"query":   str("Search term (name, company, notes)"),
				"role":    str("Filter by role"),
				"company": str("Filter by company name"),
			},
		},
		{
			Name:        "get_contacts_for_shift",
			Description: "Get all contacts associated with a specific shift/event.",
			Family:      FamilyContact,
			Params: map[string]Param{
				"shiftId": str("Shift UUID"),
				"date":    str("Or shift date (YYYY-MM-DD)"),
			},
			DateParams: []string{"date"},
		},
		{
			Name:        "set_contact_favorite",
			Description: "Mark a contact as favorite or remove it from favorites.",
			Family:      FamilyContact,
			Params: map[string]Param{
				"contactId":  str("Contact UUID (if known)"),
				"name":       str("Contact name to search for (if contactId not known)"),
				"isFavorite": required(boolean("True to favorite, false to unfavorite")),
			},
		},
		{
			Name:        "link_contact_to_shift",
			Description: "Link an existing contact to a shift ('add Billy to Saturday's shift').",
			Family:      FamilyContact,
			Params: map[string]Param{
				"contactId":   str("Contact UUID (if known)"),
				"contactName": str("Contact name to search for (if contactId not known)"),
				"shiftId":     required(str("Shift UUID to link the contact to")),
			},
		},
	}
}
