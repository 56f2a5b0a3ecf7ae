package ops

import (
	"context"
	"errors"
	"fmt"

	"tipline/internal/store"
)

var contactColumnsByArg = map[string]string{
	"name":       "name",
	"role":       "role",
	"customRole": "custom_role",
	"company":    "company",
	"phone":      "phone",
	"email":      "email",
	"website":    "website",
	"instagram":  "instagram",
	"notes":      "notes",
	"isFavorite": "is_favorite",
}

// ContactModule owns the event contact family operations.
type ContactModule struct {
	store *store.Store
}

// NewContactModule builds the contact module.
func NewContactModule(st *store.Store) *ContactModule {
	return &ContactModule{store: st}
}

// Execute runs one contact operation.
func (m *ContactModule) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Name {
	case "add_event_contact":
		return m.addContact(ctx, req)
	case "edit_event_contact":
		return m.editContact(ctx, req)
	case "delete_event_contact":
		return m.deleteContact(ctx, req)
	case "search_contacts":
		return m.searchContacts(ctx, req)
	case "get_contacts_for_shift":
		return m.getContactsForShift(ctx, req)
	case "set_contact_favorite":
		return m.setContactFavorite(ctx, req)
	case "link_contact_to_shift":
		return m.linkContactToShift(ctx, req)
	default:
		return nil, fmt.Errorf("contact module: unknown operation %q", req.Name)
	}
}

func (m *ContactModule) addContact(ctx context.Context, req Request) (*Result, error) {
	name := req.Args.Str("name")
	if name == "" {
		return fail("contact name is required"), nil
	}

	c := store.Contact{
		AccountID:  req.AccountID,
		Name:       name,
		Role:       req.Args.Str("role"),
		CustomRole: req.Args.Str("customRole"),
		Company:    req.Args.Str("company"),
		Phone:      req.Args.Str("phone"),
		Email:      req.Args.Str("email"),
		Website:    req.Args.Str("website"),
		Instagram:  req.Args.Str("instagram"),
		Notes:      req.Args.Str("notes"),
	}
	if err := m.store.InsertContact(ctx, &c); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Saved %s to your contacts.", c.Name)
	if shiftID := req.Args.Str("shiftId"); shiftID != "" {
		if _, err := m.store.ShiftByID(ctx, req.AccountID, shiftID); err == nil {
			if err := m.store.LinkContactToShift(ctx, req.AccountID, c.ID, shiftID); err != nil {
				return nil, err
			}
			msg = fmt.Sprintf("Saved %s to your contacts and linked them to the shift.", c.Name)
		}
	}
	return okData(map[string]any{"contactId": c.ID, "name": c.Name}, "%s", msg), nil
}

// findContact resolves a contact by id when given, otherwise by name. A nil
// contact with a non-nil Result means the lookup already produced the answer.
func (m *ContactModule) findContact(ctx context.Context, accountID, id, name string) (*store.Contact, *Result, error) {
	if id != "" {
		c, err := m.store.ContactByID(ctx, accountID, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fail("contact %s not found", id), nil
		}
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	}
	if name == "" {
		return nil, fail("a contactId or name is required"), nil
	}
	c, err := m.store.ContactByName(ctx, accountID, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fail("no contact named %q", name), nil
	}
	if err != nil {
		return nil, nil, err
	}
	return c, nil, nil
}

func (m *ContactModule) editContact(ctx context.Context, req Request) (*Result, error) {
	updates := req.Args.Object("updates")
	if len(updates) == 0 {
		return fail("updates object is required"), nil
	}
	c, res, err := m.findContact(ctx, req.AccountID, req.Args.Str("contactId"), req.Args.Str("name"))
	if res != nil || err != nil {
		return res, err
	}

	columns := make(map[string]any, len(updates))
	for arg := range updates {
		col, known := contactColumnsByArg[arg]
		if !known {
			return fail("unknown contact field %q", arg), nil
		}
		if arg == "isFavorite" {
			columns[col] = updates.Bool(arg)
		} else {
			columns[col] = updates.Str(arg)
		}
	}
	if err := m.store.UpdateContact(ctx, req.AccountID, c.ID, columns); err != nil {
		return nil, err
	}
	return ok("Updated %s's contact info.", c.Name), nil
}

func (m *ContactModule) deleteContact(ctx context.Context, req Request) (*Result, error) {
	c, res, err := m.findContact(ctx, req.AccountID, req.Args.Str("contactId"), req.Args.Str("name"))
	if res != nil || err != nil {
		return res, err
	}

	if !req.Args.Bool("confirmed") {
		return confirm(map[string]any{"contactId": c.ID, "name": c.Name},
			"Delete %s from your contacts?", c.Name), nil
	}
	if err := m.store.DeleteContact(ctx, req.AccountID, c.ID); err != nil {
		return nil, err
	}
	return ok("Deleted %s from your contacts.", c.Name), nil
}

func (m *ContactModule) searchContacts(ctx context.Context, req Request) (*Result, error) {
	contacts, err := m.store.Contacts(ctx, req.AccountID, store.ContactFilter{
		Query:   req.Args.Str("query"),
		Role:    req.Args.Str("role"),
		Company: req.Args.Str("company"),
	})
	if err != nil {
		return nil, err
	}
	list := make([]map[string]any, 0, len(contacts))
	for i := range contacts {
		list = append(list, contactSummary(&contacts[i]))
	}
	return okData(map[string]any{"contacts": list, "count": len(list)},
		"Found %d contact(s).", len(list)), nil
}

func (m *ContactModule) getContactsForShift(ctx context.Context, req Request) (*Result, error) {
	shiftID := req.Args.Str("shiftId")
	if shiftID == "" {
		date := req.Args.Str("date")
		if !validISODate(date) {
			return fail("a shiftId or date is required"), nil
		}
		sh, err := m.store.ShiftByDate(ctx, req.AccountID, date, "")
		if errors.Is(err, store.ErrNotFound) {
			return fail("no shift found on %s", date), nil
		}
		if err != nil {
			return nil, err
		}
		shiftID = sh.ID
	}

	contacts, err := m.store.ContactsForShift(ctx, req.AccountID, shiftID)
	if err != nil {
		return nil, err
	}
	list := make([]map[string]any, 0, len(contacts))
	for i := range contacts {
		list = append(list, contactSummary(&contacts[i]))
	}
	return okData(map[string]any{"contacts": list, "count": len(list)},
		"That shift has %d linked contact(s).", len(list)), nil
}

func (m *ContactModule) setContactFavorite(ctx context.Context, req Request) (*Result, error) {
	c, res, err := m.findContact(ctx, req.AccountID, req.Args.Str("contactId"), req.Args.Str("name"))
	if res != nil || err != nil {
		return res, err
	}
	favorite := req.Args.Bool("isFavorite")
	if err := m.store.UpdateContact(ctx, req.AccountID, c.ID,
		map[string]any{"is_favorite": favorite}); err != nil {
		return nil, err
	}
	if favorite {
		return ok("Marked %s as a favorite.", c.Name), nil
	}
	return ok("Removed %s from favorites.", c.Name), nil
}

func (m *ContactModule) linkContactToShift(ctx context.Context, req Request) (*Result, error) {
	shiftID := req.Args.Str("shiftId")
	if shiftID == "" {
		return fail("shiftId is required"), nil
	}
	c, res, err := m.findContact(ctx, req.AccountID, req.Args.Str("contactId"), req.Args.Str("contactName"))
	if res != nil || err != nil {
		return res, err
	}
	if _, err := m.store.ShiftByID(ctx, req.AccountID, shiftID); errors.Is(err, store.ErrNotFound) {
		return fail("shift %s not found", shiftID), nil
	} else if err != nil {
		return nil, err
	}

	if err := m.store.LinkContactToShift(ctx, req.AccountID, c.ID, shiftID); err != nil {
		return nil, err
	}
	return ok("Linked %s to the shift.", c.Name), nil
}

func contactSummary(c *store.Contact) map[string]any {
	s := map[string]any{
		"contactId": c.ID,
		"name":      c.Name,
	}
	if c.Role != "" {
		role := c.Role
		if role == "custom" && c.CustomRole != "" {
			role = c.CustomRole
		}
		s["role"] = role
	}
	if c.Company != "" {
		s["company"] = c.Company
	}
	if c.Phone != "" {
		s["phone"] = c.Phone
	}
	if c.Email != "" {
		s["email"] = c.Email
	}
	if c.Instagram != "" {
		s["instagram"] = c.Instagram
	}
	if c.IsFavorite {
		s["isFavorite"] = true
	}
	return s
}
