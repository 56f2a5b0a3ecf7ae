package store

import "time"

// Job is an income source. Ended jobs stay queryable for history.
type Job struct {
	ID         string
	AccountID  string
	Name       string
	Industry   string
	HourlyRate float64
	Color      string
	IsDefault  bool
	IsActive   bool
	EndDate    string
	CreatedAt  time.Time
}

// Shift is one worked day. Industry-specific fields default to zero; only the
// populated subset is meaningful for a given shift.
type Shift struct {
	ID                   string
	AccountID            string
	JobID                string
	Date                 string
	CashTips             float64
	CreditTips           float64
	HourlyRate           float64
	HoursWorked          float64
	StartTime            string
	EndTime              string
	OvertimeHours        float64
	FlatRate             float64
	Commission           float64
	SalesAmount          float64
	TipoutPercent        float64
	AdditionalTipout     float64
	AdditionalTipoutNote string
	EventName            string
	EventCost            float64
	Hostess              string
	GuestCount           int
	Location             string
	ClientName           string
	ProjectName          string
	Mileage              float64
	Notes                string
	CreatedAt            time.Time
}

// Total is the shift's gross income: tips plus wages plus flat pay plus
// commission, minus tipouts.
func (s *Shift) Total() float64 {
	total := s.CashTips + s.CreditTips + s.HourlyRate*s.HoursWorked + s.FlatRate + s.Commission
	if s.TipoutPercent > 0 {
		total -= (s.CashTips + s.CreditTips) * s.TipoutPercent / 100
	}
	total -= s.AdditionalTipout
	return total
}

// Goal is an income target. At most one active goal exists per (type, job)
// pair; setting again replaces.
type Goal struct {
	ID           string
	AccountID    string
	Type         string
	TargetAmount float64
	TargetHours  float64
	JobID        string
	IsActive     bool
	CreatedAt    time.Time
}

// Contact is a person met through work, optionally linked to shifts.
type Contact struct {
	ID         string
	AccountID  string
	Name       string
	Role       string
	CustomRole string
	Company    string
	Phone      string
	Email      string
	Website    string
	Instagram  string
	Notes      string
	IsFavorite bool
	CreatedAt  time.Time
}

// Invoice tracks money owed for event or freelance work.
type Invoice struct {
	ID            string
	AccountID     string
	InvoiceNumber string
	ClientName    string
	InvoiceDate   string
	DueDate       string
	TotalAmount   float64
	AmountPaid    float64
	Status        string
	ShiftID       string
	Notes         string
	CreatedAt     time.Time
}

// Outstanding is the unpaid remainder, never negative.
func (i *Invoice) Outstanding() float64 {
	if rem := i.TotalAmount - i.AmountPaid; rem > 0 {
		return rem
	}
	return 0
}

// Settings is the per-account preference row. Zero-value accounts get the
// schema defaults on first read.
type Settings struct {
	AccountID            string
	Theme                string
	NotificationsEnabled bool
	ShiftReminders       bool
	ShiftReminderTime    string
	GoalReminders        bool
	GoalReminderFreq     string
	QuietHoursEnabled    bool
	QuietStart           string
	QuietEnd             string
	FilingStatus         string
	Dependents           int
	Deductions           float64
	IsSelfEmployed       bool
	CurrencyCode         string
	ShowCents            bool
	DateFormat           string
	WeekStartDay         string
	UpdatedAt            time.Time
}
