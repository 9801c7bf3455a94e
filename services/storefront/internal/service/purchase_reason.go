package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
)

const (
	contractDateInput  = "2006-01-02"
	contractDateLayout = "2006-01-02T15:04:05Z"
)

type FormState int

const (
	Viewing FormState = iota
	Editing
	Saving
)

func (s FormState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "viewing"
	}
}

// PurchaseReasonForm holds the purchase-reason step of the journey. Input is
// only accepted while editing and survives toggling the edit flag.
type PurchaseReasonForm struct {
	state           FormState
	reason          domain.PurchaseReason
	serviceProvider string
	contractDate    time.Time
	processType     domain.ProcessType
	forEntry        bool
	now             func() time.Time
}

// PurchaseReasonOutcome is what a save produces: entry details when the
// form belongs to a cart entry, checklist actions otherwise.
type PurchaseReasonOutcome struct {
	Details   *domain.ServiceProviderDetails
	Checklist []domain.ChecklistActionDetail
}

// NewPurchaseReasonForm starts in Viewing. processType is the entry's
// current process type, or "" when no cart entry exists yet.
func NewPurchaseReasonForm(processType domain.ProcessType, now func() time.Time) *PurchaseReasonForm {
	if processType != "" {
		return NewEntryPurchaseReasonForm(processType, "", now)
	}
	if now == nil {
		now = time.Now
	}
	return &PurchaseReasonForm{reason: domain.ReasonMove, now: now}
}

// NewEntryPurchaseReasonForm starts a form for an existing cart entry, seeded
// with its process type and current service provider. An entry without a
// process type counts as an acquisition.
func NewEntryPurchaseReasonForm(processType domain.ProcessType, serviceProvider string, now func() time.Time) *PurchaseReasonForm {
	if now == nil {
		now = time.Now
	}
	if processType == "" {
		processType = domain.ProcessAcquisition
	}
	return &PurchaseReasonForm{
		reason:          domain.ReasonForProcessType(processType),
		serviceProvider: strings.TrimSpace(serviceProvider),
		processType:     processType,
		forEntry:        true,
		now:             now,
	}
}

func (f *PurchaseReasonForm) State() FormState { return f.state }
func (f *PurchaseReasonForm) Reason() domain.PurchaseReason { return f.reason }
func (f *PurchaseReasonForm) ServiceProvider() string { return f.serviceProvider }

func (f *PurchaseReasonForm) ToggleEdit() {
	if f.state == Editing {
		f.state = Viewing
		return
	}
	f.state = Editing
}

func (f *PurchaseReasonForm) SelectReason(reason domain.PurchaseReason) error {
	if f.state != Editing {
		return ErrNotEditing
	}
	if !reason.Valid() {
		return fmt.Errorf("unknown purchase reason %q: %w", reason, ErrValidation)
	}
	f.reason = reason
	return nil
}

func (f *PurchaseReasonForm) SetServiceProvider(name string) error {
	if f.state != Editing {
		return ErrNotEditing
	}
	f.serviceProvider = strings.TrimSpace(name)
	return nil
}

// MinContractDate is tomorrow, at midnight UTC.
func (f *PurchaseReasonForm) MinContractDate() time.Time {
	y, m, d := f.now().UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}

// SetContractDate takes a YYYY-MM-DD date no earlier than tomorrow. An empty
// input clears the date.
func (f *PurchaseReasonForm) SetContractDate(input string) error {
	if f.state != Editing {
		return ErrNotEditing
	}
	input = strings.TrimSpace(input)
	if input == "" {
		f.contractDate = time.Time{}
		return nil
	}
	date, err := time.Parse(contractDateInput, input)
	if err != nil {
		return fmt.Errorf("contract date %q: %w", input, ErrValidation)
	}
	if date.Before(f.MinContractDate()) {
		return fmt.Errorf("contract date %s is before %s: %w", input, f.MinContractDate().Format(contractDateInput), ErrValidation)
	}
	f.contractDate = date
	return nil
}

func (f *PurchaseReasonForm) formattedContractDate() string {
	if f.contractDate.IsZero() {
		return ""
	}
	return f.contractDate.Format(contractDateLayout)
}

// Save ends the edit and returns to Viewing. An entry only switches provider
// when a provider name is known; otherwise it is saved as an acquisition.
func (f *PurchaseReasonForm) Save() (PurchaseReasonOutcome, error) {
	if f.state != Editing {
		return PurchaseReasonOutcome{}, ErrNotEditing
	}
	f.state = Saving
	defer func() { f.state = Viewing }()

	switching := f.reason == domain.ReasonSwitchProvider
	date := f.formattedContractDate()

	if f.forEntry {
		details := &domain.ServiceProviderDetails{
			ContractDate: date,
			ProcessType:  domain.ProcessAcquisition,
		}
		if switching && f.serviceProvider != "" {
			details.ProcessType = domain.ProcessSwitchServiceProvider
			details.ServiceProviderName = f.serviceProvider
		}
		return PurchaseReasonOutcome{Details: details}, nil
	}

	contract := domain.ChecklistActionDetail{Type: domain.ChecklistContractStartDate, Value: date}
	if date == "" {
		contract = domain.ChecklistActionDetail{Type: domain.ChecklistContractStartDate, Action: domain.ChecklistActionRemove}
	}
	provider := domain.ChecklistActionDetail{Type: domain.ChecklistServiceProvider, Action: domain.ChecklistActionRemove}
	if switching && f.serviceProvider != "" {
		provider = domain.ChecklistActionDetail{Type: domain.ChecklistServiceProvider, Value: f.serviceProvider}
	}
	return PurchaseReasonOutcome{Checklist: []domain.ChecklistActionDetail{contract, provider}}, nil
}
