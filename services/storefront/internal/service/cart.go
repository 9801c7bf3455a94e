package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/i18n"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/metrics"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/repo"
)

const (
	FlowCart           = "cart"
	FlowConsumption    = "consumption"
	FlowPremise        = "premise"
	FlowPurchaseReason = "purchase_reason"
)

type CartService struct {
	Repo       *repo.GormRepo
	Premises   PremiseValidator
	Translator Translator
	Notifier   *Notifier
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

type AddEntryRequest struct {
	BaseSiteID             string
	CartID                 string
	OwnerID                string
	ProductCode            string
	ProductSpecificationID string
	Quantity               uint
	Characteristics        map[string]string
	InstallationAddressID  string
	AppointmentID          string
}

func (s *CartService) AddEntry(ctx context.Context, req AddEntryRequest) (*models.CartEntry, error) {
	if strings.TrimSpace(req.CartID) == "" {
		return nil, fmt.Errorf("cart id must not be empty: %w", ErrValidation)
	}
	if strings.TrimSpace(req.ProductCode) == "" {
		return nil, fmt.Errorf("product code must not be empty: %w", ErrValidation)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	entry := &models.CartEntry{
		BaseSiteID:             req.BaseSiteID,
		CartID:                 req.CartID,
		OwnerID:                req.OwnerID,
		ProductCode:            req.ProductCode,
		ProductSpecificationID: req.ProductSpecificationID,
		Quantity:               req.Quantity,
		AppointmentID:          req.AppointmentID,
		UpdatedBy:              req.OwnerID,
	}
	for name, value := range req.Characteristics {
		entry.Characteristics = append(entry.Characteristics, models.EntryCharacteristic{Name: name, Value: value})
	}
	if req.InstallationAddressID != "" {
		entry.Places = append(entry.Places, models.EntryPlace{
			PlaceID: req.InstallationAddressID,
			Role:    string(domain.PlaceInstallationAddress),
		})
	}

	if err := s.Repo.AddEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CartService) ListEntries(ctx context.Context, cartID string) ([]models.CartEntry, error) {
	return s.Repo.ListEntries(ctx, cartID)
}

func (s *CartService) GetEntry(ctx context.Context, cartID string, entryNumber int) (*models.CartEntry, error) {
	entry, err := s.Repo.GetEntry(ctx, cartID, entryNumber)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("entry %d of cart %s: %w", entryNumber, cartID, ErrNotFound)
	}
	return entry, err
}

func (s *CartService) RemoveEntry(ctx context.Context, cartID string, entryNumber int) error {
	err := s.Repo.RemoveEntry(ctx, cartID, entryNumber)
	if repo.IsNotFound(err) {
		return fmt.Errorf("entry %d of cart %s: %w", entryNumber, cartID, ErrNotFound)
	}
	return err
}

// UpdateCart applies a partial cart request. Each item patches one entry and
// leaves whatever it does not name untouched.
func (s *CartService) UpdateCart(ctx context.Context, cart domain.ShoppingCart) ([]models.CartEntry, error) {
	entries, err := s.updateCart(ctx, cart)
	s.Metrics.CartUpdate(FlowCart, outcome(err))
	return entries, err
}

func (s *CartService) updateCart(ctx context.Context, cart domain.ShoppingCart) ([]models.CartEntry, error) {
	if strings.TrimSpace(cart.ID) == "" {
		return nil, fmt.Errorf("cart id must not be empty: %w", ErrValidation)
	}
	if len(cart.CartItem) == 0 {
		return nil, fmt.Errorf("cart update has no items: %w", ErrValidation)
	}

	numbers := make([]int, len(cart.CartItem))
	for i, item := range cart.CartItem {
		n, err := strconv.Atoi(item.ID)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("cart item id %q is not an entry number: %w", item.ID, ErrValidation)
		}
		if item.ProcessType != nil && !item.ProcessType.ID.Valid() {
			return nil, fmt.Errorf("cart item %s: unknown process type %q: %w", item.ID, item.ProcessType.ID, ErrValidation)
		}
		numbers[i] = n
	}

	updatedBy := domain.AnonymousUserID
	if len(cart.RelatedParty) > 0 && cart.RelatedParty[0].ID != "" {
		updatedBy = cart.RelatedParty[0].ID
	}

	updated := make([]models.CartEntry, 0, len(cart.CartItem))
	for i, item := range cart.CartItem {
		entry, err := s.Repo.ApplyEntryPatch(ctx, cart.ID, numbers[i], item, updatedBy)
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("entry %d of cart %s: %w", numbers[i], cart.ID, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("apply patch to entry %d: %w", numbers[i], err)
		}
		updated = append(updated, *entry)
	}

	s.Notifier.CartEntriesUpdated(ctx, cart, updatedBy)
	return updated, nil
}

func (s *CartService) submit(ctx context.Context, flow, baseSiteID, cartID string, update domain.CartEntryUpdate) (*models.CartEntry, error) {
	entries, err := s.updateCart(ctx, update.ShoppingCart(baseSiteID, cartID))
	s.Metrics.CartUpdate(flow, outcome(err))
	if err != nil {
		return nil, err
	}
	return &entries[0], nil
}

// UpdateConsumption writes an edited estimate onto a cart entry.
func (s *CartService) UpdateConsumption(ctx context.Context, baseSiteID, cartID string, entryNumber int, userID, candidate string) (*models.CartEntry, error) {
	value, err := ParseConsumption(candidate)
	if err != nil {
		s.Metrics.CartUpdate(FlowConsumption, metrics.OutcomeRejected)
		return nil, err
	}
	update := BuildUpdate(strconv.Itoa(entryNumber), RelatedPartyID(userID), map[string]string{
		domain.CharacteristicAverageConsumption: value,
	})
	return s.submit(ctx, FlowConsumption, baseSiteID, cartID, update)
}

func (s *CartService) UpdateServiceProvider(ctx context.Context, baseSiteID, cartID string, entryNumber int, userID string, details domain.ServiceProviderDetails) (*models.CartEntry, error) {
	update := BuildServiceProviderUpdate(strconv.Itoa(entryNumber), RelatedPartyID(userID), details)
	return s.submit(ctx, FlowPurchaseReason, baseSiteID, cartID, update)
}

// ApplyPremiseDetails validates the premise and only then stores its
// technical id on the entry. When validation finds no usable resource a
// localized error is added to sink and the cart is left alone.
func (s *CartService) ApplyPremiseDetails(ctx context.Context, baseSiteID, cartID string, entryNumber int, userID string, premise domain.PremiseDetail, sink MessageSink) (*models.CartEntry, error) {
	entry, err := s.GetEntry(ctx, cartID, entryNumber)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(premise.TechnicalDetails.ID) == "" {
		return nil, fmt.Errorf("technical id must not be empty: %w", ErrValidation)
	}

	resources, err := s.Premises.ValidatePremise(ctx, premise)
	if err != nil {
		s.Metrics.PremiseCheck(metrics.OutcomeError)
		return nil, fmt.Errorf("validate premise: %w", err)
	}
	if !resources.Usable() {
		s.Metrics.PremiseCheck(metrics.OutcomeRejected)
		if sink != nil {
			sink.Add(domain.Message{
				Text: s.Translator.Translate(i18n.PremiseValidationFail, nil),
				Type: domain.MessageError,
			})
		}
		return nil, ErrPremiseValidationFailed
	}
	s.Metrics.PremiseCheck(metrics.OutcomeOK)

	changes := map[string]string{domain.CharacteristicTechnicalID: premise.TechnicalDetails.ID}
	if avg := characteristic(entry, domain.CharacteristicAverageConsumption); avg != "" {
		changes[domain.CharacteristicAverageConsumption] = avg
	}
	update := BuildUpdate(strconv.Itoa(entryNumber), RelatedPartyID(userID), changes)
	return s.submit(ctx, FlowPremise, baseSiteID, cartID, update)
}

type PurchaseReasonInput struct {
	Reason          domain.PurchaseReason `json:"reason"`
	ServiceProvider string                `json:"serviceProvider"`
	ContractDate    string                `json:"contractDate"`
}

// fill runs the edit half of the form. The form is left in Editing. An
// empty provider keeps the one the form was seeded with. A rejected contract
// date adds a localized message naming the earliest allowed date.
func (s *CartService) fill(form *PurchaseReasonForm, in PurchaseReasonInput, sink MessageSink) error {
	form.ToggleEdit()
	if in.Reason != "" {
		if err := form.SelectReason(in.Reason); err != nil {
			return err
		}
	}
	if strings.TrimSpace(in.ServiceProvider) != "" {
		if err := form.SetServiceProvider(in.ServiceProvider); err != nil {
			return err
		}
	}
	if err := form.SetContractDate(in.ContractDate); err != nil {
		if sink != nil && s.Translator != nil {
			sink.Add(domain.Message{
				Text: s.Translator.Translate(i18n.PurchaseReasonDate, map[string]string{
					"minDate": form.MinContractDate().Format(contractDateInput),
				}),
				Type: domain.MessageError,
			})
		}
		return err
	}
	return nil
}

// SavePurchaseReason runs the purchase-reason form for an existing entry and
// stores the outcome on it.
func (s *CartService) SavePurchaseReason(ctx context.Context, baseSiteID, cartID string, entryNumber int, userID string, in PurchaseReasonInput, sink MessageSink) (*models.CartEntry, error) {
	entry, err := s.GetEntry(ctx, cartID, entryNumber)
	if err != nil {
		return nil, err
	}

	current := NewEntryView(*entry, "")
	form := NewEntryPurchaseReasonForm(current.ProcessType, current.ServiceProvider, s.Now)
	if err := s.fill(form, in, sink); err != nil {
		s.Metrics.CartUpdate(FlowPurchaseReason, metrics.OutcomeRejected)
		return nil, err
	}
	out, err := form.Save()
	if err != nil {
		return nil, err
	}
	if out.Details == nil {
		return nil, fmt.Errorf("purchase reason for entry %d produced no details", entryNumber)
	}
	return s.UpdateServiceProvider(ctx, baseSiteID, cartID, entryNumber, userID, *out.Details)
}

// SaveChecklistPurchaseReason is the same step before any cart entry exists:
// the values are handed to the checklist instead.
func (s *CartService) SaveChecklistPurchaseReason(ctx context.Context, owner string, in PurchaseReasonInput, sink MessageSink) ([]domain.ChecklistActionDetail, error) {
	form := NewPurchaseReasonForm("", s.Now)
	if err := s.fill(form, in, sink); err != nil {
		return nil, err
	}
	out, err := form.Save()
	if err != nil {
		return nil, err
	}
	for _, action := range out.Checklist {
		s.Notifier.ChecklistAction(ctx, owner, action)
	}
	return out.Checklist, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
