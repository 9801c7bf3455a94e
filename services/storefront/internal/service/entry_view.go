package service

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
)

// EntryView is a cart entry with the values the journey steps read from it.
type EntryView struct {
	ID                     uuid.UUID                `json:"id"`
	EntryNumber            int                      `json:"entryNumber"`
	ProductCode            string                   `json:"productCode"`
	ProductSpecificationID string                   `json:"productSpecificationId,omitempty"`
	Quantity               uint                     `json:"quantity"`
	ProcessType            domain.ProcessType       `json:"processType"`
	ContractStartDate      string                   `json:"contractStartDate,omitempty"`
	PurchaseReason         domain.PurchaseReason    `json:"purchaseReason"`
	ServiceProvider        string                   `json:"serviceProvider,omitempty"`
	TechnicalID            string                   `json:"technicalId,omitempty"`
	AverageConsumption     string                   `json:"averageConsumption,omitempty"`
	ConsumptionUnit        string                   `json:"consumptionUnit,omitempty"`
	InstallationAddressID  string                   `json:"installationAddressId,omitempty"`
	AppointmentID          string                   `json:"appointmentId,omitempty"`
	Renewal                bool                     `json:"renewal"`
	LogicalResources       []domain.LogicalResource `json:"logicalResources,omitempty"`
	Characteristics        []domain.Characteristic  `json:"characteristics"`
}

// NewEntryView derives the view of entry. unitAndFrequency labels the
// average consumption, and may be empty.
func NewEntryView(entry models.CartEntry, unitAndFrequency string) EntryView {
	pt := domain.ProcessType(entry.ProcessType)
	view := EntryView{
		ID:                     entry.ID,
		EntryNumber:            entry.EntryNumber,
		ProductCode:            entry.ProductCode,
		ProductSpecificationID: entry.ProductSpecificationID,
		Quantity:               entry.Quantity,
		ProcessType:            pt,
		ContractStartDate:      entry.ContractStartDate,
		PurchaseReason:         domain.ReasonForProcessType(pt),
		TechnicalID:            characteristic(&entry, domain.CharacteristicTechnicalID),
		AverageConsumption:     characteristic(&entry, domain.CharacteristicAverageConsumption),
		AppointmentID:          entry.AppointmentID,
		Renewal:                pt == domain.ProcessRenewal,
		Characteristics:        []domain.Characteristic{},
	}
	if view.AverageConsumption != "" {
		view.ConsumptionUnit = unitAndFrequency
	}

	for _, ch := range entry.Characteristics {
		view.Characteristics = append(view.Characteristics, domain.Characteristic{Name: ch.Name, Value: ch.Value})
		if ch.Name == domain.CharacteristicMSISDN && ch.Value != "" {
			view.LogicalResources = append(view.LogicalResources, domain.LogicalResource{Type: domain.CharacteristicMSISDN, Value: ch.Value})
		}
	}
	for _, rp := range entry.RelatedParties {
		if rp.Role == string(domain.RoleServiceProvider) {
			view.ServiceProvider = rp.PartyID
		}
	}
	for _, p := range entry.Places {
		if p.Role == string(domain.PlaceInstallationAddress) {
			view.InstallationAddressID = p.PlaceID
		}
	}
	return view
}

func characteristic(entry *models.CartEntry, name string) string {
	for _, ch := range entry.Characteristics {
		if ch.Name == name {
			return ch.Value
		}
	}
	return ""
}
