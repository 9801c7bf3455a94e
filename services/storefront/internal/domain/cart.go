package domain

import "sort"

const (
	AnonymousUserID = "anonymous"

	CharacteristicTechnicalID        = "technical_id"
	CharacteristicAverageConsumption = "average_consumption_estimation"
	CharacteristicMSISDN             = "msisdn"
)

type ProcessType string

const (
	ProcessAcquisition           ProcessType = "ACQUISITION"
	ProcessRenewal               ProcessType = "RENEWAL"
	ProcessSwitchServiceProvider ProcessType = "SWITCH_SERVICE_PROVIDER"
)

func (p ProcessType) Valid() bool {
	switch p {
	case ProcessAcquisition, ProcessRenewal, ProcessSwitchServiceProvider:
		return true
	}
	return false
}

type RelatedPartyRole string

const (
	RoleServiceProvider RelatedPartyRole = "SERVICE_PROVIDER"
)

type PlaceRole string

const (
	PlaceInstallationAddress PlaceRole = "INSTALLATION_ADDRESS"
)

type PurchaseReason string

const (
	ReasonMove           PurchaseReason = "move"
	ReasonSwitchProvider PurchaseReason = "switch_provider"
)

func (r PurchaseReason) Valid() bool {
	return r == ReasonMove || r == ReasonSwitchProvider
}

// ReasonForProcessType maps an entry's process type back to the reason the
// customer picked.
func ReasonForProcessType(pt ProcessType) PurchaseReason {
	if pt == ProcessSwitchServiceProvider {
		return ReasonSwitchProvider
	}
	return ReasonMove
}

type Characteristic struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type RelatedParty struct {
	ID   string           `json:"id"`
	Role RelatedPartyRole `json:"role,omitempty"`
}

type ProcessTypeRef struct {
	ID ProcessType `json:"id"`
}

type ProductPatch struct {
	Characteristic []Characteristic `json:"characteristic,omitempty"`
	RelatedParty   []RelatedParty   `json:"relatedParty,omitempty"`
}

type CartItemPatch struct {
	ID                string          `json:"id"`
	ProcessType       *ProcessTypeRef `json:"processType,omitempty"`
	ContractStartDate string          `json:"contractStartDate,omitempty"`
	Product           *ProductPatch   `json:"product,omitempty"`
}

// ShoppingCart is the partial cart-update request understood by the cart
// service. Only what is present gets applied.
type ShoppingCart struct {
	ID           string          `json:"id,omitempty"`
	BaseSiteID   string          `json:"baseSiteId"`
	CartItem     []CartItemPatch `json:"cartItem"`
	RelatedParty []RelatedParty  `json:"relatedParty"`
}

// CartEntryUpdate is a patch scoped to one cart entry.
type CartEntryUpdate struct {
	EntryID           string
	RelatedPartyID    string
	Characteristics   map[string]string
	ProcessType       ProcessType
	ContractStartDate string
	ServiceProviders  []RelatedParty
}

// ShoppingCart renders the update as a cart request. Characteristics are
// sorted by name so equal updates serialise identically.
func (u CartEntryUpdate) ShoppingCart(baseSiteID, cartID string) ShoppingCart {
	item := CartItemPatch{ID: u.EntryID, ContractStartDate: u.ContractStartDate}
	if u.ProcessType != "" {
		item.ProcessType = &ProcessTypeRef{ID: u.ProcessType}
	}

	if len(u.Characteristics) > 0 || len(u.ServiceProviders) > 0 {
		product := &ProductPatch{}
		if len(u.Characteristics) > 0 {
			names := make([]string, 0, len(u.Characteristics))
			for name := range u.Characteristics {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				product.Characteristic = append(product.Characteristic, Characteristic{Name: name, Value: u.Characteristics[name]})
			}
		}
		if len(u.ServiceProviders) > 0 {
			product.RelatedParty = append([]RelatedParty(nil), u.ServiceProviders...)
		}
		item.Product = product
	}

	return ShoppingCart{
		ID:           cartID,
		BaseSiteID:   baseSiteID,
		CartItem:     []CartItemPatch{item},
		RelatedParty: []RelatedParty{{ID: u.RelatedPartyID}},
	}
}

// ServiceProviderDetails is what the purchase-reason form hands over when
// it is saved for an existing cart entry.
type ServiceProviderDetails struct {
	ContractDate        string      `json:"contractDate,omitempty"`
	ProcessType         ProcessType `json:"processType"`
	ServiceProviderName string      `json:"serviceProviderName,omitempty"`
}

type LogicalResource struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
