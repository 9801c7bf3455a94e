package service

import "github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"

// RelatedPartyID returns the id carried on cart updates: the signed-in
// user, or the anonymous marker.
func RelatedPartyID(userID string) string {
	if userID == "" {
		return domain.AnonymousUserID
	}
	return userID
}

// BuildUpdate scopes a set of changed characteristics to one entry. The map
// is copied so later changes by the caller do not leak into the patch.
func BuildUpdate(entryID, relatedPartyID string, changes map[string]string) domain.CartEntryUpdate {
	chars := make(map[string]string, len(changes))
	for name, value := range changes {
		chars[name] = value
	}
	return domain.CartEntryUpdate{
		EntryID:         entryID,
		RelatedPartyID:  relatedPartyID,
		Characteristics: chars,
	}
}

// BuildServiceProviderUpdate turns the purchase-reason outcome into an entry
// patch. A provider switch names the current provider as a nested related
// party; anything else is a plain acquisition.
func BuildServiceProviderUpdate(entryID, relatedPartyID string, details domain.ServiceProviderDetails) domain.CartEntryUpdate {
	update := domain.CartEntryUpdate{
		EntryID:           entryID,
		RelatedPartyID:    relatedPartyID,
		ProcessType:       domain.ProcessAcquisition,
		ContractStartDate: details.ContractDate,
	}
	if details.ProcessType == domain.ProcessSwitchServiceProvider {
		update.ProcessType = domain.ProcessSwitchServiceProvider
		update.ServiceProviders = []domain.RelatedParty{{
			ID:   details.ServiceProviderName,
			Role: domain.RoleServiceProvider,
		}}
	}
	return update
}
