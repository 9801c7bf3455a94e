package domain

type InstallationAddress struct {
	StreetName     string `json:"streetName"`
	BuildingNumber string `json:"buildingNumber"`
	PostalCode     string `json:"postalCode"`
	City           string `json:"city"`
	Country        string `json:"country"`
}

type TechnicalDetails struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type PremiseDetail struct {
	InstallationAddress *InstallationAddress `json:"installationAddress,omitempty"`
	TechnicalDetails    TechnicalDetails     `json:"technicalDetails"`
}

type TechnicalResource struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type TechnicalResources struct {
	TechnicalResources []TechnicalResource `json:"technicalResources"`
}

// Usable reports whether validation found at least one real resource.
func (r *TechnicalResources) Usable() bool {
	if r == nil {
		return false
	}
	for _, res := range r.TechnicalResources {
		if res.ID != "" {
			return true
		}
	}
	return false
}
