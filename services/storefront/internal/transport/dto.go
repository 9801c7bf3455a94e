package transport

import "github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"

type ConsumptionValueRequest struct {
	Value string `json:"value"`
}

type AddEntryRequest struct {
	ProductCode            string            `json:"productCode"`
	ProductSpecificationID string            `json:"productSpecificationId"`
	Quantity               uint              `json:"quantity"`
	Characteristics        map[string]string `json:"characteristics"`
	InstallationAddressID  string            `json:"installationAddressId"`
	AppointmentID          string            `json:"appointmentId"`
}

type ErrorResponse struct {
	Error    string           `json:"error"`
	Messages []domain.Message `json:"messages,omitempty"`
}
