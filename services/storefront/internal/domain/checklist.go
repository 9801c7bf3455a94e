package domain

type ChecklistActionType string

const (
	ChecklistEstimatedConsumption ChecklistActionType = "ESTIMATED_CONSUMPTION"
	ChecklistContractStartDate    ChecklistActionType = "CONTRACT_START_DATE"
	ChecklistServiceProvider      ChecklistActionType = "SERVICE_PROVIDER"
	ChecklistInstallationAddress  ChecklistActionType = "INSTALLATION_ADDRESS"
)

type ChecklistAction string

const (
	ChecklistActionRemove ChecklistAction = "REMOVE"
)

// ChecklistActionDetail carries a value collected by a journey step before
// a cart entry exists.
type ChecklistActionDetail struct {
	Type   ChecklistActionType `json:"type"`
	Value  string              `json:"value,omitempty"`
	Action ChecklistAction     `json:"action,omitempty"`
}

type MessageType string

const (
	MessageError   MessageType = "MSG_TYPE_ERROR"
	MessageInfo    MessageType = "MSG_TYPE_INFO"
	MessageWarning MessageType = "MSG_TYPE_WARNING"
)

type Message struct {
	Text string      `json:"text"`
	Type MessageType `json:"type"`
}
