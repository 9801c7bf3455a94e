package domain

import (
	"strconv"
	"strings"
)

const (
	Separator        = "_"
	ConsumptionParam = "consumption"
)

// ConsumptionValue is one row of the configured default table.
type ConsumptionValue struct {
	ProductSpecification string `yaml:"productSpecification" json:"productSpecification"`
	UsageUnit            string `yaml:"usageUnit"            json:"usageUnit"`
	Value                string `yaml:"value"                json:"value"`
}

// ConsumptionKey addresses a persisted estimate. Reads and writes must go
// through String so both sides agree on field order and separator.
type ConsumptionKey struct {
	ProductSpecificationID string
	UsageUnitID            string
}

func NewConsumptionKey(productSpecificationID, usageUnitID string) ConsumptionKey {
	return ConsumptionKey{ProductSpecificationID: productSpecificationID, UsageUnitID: usageUnitID}
}

func (k ConsumptionKey) String() string {
	return ConsumptionParam + Separator + k.ProductSpecificationID + Separator + k.UsageUnitID
}

// ConsumptionSource tells which resolution step produced a value.
type ConsumptionSource string

const (
	SourceQuery   ConsumptionSource = "query"
	SourceCart    ConsumptionSource = "cart"
	SourceStored  ConsumptionSource = "stored"
	SourceTable   ConsumptionSource = "table"
	SourceDefault ConsumptionSource = "default"
	SourceNone    ConsumptionSource = "none"
)

type ConsumptionResolution struct {
	Value  string            `json:"value"`
	Source ConsumptionSource `json:"source"`
}

// ConsumptionChange is sent to observers after an override is saved.
type ConsumptionChange struct {
	Consumption          string `json:"consumption"`
	ProductSpecification string `json:"productSpecification"`
}

type Ref struct {
	ID   string `yaml:"id"   json:"id"`
	Name string `yaml:"name" json:"name"`
}

type Media struct {
	Code string `yaml:"code" json:"code"`
	URL  string `yaml:"url"  json:"url"`
}

type SliderOption struct {
	UID   string `yaml:"uid"   json:"uid"`
	Name  string `yaml:"name"  json:"name"`
	Value string `yaml:"value" json:"value"`
	Media Media  `yaml:"media" json:"media"`
}

// ConsumptionComponent describes one search-by-consumption widget.
type ConsumptionComponent struct {
	UID                  string         `yaml:"uid"                  json:"uid"`
	ProductSpecification Ref            `yaml:"productSpecification" json:"productSpecification"`
	UsageUnit            Ref            `yaml:"usageUnit"            json:"usageUnit"`
	BillingFrequency     string         `yaml:"billingFrequency"     json:"billingFrequency"`
	SliderOptions        []SliderOption `yaml:"sliderOptions"        json:"sliderOptions"`
}

// ConsumptionConfig is the static estimation setup, read once at start.
type ConsumptionConfig struct {
	DefaultValues []ConsumptionValue     `yaml:"defaultValues"`
	Default       string                 `yaml:"default"`
	Components    []ConsumptionComponent `yaml:"components"`
}

// DefaultFor finds the table row for a product specification and usage unit.
func (c ConsumptionConfig) DefaultFor(productSpecificationID, usageUnitID string) (ConsumptionValue, bool) {
	for _, v := range c.DefaultValues {
		if v.ProductSpecification == productSpecificationID && v.UsageUnit == usageUnitID {
			return v, true
		}
	}
	return ConsumptionValue{}, false
}

// CanonicalConsumption reports whether v is a whole number above zero and
// returns it without padding or surrounding space.
func CanonicalConsumption(v string) (string, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil || n == 0 {
		return "", false
	}
	return strconv.FormatUint(n, 10), true
}
