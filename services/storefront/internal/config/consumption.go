package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
)

// DefaultConsumption is used when no configuration file is given.
func DefaultConsumption() domain.ConsumptionConfig {
	return domain.ConsumptionConfig{
		DefaultValues: []domain.ConsumptionValue{
			{ProductSpecification: "electricity", UsageUnit: "kwh", Value: "1000"},
			{ProductSpecification: "gas", UsageUnit: "cubic_meter", Value: "1200"},
		},
		Default: "1000",
	}
}

type consumptionFile struct {
	Consumption domain.ConsumptionConfig `yaml:"consumption"`
}

// LoadConsumption reads the estimation table from a YAML file. An empty
// path yields DefaultConsumption.
func LoadConsumption(path string) (domain.ConsumptionConfig, error) {
	if path == "" {
		return DefaultConsumption(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ConsumptionConfig{}, fmt.Errorf("read consumption config: %w", err)
	}
	return ParseConsumption(raw)
}

func ParseConsumption(raw []byte) (domain.ConsumptionConfig, error) {
	var f consumptionFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return domain.ConsumptionConfig{}, fmt.Errorf("parse consumption config: %w", err)
	}
	if err := validateConsumption(f.Consumption); err != nil {
		return domain.ConsumptionConfig{}, err
	}
	return f.Consumption, nil
}

func validateConsumption(c domain.ConsumptionConfig) error {
	var errs []error
	seen := make(map[string]struct{}, len(c.DefaultValues))
	for i, v := range c.DefaultValues {
		if v.ProductSpecification == "" || v.UsageUnit == "" {
			errs = append(errs, fmt.Errorf("defaultValues[%d]: productSpecification and usageUnit are required", i))
		}
		if _, ok := domain.CanonicalConsumption(v.Value); !ok {
			errs = append(errs, fmt.Errorf("defaultValues[%d]: value %q is not a positive integer", i, v.Value))
		}
		key := domain.NewConsumptionKey(v.ProductSpecification, v.UsageUnit).String()
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("defaultValues[%d]: duplicate row for %s", i, key))
		}
		seen[key] = struct{}{}
	}
	if c.Default != "" {
		if _, ok := domain.CanonicalConsumption(c.Default); !ok {
			errs = append(errs, fmt.Errorf("default %q is not a positive integer", c.Default))
		}
	}
	for i, comp := range c.Components {
		if comp.ProductSpecification.ID == "" || comp.UsageUnit.ID == "" {
			errs = append(errs, fmt.Errorf("components[%d]: productSpecification.id and usageUnit.id are required", i))
		}
	}
	return errors.Join(errs...)
}
