// Package config provides configuration management for the inventory dashboard tool.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"inventory-dashboard/internal/model"
)

// DefaultRuleDefs returns the compiled-in rule display definitions, used when
// no alert-rules.yaml is supplied.
func DefaultRuleDefs() []*model.RuleDefinition {
	return []*model.RuleDefinition{
		{Kind: model.AlertKindStockOut, DisplayName: "商品缺货", Description: "商品库存为 0"},
		{Kind: model.AlertKindStockLow, DisplayName: "库存不足", Description: "商品库存低于阈值"},
		{Kind: model.AlertKindHighInterest, DisplayName: "高关注度", Description: "商品查询次数高于阈值"},
		{Kind: model.AlertKindHighPrice, DisplayName: "价格偏高", Description: "商品价格高于阈值"},
		{Kind: model.AlertKindCategoryRisk, DisplayName: "分类缺货风险", Description: "分类缺货占比高于阈值"},
	}
}

// knownKinds is the set of alert kinds that rule definitions may reference.
var knownKinds = map[model.AlertKind]bool{
	model.AlertKindStockOut:     true,
	model.AlertKindStockLow:     true,
	model.AlertKindHighInterest: true,
	model.AlertKindHighPrice:    true,
	model.AlertKindCategoryRisk: true,
}

// LoadRuleDefs reads rule display definitions from the specified YAML file.
// An empty path returns the compiled-in defaults. Definitions missing from
// the file fall back to their defaults, so partial files are allowed.
func LoadRuleDefs(rulesPath string) ([]*model.RuleDefinition, error) {
	defaults := DefaultRuleDefs()
	if rulesPath == "" {
		return defaults, nil
	}

	// Check if file exists
	if _, err := os.Stat(rulesPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("rules file not found: %s", rulesPath)
	}

	// Read file content
	data, err := os.ReadFile(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	// Parse YAML
	var cfg model.RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("no rules defined in file: %s", rulesPath)
	}

	// Validate each rule definition
	loaded := make(map[model.AlertKind]*model.RuleDefinition)
	for i, r := range cfg.Rules {
		if r.Kind == "" {
			return nil, fmt.Errorf("rule at index %d has no kind", i)
		}
		if !knownKinds[r.Kind] {
			return nil, fmt.Errorf("rule %q is not a known alert kind", r.Kind)
		}
		if r.DisplayName == "" {
			return nil, fmt.Errorf("rule %q has no display_name", r.Kind)
		}
		if _, dup := loaded[r.Kind]; dup {
			return nil, fmt.Errorf("rule %q is defined more than once", r.Kind)
		}
		loaded[r.Kind] = r
	}

	// Merge over defaults, keeping the default ordering
	merged := make([]*model.RuleDefinition, 0, len(defaults))
	for _, d := range defaults {
		if r, ok := loaded[d.Kind]; ok {
			merged = append(merged, r)
		} else {
			merged = append(merged, d)
		}
	}

	return merged, nil
}
