// Package model provides data models for the inventory dashboard tool.
package model

// RuleDefinition defines display metadata for one alert rule, loaded from
// alert-rules.yaml. Trigger conditions and severities are fixed in code; the
// definitions only control how alerts are titled and described.
type RuleDefinition struct {
	Kind        AlertKind `yaml:"kind" json:"kind"`                 // 规则标识
	DisplayName string    `yaml:"display_name" json:"display_name"` // 告警标题
	Description string    `yaml:"description,omitempty" json:"description,omitempty"` // 规则说明
}

// RulesConfig represents the root structure of the alert-rules.yaml file.
type RulesConfig struct {
	Rules []*RuleDefinition `yaml:"rules" json:"rules"` // 规则定义列表
}
