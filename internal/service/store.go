// Package service provides business logic services for the inventory dashboard tool.
package service

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"inventory-dashboard/internal/model"
)

// AlertStore holds the current alert batch and its resolution bookkeeping.
//
// On every data refresh the alert collection is replaced wholesale: the store
// re-runs the evaluator with the resolved-id set extracted from its existing
// alerts, so a resolution survives as long as the firing condition persists
// (the same id is regenerated). When the condition no longer holds the alert
// vanishes entirely, resolved or not. The mutex keeps Resolve atomic with
// respect to Refresh so a resolution applied to a still-present id is never
// lost.
type AlertStore struct {
	mu        sync.Mutex
	evaluator *Evaluator
	alerts    []*model.Alert
	logger    zerolog.Logger
}

// NewAlertStore creates a new AlertStore backed by the given evaluator.
func NewAlertStore(evaluator *Evaluator, logger zerolog.Logger) *AlertStore {
	return &AlertStore{
		evaluator: evaluator,
		alerts:    make([]*model.Alert, 0),
		logger:    logger.With().Str("component", "alert-store").Logger(),
	}
}

// Refresh regenerates the alert collection from a new record batch, carrying
// resolution state over by alert id.
func (s *AlertStore) Refresh(records []model.InventoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolvedIDs := make(map[string]bool)
	for _, alert := range s.alerts {
		if alert != nil && alert.Resolved {
			resolvedIDs[alert.ID] = true
		}
	}

	s.alerts = s.evaluator.Evaluate(records, resolvedIDs)

	s.logger.Info().
		Int("alerts", len(s.alerts)).
		Int("carried_resolved", len(resolvedIDs)).
		Msg("alert collection regenerated")
}

// Resolve marks the alert with the given id as resolved. Resolving an id that
// is not present is a no-op, not an error. Returns whether an alert matched.
func (s *AlertStore) Resolve(alertID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, alert := range s.alerts {
		if alert != nil && alert.ID == alertID {
			alert.Resolved = true
			s.logger.Debug().Str("alert_id", alertID).Msg("alert resolved")
			return true
		}
	}

	s.logger.Debug().Str("alert_id", alertID).Msg("resolve ignored, no such alert")
	return false
}

// Active returns the unresolved alerts in generation order, optionally
// narrowed by exact kind and/or severity match. Zero values disable a filter.
func (s *AlertStore) Active(kind model.AlertKind, severity model.AlertSeverity) []*model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]*model.Alert, 0)
	for _, alert := range s.alerts {
		if alert == nil || alert.Resolved {
			continue
		}
		if kind != "" && alert.Kind != kind {
			continue
		}
		if severity != "" && alert.Severity != severity {
			continue
		}
		active = append(active, alert)
	}
	return active
}

// Resolved returns all resolved alerts ordered by CreatedAt descending.
// Truncating for display is the consumer's concern; the full set is returned.
func (s *AlertStore) Resolved() []*model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := make([]*model.Alert, 0)
	for _, alert := range s.alerts {
		if alert != nil && alert.Resolved {
			resolved = append(resolved, alert)
		}
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].CreatedAt.After(resolved[j].CreatedAt)
	})
	return resolved
}

// All returns the full alert collection in generation order, resolved
// alerts included.
func (s *AlertStore) All() []*model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*model.Alert, len(s.alerts))
	copy(all, s.alerts)
	return all
}

// Summary returns aggregated statistics over the current alert collection.
func (s *AlertStore) Summary() *model.AlertSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.NewAlertSummary(s.alerts)
}
