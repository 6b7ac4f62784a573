package plugin

import (
	"context"
	"encoding/json"
	"fmt"
)

// Service names the plugin registers with its host.
const (
	ServicePlanRoute  = "plan_route"
	ServiceClearCache = "clear_cache"
)

// clearCacheCall is the clear_cache service input.
type clearCacheCall struct {
	CacheType string `json:"cache_type,omitempty"`
}

// HandleCall dispatches a raw service invocation from the host. The payload
// is schema-validated before any work happens. plan_route returns the
// marshaled PlanResult; clear_cache returns nil.
func (e *Entry) HandleCall(ctx context.Context, service string, payload json.RawMessage) (json.RawMessage, error) {
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	switch service {
	case ServicePlanRoute:
		if err := validatePayload(planRouteValidator, payload); err != nil {
			return nil, err
		}

		var req PlanRouteRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("malformed service payload: %w", err)
		}

		result, err := e.PlanRoute(ctx, req)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)

	case ServiceClearCache:
		if err := validatePayload(clearCacheValidator, payload); err != nil {
			return nil, err
		}

		call := clearCacheCall{CacheType: ScopeAll}
		if err := json.Unmarshal(payload, &call); err != nil {
			return nil, fmt.Errorf("malformed service payload: %w", err)
		}
		if call.CacheType == "" {
			call.CacheType = ScopeAll
		}
		return nil, e.ClearCache(call.CacheType)

	default:
		return nil, fmt.Errorf("unknown service %q", service)
	}
}
