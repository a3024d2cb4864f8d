package client

import (
	"encoding/json"

	"github.com/mesh05/Techolution-PRM/prm/types"
	"github.com/mesh05/Techolution-PRM/prm/utils/jsonutils"
)

// Allocation is one recommended assignment of a named resource to a role.
type Allocation struct {
	Name            string           `json:"Name"`
	Skills          types.StringList `json:"Skills"`
	Proficiency     string           `json:"Proficiency"`
	MatchPercentage float64          `json:"MatchPercentage"`
	Reasoning       string           `json:"Reasoning"`
}

// AllocationResult is the structured payload embedded in an assistant reply.
type AllocationResult struct {
	Role        string       `json:"Role"`
	Allocations []Allocation `json:"Allocations"`
	TotalHours  float64      `json:"TotalHours"`
	Plan        string       `json:"Plan"`
}

// ExtractStructuredPayload re-exports the defensive extraction so callers of
// this package don't reach into utils. Pure, never panics.
func ExtractStructuredPayload(text string) (map[string]interface{}, bool) {
	return jsonutils.ExtractStructuredPayload(text)
}

// ParseAllocationResult accepts only payloads whose Allocations field is an
// array; anything else reports no payload and the caller shows raw text.
func ParseAllocationResult(text string) (*AllocationResult, bool) {
	payload, ok := jsonutils.ExtractStructuredPayload(text)
	if !ok {
		return nil, false
	}
	if _, isArray := payload["Allocations"].([]interface{}); !isArray {
		return nil, false
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}
	var result AllocationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}
