package types

import (
	"encoding/json"
	"strings"
)

// StringList accepts either a JSON array of strings or a single delimited
// string ("Go, SQL; Docker"), the way spreadsheet cells arrive.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, s := range arr {
			if t := strings.TrimSpace(s); t != "" {
				out = append(out, t)
			}
		}
		*l = out
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SplitList(s)
	return nil
}

// SplitList splits on commas and semicolons, dropping empties.
func SplitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(strings.ReplaceAll(s, ";", ","), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ResourceUpsert is the body for both create (required fields enforced by the
// handler) and partial update of a resource.
type ResourceUpsert struct {
	ResourceID         string      `json:"resource_id"`
	Name               *string     `json:"name"`
	Role               *string     `json:"role"`
	Skills             *StringList `json:"skills"`
	ProficiencyLevel   *string     `json:"proficiency_level"`
	CapacityHrsPerWeek *int        `json:"capacity_hrs_per_week"`
	CurrentCommitments *string     `json:"current_commitments"`
	AvailabilityDate   *string     `json:"availability_date"`
	LocationTimezone   *string     `json:"location_timezone"`
	EmploymentType     *string     `json:"employment_type"`
	CostPerHourINR     *float64    `json:"cost_per_hour_inr"`
}

type ProjectUpsert struct {
	ProjectID      string      `json:"project_id"`
	Name           *string     `json:"name"`
	Summary        *string     `json:"summary"`
	RequiredSkills *StringList `json:"required_skills"`
	StaffingMix    *string     `json:"staffing_mix"`
	StartDate      *string     `json:"start_date"`
	EndDate        *string     `json:"end_date"`
	Milestones     *string     `json:"milestones"`
	RequiredRoles  *string     `json:"required_roles"`
	Priority       *string     `json:"priority"`
	BudgetINR      *int        `json:"budget_inr"`
	Compliance     *string     `json:"compliance"`
}

// ResourceView is the compact resource shape the dashboard tables consume.
type ResourceView struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	Skills           []string `json:"skills"`
	Proficiency      *string  `json:"proficiency"`
	Capacity         *int     `json:"capacity"`
	Commitments      *string  `json:"commitments"`
	AvailabilityDate *string  `json:"availability_date"`
	Timezone         *string  `json:"timezone"`
	Type             *string  `json:"type"`
	CostHour         *float64 `json:"cost_hour"`
}

// ProjectView is the camelCase project shape the SPA's project table reads.
// requiredSkills intentionally carries required_roles and geoEligibility is
// always null; both are part of the existing frontend contract.
type ProjectView struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ProblemStatement *string `json:"problemStatement"`
	StartDate        *string `json:"startDate"`
	EndDate          *string `json:"endDate"`
	Milestones       *string `json:"milestones"`
	Priority         *string `json:"priority"`
	Budget           *int    `json:"budget"`
	RequiredSkills   *string `json:"requiredSkills"`
	Compliance       *string `json:"compliance"`
	GeoEligibility   *string `json:"geoEligibility"`
}

// ProjectRecord is the snake_case project shape used by the dataset endpoint
// and the allocation prompt.
type ProjectRecord struct {
	ProjectID      string   `json:"project_id"`
	Name           string   `json:"name"`
	Summary        *string  `json:"summary"`
	RequiredSkills []string `json:"required_skills"`
	StaffingMix    *string  `json:"staffing_mix"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	Milestones     *string  `json:"milestones"`
	RequiredRoles  *string  `json:"required_roles"`
	Priority       *string  `json:"priority"`
	BudgetINR      *int     `json:"budget_inr"`
	Compliance     *string  `json:"compliance"`
}

type Dataset struct {
	Resources []ResourceView  `json:"resources"`
	Projects  []ProjectRecord `json:"projects"`
}

type ListResponse struct {
	Total int64         `json:"total"`
	Items []interface{} `json:"items"`
}

type RowError struct {
	RowIndex int    `json:"row_index"`
	Error    string `json:"error"`
}

type IngestResult struct {
	Ok           bool              `json:"ok"`
	RowsIngested int               `json:"rows_ingested"`
	RowsFailed   int               `json:"rows_failed"`
	Note         string            `json:"note,omitempty"`
	ColumnsSeen  []string          `json:"columns_seen"`
	ResolvedMap  map[string]string `json:"resolved_map,omitempty"`
	SampleErrors []RowError        `json:"sample_errors,omitempty"`
}

type FileDescriptor struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Name           string `json:"name"`
	Size           int64  `json:"size"`
	ContentType    string `json:"content_type"`
	CreatedAt      string `json:"created_at"`
}
