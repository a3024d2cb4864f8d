package ingest

// Column alias maps for the two ingest endpoints. First alias wins.

var ResourceMapping = map[string][]string{
	"resource_id":           {"resource_id", "id"},
	"name":                  {"name", "full_name"},
	"role":                  {"role", "designation"},
	"skills":                {"skills", "skillset"},
	"proficiency_level":     {"proficiency_level", "proficiency", "skill_level"},
	"capacity_hrs_per_week": {"capacity_hrs_per_week", "capacity", "weekly_capacity"},
	"current_commitments":   {"current_commitments", "commitments"},
	"availability_date":     {"availability_date", "available_from"},
	"location_timezone":     {"location_timezone", "location_time_zone", "timezone", "location"},
	"employment_type":       {"employment_type", "employment", "emp_type"},
	"cost_per_hour_inr":     {"cost_per_hour_inr", "cost_per_hour", "rate_inr", "hourly_rate_inr"},
}

var ResourceRequired = []string{"resource_id", "name", "role", "skills"}

var ProjectMapping = map[string][]string{
	"project_id":      {"project_id", "id", "p_id"},
	"name":            {"project_name", "name", "title"},
	"summary":         {"summary", "problem_statement", "description"},
	"required_skills": {"required_skills", "skills"},
	"staffing_mix":    {"staffing_mix", "target_staffing_mix"},
	"start_date":      {"start_date", "kickoff", "start"},
	"end_date":        {"end_date", "finish", "end"},
	"milestones":      {"milestones", "phases", "plan"},
	"required_roles":  {"required_roles", "roles"},
	"priority":        {"priority", "prio"},
	"budget_inr":      {"budget_inr", "budget", "cost_inr"},
	"compliance":      {"compliance", "constraints"},
}

var ProjectRequired = []string{"project_id", "name"}
