package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/ingest"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/dao"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"
	"github.com/mesh05/Techolution-PRM/prm/types"
)

type DataController struct {
	resourceDAO *dao.ResourceDAO
	projectDAO  *dao.ProjectDAO
}

func NewDataController(resourceDAO *dao.ResourceDAO, projectDAO *dao.ProjectDAO) *DataController {
	return &DataController{resourceDAO: resourceDAO, projectDAO: projectDAO}
}

// ---- view mapping ----

func fmtDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func resourceView(r *models.Resource) types.ResourceView {
	v := types.ResourceView{
		ID:               r.ResourceID,
		Name:             r.Name,
		Role:             r.Role,
		Skills:           r.Skills,
		Capacity:         r.CapacityHrsPerWeek,
		Commitments:      r.CurrentCommitments,
		AvailabilityDate: fmtDate(r.AvailabilityDate),
		Timezone:         r.LocationTimezone,
		CostHour:         r.CostPerHourINR,
	}
	if v.Skills == nil {
		v.Skills = []string{}
	}
	if r.ProficiencyLevel != nil {
		s := string(*r.ProficiencyLevel)
		v.Proficiency = &s
	}
	if r.EmploymentType != nil {
		s := string(*r.EmploymentType)
		v.Type = &s
	}
	return v
}

func projectView(p *models.Project) types.ProjectView {
	v := types.ProjectView{
		ID:               p.ProjectID,
		Name:             p.Name,
		ProblemStatement: p.Summary,
		StartDate:        fmtDate(p.StartDate),
		EndDate:          fmtDate(p.EndDate),
		Milestones:       p.Milestones,
		Budget:           p.BudgetINR,
		RequiredSkills:   p.RequiredRoles,
		Compliance:       p.Compliance,
	}
	if p.Priority != nil {
		s := string(*p.Priority)
		v.Priority = &s
	}
	return v
}

func projectRecord(p *models.Project) types.ProjectRecord {
	v := types.ProjectRecord{
		ProjectID:      p.ProjectID,
		Name:           p.Name,
		Summary:        p.Summary,
		RequiredSkills: p.RequiredSkills,
		StaffingMix:    p.StaffingMix,
		StartDate:      fmtDate(p.StartDate),
		EndDate:        fmtDate(p.EndDate),
		Milestones:     p.Milestones,
		RequiredRoles:  p.RequiredRoles,
		BudgetINR:      p.BudgetINR,
		Compliance:     p.Compliance,
	}
	if v.RequiredSkills == nil {
		v.RequiredSkills = []string{}
	}
	if p.Priority != nil {
		s := string(*p.Priority)
		v.Priority = &s
	}
	return v
}

// ---- dataset ----

func (c *DataController) Dataset(ctx context.Context, conversationID, userID string, limit int) (*types.Dataset, error) {
	resources, err := c.resourceDAO.ForConversation(ctx, conversationID, userID, limit)
	if err != nil {
		return nil, err
	}
	projects, err := c.projectDAO.ForConversation(ctx, conversationID, userID, limit)
	if err != nil {
		return nil, err
	}
	ds := &types.Dataset{
		Resources: make([]types.ResourceView, 0, len(resources)),
		Projects:  make([]types.ProjectRecord, 0, len(projects)),
	}
	for i := range resources {
		ds.Resources = append(ds.Resources, resourceView(&resources[i]))
	}
	for i := range projects {
		ds.Projects = append(ds.Projects, projectRecord(&projects[i]))
	}
	return ds, nil
}

// Counts is a lightweight status probe for /data/debug/status.
func (c *DataController) Counts(ctx context.Context) (map[string]int64, error) {
	_, resources, err := c.resourceDAO.List(ctx, 1, 0, "")
	if err != nil {
		return nil, err
	}
	_, projects, err := c.projectDAO.List(ctx, 1, 0, "", nil)
	if err != nil {
		return nil, err
	}
	return map[string]int64{
		"resources_count": resources,
		"projects_count":  projects,
	}, nil
}

// ---- resource CRUD ----

func applyResourceUpsert(r *models.Resource, body *types.ResourceUpsert) {
	if body.Name != nil {
		r.Name = strings.TrimSpace(*body.Name)
	}
	if body.Role != nil {
		r.Role = strings.TrimSpace(*body.Role)
	}
	if body.Skills != nil {
		r.Skills = *body.Skills
	}
	if body.ProficiencyLevel != nil {
		r.ProficiencyLevel = models.ParseProficiency(*body.ProficiencyLevel)
	}
	if body.CapacityHrsPerWeek != nil {
		r.CapacityHrsPerWeek = body.CapacityHrsPerWeek
	}
	if body.CurrentCommitments != nil {
		r.CurrentCommitments = emptyToNil(*body.CurrentCommitments)
	}
	if body.AvailabilityDate != nil {
		r.AvailabilityDate = ingest.ParseDate(*body.AvailabilityDate)
	}
	if body.LocationTimezone != nil {
		r.LocationTimezone = emptyToNil(*body.LocationTimezone)
	}
	if body.EmploymentType != nil {
		r.EmploymentType = models.ParseEmploymentType(*body.EmploymentType)
	}
	if body.CostPerHourINR != nil {
		r.CostPerHourINR = body.CostPerHourINR
	}
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (c *DataController) CreateResource(ctx context.Context, body types.ResourceUpsert, conversationID, userID string) (*types.ResourceView, error) {
	id := strings.TrimSpace(body.ResourceID)
	if id == "" || body.Name == nil || body.Role == nil || body.Skills == nil {
		return nil, fmt.Errorf("%w: resource_id, name, role and skills are required", ErrValidation)
	}
	exists, err := c.resourceDAO.Exists(ctx, id, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: resource_id already exists in this conversation", ErrConflict)
	}
	r := models.Resource{
		ResourceID:     id,
		ConversationID: conversationID,
		UserID:         userID,
	}
	applyResourceUpsert(&r, &body)
	if err := c.resourceDAO.Create(ctx, &r); err != nil {
		return nil, err
	}
	v := resourceView(&r)
	return &v, nil
}

func (c *DataController) GetResource(ctx context.Context, resourceID, conversationID, userID string) (*types.ResourceView, error) {
	r, err := c.resourceDAO.Get(ctx, resourceID, conversationID, userID)
	if err != nil {
		return nil, err
	}
	v := resourceView(r)
	return &v, nil
}

func (c *DataController) UpdateResource(ctx context.Context, resourceID string, body types.ResourceUpsert, conversationID, userID string) (*types.ResourceView, error) {
	r, err := c.resourceDAO.Get(ctx, resourceID, conversationID, userID)
	if err != nil {
		return nil, err
	}
	applyResourceUpsert(r, &body)
	if err := c.resourceDAO.Update(ctx, r); err != nil {
		return nil, err
	}
	v := resourceView(r)
	return &v, nil
}

func (c *DataController) DeleteResource(ctx context.Context, resourceID, conversationID, userID string) error {
	return c.resourceDAO.Delete(ctx, resourceID, conversationID, userID)
}

func (c *DataController) ListResources(ctx context.Context, limit, offset int, name string) (*types.ListResponse, error) {
	items, total, err := c.resourceDAO.List(ctx, limit, offset, name)
	if err != nil {
		return nil, err
	}
	out := &types.ListResponse{Total: total, Items: make([]interface{}, 0, len(items))}
	for i := range items {
		out.Items = append(out.Items, resourceView(&items[i]))
	}
	return out, nil
}

// ---- project CRUD ----

func applyProjectUpsert(p *models.Project, body *types.ProjectUpsert) {
	if body.Name != nil {
		p.Name = strings.TrimSpace(*body.Name)
	}
	if body.Summary != nil {
		p.Summary = emptyToNil(*body.Summary)
	}
	if body.RequiredSkills != nil {
		p.RequiredSkills = *body.RequiredSkills
	}
	if body.StaffingMix != nil {
		p.StaffingMix = emptyToNil(*body.StaffingMix)
	}
	if body.StartDate != nil {
		p.StartDate = ingest.ParseDate(*body.StartDate)
	}
	if body.EndDate != nil {
		p.EndDate = ingest.ParseDate(*body.EndDate)
	}
	if body.Milestones != nil {
		p.Milestones = emptyToNil(*body.Milestones)
	}
	if body.RequiredRoles != nil {
		p.RequiredRoles = emptyToNil(*body.RequiredRoles)
	}
	if body.Priority != nil {
		p.Priority = models.ParsePriority(*body.Priority)
	}
	if body.BudgetINR != nil {
		p.BudgetINR = body.BudgetINR
	}
	if body.Compliance != nil {
		p.Compliance = emptyToNil(*body.Compliance)
	}
}

func (c *DataController) CreateProject(ctx context.Context, body types.ProjectUpsert, conversationID, userID string) (*types.ProjectView, error) {
	id := strings.TrimSpace(body.ProjectID)
	if id == "" || body.Name == nil {
		return nil, fmt.Errorf("%w: project_id and name are required", ErrValidation)
	}
	exists, err := c.projectDAO.Exists(ctx, id, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: project_id already exists in this conversation", ErrConflict)
	}
	p := models.Project{
		ProjectID:      id,
		ConversationID: conversationID,
		UserID:         userID,
	}
	applyProjectUpsert(&p, &body)
	if err := c.projectDAO.Create(ctx, &p); err != nil {
		return nil, err
	}
	v := projectView(&p)
	return &v, nil
}

func (c *DataController) GetProject(ctx context.Context, projectID, conversationID, userID string) (*types.ProjectView, error) {
	p, err := c.projectDAO.Get(ctx, projectID, conversationID, userID)
	if err != nil {
		return nil, err
	}
	v := projectView(p)
	return &v, nil
}

func (c *DataController) UpdateProject(ctx context.Context, projectID string, body types.ProjectUpsert, conversationID, userID string) (*types.ProjectView, error) {
	p, err := c.projectDAO.Get(ctx, projectID, conversationID, userID)
	if err != nil {
		return nil, err
	}
	applyProjectUpsert(p, &body)
	if err := c.projectDAO.Update(ctx, p); err != nil {
		return nil, err
	}
	v := projectView(p)
	return &v, nil
}

func (c *DataController) DeleteProject(ctx context.Context, projectID, conversationID, userID string) error {
	return c.projectDAO.Delete(ctx, projectID, conversationID, userID)
}

func (c *DataController) ListProjects(ctx context.Context, limit, offset int, name, priority string) (*types.ListResponse, error) {
	items, total, err := c.projectDAO.List(ctx, limit, offset, name, models.ParsePriority(priority))
	if err != nil {
		return nil, err
	}
	out := &types.ListResponse{Total: total, Items: make([]interface{}, 0, len(items))}
	for i := range items {
		out.Items = append(out.Items, projectView(&items[i]))
	}
	return out, nil
}
