package controllers

import (
	"context"
	"fmt"

	"github.com/mesh05/Techolution-PRM/prm/ingest"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/dao"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"
	"github.com/mesh05/Techolution-PRM/prm/types"
	"github.com/mesh05/Techolution-PRM/prm/utils/logging"

	"go.uber.org/zap"
)

const rowErrorLimit = 10

type IngestController struct {
	resourceDAO *dao.ResourceDAO
	projectDAO  *dao.ProjectDAO
}

func NewIngestController(resourceDAO *dao.ResourceDAO, projectDAO *dao.ProjectDAO) *IngestController {
	return &IngestController{resourceDAO: resourceDAO, projectDAO: projectDAO}
}

// IngestResources upserts resources (by resource_id) from a parsed table for
// the given conversation/user. Row-level failures are collected, not fatal.
func (c *IngestController) IngestResources(ctx context.Context, t *ingest.Table, conversationID, userID string) (*types.IngestResult, error) {
	logging.AppLogger.Info("resources ingest start",
		zap.String("conversation_id", conversationID), zap.String("user", userID))

	if len(t.Rows) == 0 {
		return &types.IngestResult{Ok: true, Note: "No non-empty sheets", ColumnsSeen: []string{}}, nil
	}

	resolved, _ := ingest.ResolveColumns(t.Columns, ingest.ResourceMapping)
	if miss := requiredMissing(resolved, ingest.ResourceRequired); len(miss) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %v", ErrValidation, miss)
	}

	result := &types.IngestResult{Ok: true, ColumnsSeen: t.Columns, ResolvedMap: resolved}
	for idx, row := range t.Rows {
		r := models.Resource{
			ResourceID:         row[resolved["resource_id"]],
			Name:               row[resolved["name"]],
			Role:               row[resolved["role"]],
			Skills:             types.SplitList(row[resolved["skills"]]),
			ProficiencyLevel:   models.ParseProficiency(row[resolved["proficiency_level"]]),
			CapacityHrsPerWeek: ingest.ParseInt(row[resolved["capacity_hrs_per_week"]]),
			CurrentCommitments: emptyToNil(row[resolved["current_commitments"]]),
			AvailabilityDate:   ingest.ParseDate(row[resolved["availability_date"]]),
			LocationTimezone:   emptyToNil(row[resolved["location_timezone"]]),
			EmploymentType:     models.ParseEmploymentType(row[resolved["employment_type"]]),
			CostPerHourINR:     ingest.ParseFloat(row[resolved["cost_per_hour_inr"]]),
			ConversationID:     conversationID,
			UserID:             userID,
		}
		if r.ResourceID == "" {
			recordRowError(result, idx, "empty resource_id")
			continue
		}
		if err := c.resourceDAO.Upsert(ctx, &r); err != nil {
			recordRowError(result, idx, err.Error())
			logging.ErrorLogger.Error("resource row failed", zap.Int("row", idx), zap.Error(err))
			continue
		}
		result.RowsIngested++
	}

	logging.AppLogger.Info("resources ingest done",
		zap.Int("ok", result.RowsIngested), zap.Int("failed", result.RowsFailed))
	return result, nil
}

func (c *IngestController) IngestProjects(ctx context.Context, t *ingest.Table, conversationID, userID string) (*types.IngestResult, error) {
	logging.AppLogger.Info("projects ingest start",
		zap.String("conversation_id", conversationID), zap.String("user", userID))

	if len(t.Rows) == 0 {
		return &types.IngestResult{Ok: true, Note: "No non-empty sheets", ColumnsSeen: []string{}}, nil
	}

	resolved, _ := ingest.ResolveColumns(t.Columns, ingest.ProjectMapping)
	if miss := requiredMissing(resolved, ingest.ProjectRequired); len(miss) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %v", ErrValidation, miss)
	}

	result := &types.IngestResult{Ok: true, ColumnsSeen: t.Columns, ResolvedMap: resolved}
	for idx, row := range t.Rows {
		p := models.Project{
			ProjectID:      row[resolved["project_id"]],
			Name:           row[resolved["name"]],
			Summary:        emptyToNil(row[resolved["summary"]]),
			RequiredSkills: types.SplitList(row[resolved["required_skills"]]),
			StaffingMix:    emptyToNil(row[resolved["staffing_mix"]]),
			StartDate:      ingest.ParseDate(row[resolved["start_date"]]),
			EndDate:        ingest.ParseDate(row[resolved["end_date"]]),
			Milestones:     emptyToNil(row[resolved["milestones"]]),
			RequiredRoles:  emptyToNil(row[resolved["required_roles"]]),
			Priority:       models.ParsePriority(row[resolved["priority"]]),
			BudgetINR:      ingest.ParseInt(row[resolved["budget_inr"]]),
			Compliance:     emptyToNil(row[resolved["compliance"]]),
			ConversationID: conversationID,
			UserID:         userID,
		}
		if p.ProjectID == "" {
			recordRowError(result, idx, "empty project_id")
			continue
		}
		if err := c.projectDAO.Upsert(ctx, &p); err != nil {
			recordRowError(result, idx, err.Error())
			logging.ErrorLogger.Error("project row failed", zap.Int("row", idx), zap.Error(err))
			continue
		}
		result.RowsIngested++
	}

	logging.AppLogger.Info("projects ingest done",
		zap.Int("ok", result.RowsIngested), zap.Int("failed", result.RowsFailed))
	return result, nil
}

func requiredMissing(resolved map[string]string, required []string) []string {
	var miss []string
	for _, field := range required {
		if _, ok := resolved[field]; !ok {
			miss = append(miss, field)
		}
	}
	return miss
}

func recordRowError(result *types.IngestResult, idx int, msg string) {
	result.RowsFailed++
	if len(result.SampleErrors) < rowErrorLimit {
		result.SampleErrors = append(result.SampleErrors, types.RowError{RowIndex: idx, Error: msg})
	}
}
