package configs

import (
	"github.com/mesh05/Techolution-PRM/prm/utils/logging"

	"github.com/magiconair/properties"
	"go.uber.org/zap"
)

// PromptConfig holds the allocation assistant's prompt pieces. Keeping them
// in a properties file lets the prompt be tuned without a rebuild.
type PromptConfig struct {
	SystemRole      string
	OutputStructure string
	DatasetHeader   string
}

const (
	defaultSystemRole = "You are a resource-allocation assistant for project staffing. " +
		"You match people to project roles using their skills, proficiency, capacity and cost."
	defaultOutputStructure = "When the user asks for an allocation, reply with a short explanation " +
		"followed by a fenced ```json block containing an object with fields: " +
		"Role (string), Allocations (array of {Name, Skills, Proficiency, MatchPercentage, Reasoning}), " +
		"TotalHours (number) and Plan (string). For anything else answer in plain text."
	defaultDatasetHeader = "Current dataset for this conversation (resources and projects):"
)

func LoadPromptConfig(path string) *PromptConfig {
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		logging.AppLogger.Warn("prompt config load error, using defaults", zap.Error(err))
		return &PromptConfig{
			SystemRole:      defaultSystemRole,
			OutputStructure: defaultOutputStructure,
			DatasetHeader:   defaultDatasetHeader,
		}
	}
	return &PromptConfig{
		SystemRole:      props.GetString("system_role", defaultSystemRole),
		OutputStructure: props.GetString("output_structure", defaultOutputStructure),
		DatasetHeader:   props.GetString("dataset_header", defaultDatasetHeader),
	}
}
