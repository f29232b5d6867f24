package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	catalogPathRequiredMessageConstant      = "pipeline catalog path must be provided"
	catalogLoadErrorTemplateConstant        = "failed to load pipeline catalog: %w"
	catalogParseErrorTemplateConstant       = "failed to parse pipeline catalog: %w"
	catalogEmptyMessageConstant             = "pipeline catalog must define at least one pipeline"
	catalogNameRequiredMessageConstant      = "pipeline catalog names must be non-empty"
	catalogDuplicateNameTemplateConstant    = "pipeline catalog defines duplicate name %q"
	catalogPipelineRequiredTemplateConstant = "saved pipeline %s has no pipeline text"
)

// PipelineDefinition is one saved pipeline in the catalog.
type PipelineDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Pipeline    string `yaml:"pipeline"`
}

// Catalog is the set of saved pipelines loaded from disk.
type Catalog struct {
	Pipelines []PipelineDefinition `yaml:"pipelines"`
}

// LoadCatalog reads saved pipeline definitions from disk and performs basic validation.
func LoadCatalog(filePath string) (Catalog, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Catalog{}, errors.New(catalogPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Catalog{}, fmt.Errorf(catalogLoadErrorTemplateConstant, readError)
	}

	var loadedCatalog Catalog
	if unmarshalError := yaml.Unmarshal(contentBytes, &loadedCatalog); unmarshalError != nil {
		return Catalog{}, fmt.Errorf(catalogParseErrorTemplateConstant, unmarshalError)
	}

	if len(loadedCatalog.Pipelines) == 0 {
		return Catalog{}, errors.New(catalogEmptyMessageConstant)
	}

	seenNames := map[string]struct{}{}
	for definitionIndex, definition := range loadedCatalog.Pipelines {
		pipelineName := strings.TrimSpace(definition.Name)
		if len(pipelineName) == 0 {
			return Catalog{}, errors.New(catalogNameRequiredMessageConstant)
		}
		if _, alreadySeen := seenNames[pipelineName]; alreadySeen {
			return Catalog{}, fmt.Errorf(catalogDuplicateNameTemplateConstant, pipelineName)
		}
		seenNames[pipelineName] = struct{}{}

		if len(strings.TrimSpace(definition.Pipeline)) == 0 {
			return Catalog{}, fmt.Errorf(catalogPipelineRequiredTemplateConstant, pipelineName)
		}
		loadedCatalog.Pipelines[definitionIndex].Name = pipelineName
	}

	return loadedCatalog, nil
}

// Find returns the saved pipeline registered under the supplied name.
func (loadedCatalog Catalog) Find(pipelineName string) (PipelineDefinition, bool) {
	trimmedName := strings.TrimSpace(pipelineName)
	for _, definition := range loadedCatalog.Pipelines {
		if definition.Name == trimmedName {
			return definition, true
		}
	}
	return PipelineDefinition{}, false
}

// Names returns the saved pipeline names in catalog order.
func (loadedCatalog Catalog) Names() []string {
	pipelineNames := make([]string, 0, len(loadedCatalog.Pipelines))
	for _, definition := range loadedCatalog.Pipelines {
		pipelineNames = append(pipelineNames, definition.Name)
	}
	return pipelineNames
}
