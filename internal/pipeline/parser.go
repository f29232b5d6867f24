package pipeline

import "strings"

const (
	pipeOperatorConstant                = "|"
	emptyPipelineMessageConstant        = "pipeline text is empty"
	missingExternalStageMessageConstant = "pipeline requires at least one external command"
	missingInternalStageMessageConstant = "pipeline must begin with an internal command"
	emptyExternalCommandMessageConstant = "empty external command"
)

// ParsePipeline splits raw pipeline text on the pipe operator and types the
// resulting segments: the first is the in-process stage, the rest run as OS
// processes. Splitting is deliberately naive; quoting and redirection inside a
// stage are the delegated shell's business, not the parser's.
func ParsePipeline(pipelineText string) ParsedPipeline {
	trimmedPipelineText := strings.TrimSpace(pipelineText)
	if len(trimmedPipelineText) == 0 {
		return ParsedPipeline{ErrorMessage: emptyPipelineMessageConstant}
	}

	rawSegments := strings.Split(trimmedPipelineText, pipeOperatorConstant)
	if len(rawSegments) < 2 {
		return ParsedPipeline{ErrorMessage: missingExternalStageMessageConstant}
	}

	segments := make([]PipelineSegment, 0, len(rawSegments))
	for segmentIndex, rawSegment := range rawSegments {
		segmentText := strings.TrimSpace(rawSegment)
		if len(segmentText) == 0 {
			if segmentIndex == 0 {
				return ParsedPipeline{ErrorMessage: missingInternalStageMessageConstant}
			}
			return ParsedPipeline{ErrorMessage: emptyExternalCommandMessageConstant}
		}
		segments = append(segments, PipelineSegment{
			Text:       segmentText,
			Position:   segmentIndex,
			IsInternal: segmentIndex == 0,
			IsFirst:    segmentIndex == 0,
			IsLast:     segmentIndex == len(rawSegments)-1,
		})
	}

	return ParsedPipeline{Segments: segments, Valid: true}
}
