package predictor

import "fmt"

// Stage names the step of a prediction run that failed. A run that fails
// at the remote call or parse stage still leaves its query log behind;
// only a run that makes it all the way through produces a prediction.
type Stage string

const (
	StageFetchArticle  Stage = "fetch_article"
	StageRemoteCall    Stage = "remote_call"
	StageParseResponse Stage = "parse_response"
	StageRecord        Stage = "record"
)

// RunError is a failed prediction run, tagged with the stage it died in.
type RunError struct {
	Stage Stage
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
