package pipeline

// State is the progress of a run. States only move forward; Failed is
// terminal and reachable from any state.
type State int

const (
	Idle State = iota
	MetadataLoaded
	SkeletonGenerated
	ArtifactsCopied
	TemplateComposed
	ModelTransformed
	SourcesPatched
	Done
	Failed
)

var stateNames = [...]string{
	Idle:              "idle",
	MetadataLoaded:    "metadata-loaded",
	SkeletonGenerated: "skeleton-generated",
	ArtifactsCopied:   "artifacts-copied",
	TemplateComposed:  "template-composed",
	ModelTransformed:  "model-transformed",
	SourcesPatched:    "sources-patched",
	Done:              "done",
	Failed:            "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Task names.
const (
	taskMetadata  = "metadata"
	taskSkeleton  = "skeleton"
	taskArtifacts = "artifacts"
	taskTemplate  = "template"
	taskModel     = "model"
	taskModule    = "module"
	taskComponent = "component"
	taskManifest  = "manifest"
)

// milestones lists, per state after Idle, the tasks that must have completed
// for a run to be in that state. Each state also requires its predecessors.
var milestones = []struct {
	state State
	tasks []string
}{
	{MetadataLoaded, []string{taskMetadata}},
	{SkeletonGenerated, []string{taskSkeleton}},
	{ArtifactsCopied, []string{taskArtifacts}},
	{TemplateComposed, []string{taskTemplate}},
	{ModelTransformed, []string{taskModel}},
	{SourcesPatched, []string{taskModule, taskComponent}},
	{Done, []string{taskManifest}},
}
