package mandel

// Stage is a step of a render run. Stages only ever advance, in the order
// they are declared.
type Stage int

const (
	StageUninitialized Stage = iota
	StageDeviceSelected
	StageContextReady
	StageProgramBuilt
	StageDispatched
	StageImageWritten
	StageResourcesReleased
	StageTerminated
)

var stageNames = [...]string{
	StageUninitialized:     "uninitialized",
	StageDeviceSelected:    "device_selected",
	StageContextReady:      "context_ready",
	StageProgramBuilt:      "program_built",
	StageDispatched:        "dispatched",
	StageImageWritten:      "image_written",
	StageResourcesReleased: "resources_released",
	StageTerminated:        "terminated",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Stages returns every stage in run order.
func Stages() []Stage {
	out := make([]Stage, 0, len(stageNames))
	for s := StageUninitialized; s <= StageTerminated; s++ {
		out = append(out, s)
	}
	return out
}

// StageFunc is notified when a renderer reaches a stage.
type StageFunc func(Stage)
