package domain

// StageEvent is emitted once per translated source stage.
type StageEvent struct {
	Index   int
	Stage   string
	Kind    StageKind
	Phases  int
	Elapsed float64
}

// CompleteEvent is emitted after a document has been assembled and validated.
type CompleteEvent struct {
	Label    string
	Mode     TransitionMode
	Stages   int
	Phases   int
	Warnings int
	Err      error
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the translating goroutine; nil hooks are skipped.
type LifecycleHooks struct {
	OnStage    func(*StageEvent)
	OnWarning  func(warning string)
	OnComplete func(*CompleteEvent)
}
