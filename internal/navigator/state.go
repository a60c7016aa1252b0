package navigator

// State is a navigation state.
type State int

const (
	StateMainMenu          State = iota // Top-level menu
	StateExerciseMenu                   // Choosing an exercise
	StateProgressView                   // Showing the progress summary
	StateConfirmNewSession              // Confirming deletion of existing progress
	StateRunningExercise                // Exercise intro
	StateScenarioReplay                 // Scenario already completed: redo, skip or back
	StateRunningScenario                // Scenario intro
	StateRunningQuestion                // Awaiting an answer
	StateFeedback                       // Showing the graded outcome
	StateExerciseComplete               // Showing the exercise summary
	StateExit                           // Terminal
)

var stateNames = [...]string{
	StateMainMenu:          "main_menu",
	StateExerciseMenu:      "exercise_menu",
	StateProgressView:      "progress_view",
	StateConfirmNewSession: "confirm_new_session",
	StateRunningExercise:   "running_exercise",
	StateScenarioReplay:    "scenario_replay",
	StateRunningScenario:   "running_scenario",
	StateRunningQuestion:   "running_question",
	StateFeedback:          "feedback",
	StateExerciseComplete:  "exercise_complete",
	StateExit:              "exit",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// inExercise reports whether s is part of running an exercise.
func (s State) inExercise() bool {
	switch s {
	case StateRunningExercise, StateScenarioReplay, StateRunningScenario, StateRunningQuestion, StateFeedback:
		return true
	}
	return false
}

// MenuOption is a main-menu choice.
type MenuOption int

const (
	OptionContinue MenuOption = iota
	OptionNewSession
	OptionViewProgress
	OptionExit
)

func (o MenuOption) String() string {
	switch o {
	case OptionContinue:
		return "continue"
	case OptionNewSession:
		return "new_session"
	case OptionViewProgress:
		return "view_progress"
	case OptionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// ReplayChoice resolves the prompt for an already completed scenario.
type ReplayChoice int

const (
	ReplayRedo ReplayChoice = iota // Run every question again
	ReplaySkip                     // Move on unchanged
	ReplayBack                     // Leave the exercise
)
