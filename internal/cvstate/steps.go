package cvstate

// Step is one page of the multi-step form.
type Step struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Step indices, in form order.
const (
	StepPersonal = iota
	StepExperience
	StepEducation
	StepSkills
)

// Steps lists the form pages in order.
var Steps = []Step{
	{ID: "personal", Title: "Personal Info", Description: "Your basic information"},
	{ID: "experience", Title: "Experience", Description: "Work history"},
	{ID: "education", Title: "Education", Description: "Academic background"},
	{ID: "skills", Title: "Skills", Description: "Your expertise"},
}

// StepIndex returns the index of the step with the given id, or -1.
func StepIndex(id string) int {
	for i, s := range Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// NextStep advances one page, stopping at the last one.
func NextStep(s State) State {
	if s.Step < len(Steps)-1 {
		s.Step++
	}
	return s
}

// PreviousStep goes back one page, stopping at the first one.
func PreviousStep(s State) State {
	if s.Step > 0 {
		s.Step--
	}
	return s
}

// GoToStep jumps directly to page i.
func GoToStep(s State, i int) (State, error) {
	if i < 0 || i >= len(Steps) {
		return s, ErrStepOutOfRange
	}
	s.Step = i
	return s, nil
}

// IsLastStep reports whether the form is on its final page, where export is offered.
func (s State) IsLastStep() bool {
	return s.Step == len(Steps)-1
}

// CurrentStep returns the descriptor of the active page.
func (s State) CurrentStep() Step {
	return Steps[s.Step]
}
