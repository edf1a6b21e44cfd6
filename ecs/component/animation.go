package component

// Animator plays one looping clip on a model.
type Animator struct {
	Clip     string
	Duration float64 // seconds
	Time     float64
	Playing  bool
}

var AnimatorComponent = NewComponent[Animator]()
