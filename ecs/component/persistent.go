package component

// Persistent marks entities that survive state transitions (the camera rig).
type Persistent struct {
	ID string
}

var PersistentComponent = NewComponent[Persistent]()
