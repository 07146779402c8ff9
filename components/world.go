package components

// Kind classifies a world object registered in the spatial index.
type Kind uint8

const (
	KindWater Kind = iota
	KindFood
	KindAgent
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindWater:
		return "water"
	case KindFood:
		return "food"
	case KindAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// IsObstacle reports whether agents steer around objects of this kind.
func (k Kind) IsObstacle() bool {
	return k == KindWater || k == KindFood
}

// ObjectID is a generational handle into the spatial index.
// The zero value never resolves.
type ObjectID struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether the handle was never assigned.
func (id ObjectID) IsZero() bool {
	return id.Gen == 0
}
