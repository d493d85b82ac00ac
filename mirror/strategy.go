package mirror

import "syncData/model"

type Strategy int

const (
	Full Strategy = iota + 1
	KeyBased
)

func (self Strategy) String() string {
	switch self {
	case Full:
		return "full"
	case KeyBased:
		return "key_based"
	}
	return "unknown"
}

// Select picks the transfer strategy for a table. Whether a KeyBased table
// actually has a usable checkpoint key is checked by the Engine.
func Select(table *model.TableDescriptor, cp *model.Checkpoint, forceFull bool) Strategy {
	switch {
	case forceFull:
		return Full
	case cp == nil:
		return Full
	case table.HasKey():
		return KeyBased
	default:
		return Full
	}
}
