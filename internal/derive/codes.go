package derive

// Mover status labels (IPUMS MIGRATE1).
const (
	MoverSameHouse     = "same_house"
	MoverWithinState   = "moved_within_state"
	MoverBetweenStates = "moved_between_states"
	MoverFromAbroad    = "moved_from_abroad"
	MoverOther         = "other"
)

var moverLabels = map[int]string{
	1: MoverSameHouse,
	2: MoverWithinState,
	3: MoverBetweenStates,
	4: MoverFromAbroad,
}

// MoverStatus recodes a mobility code. Unknown codes, including the survey's
// own not-applicable and unknown codes, map to MoverOther.
func MoverStatus(code int) string {
	if l, ok := moverLabels[code]; ok {
		return l
	}
	return MoverOther
}

// IsRecentMover reports whether the mobility code is any move in the past year.
func IsRecentMover(code int) bool {
	switch MoverStatus(code) {
	case MoverWithinState, MoverBetweenStates, MoverFromAbroad:
		return true
	}
	return false
}

// Building size labels (IPUMS UNITSSTR).
const (
	BuildingMobileOrOther = "mobile_home_or_other"
	BuildingSingleFamily  = "single_family"
	Building2To4          = "two_to_four_units"
	Building5To19         = "five_to_nineteen_units"
	Building20Plus        = "twenty_plus_units"
	BuildingOther         = "other"
)

var buildingLabels = map[int]string{
	1:  BuildingMobileOrOther, // mobile home or trailer
	2:  BuildingMobileOrOther, // boat, tent, van, other
	3:  BuildingSingleFamily,  // detached
	4:  BuildingSingleFamily,  // attached
	5:  Building2To4,
	6:  Building2To4,
	7:  Building5To19,
	8:  Building5To19,
	9:  Building20Plus,
	10: Building20Plus,
}

// BuildingSize recodes a building-type code. Unknown codes map to BuildingOther.
func BuildingSize(code int) string {
	if l, ok := buildingLabels[code]; ok {
		return l
	}
	return BuildingOther
}
