package model

// Area is a curricular subject tag partitioning questions, missions and XP.
type Area string

const (
	AreaMathematics Area = "mathematics"
	AreaLanguages   Area = "languages"
	AreaSciences    Area = "sciences"
	AreaHistory     Area = "history"
	AreaGeography   Area = "geography"
	AreaArts        Area = "arts"
)

// AllAreas is the canonical diagnostic ordering.
var AllAreas = []Area{
	AreaMathematics,
	AreaLanguages,
	AreaSciences,
	AreaHistory,
	AreaGeography,
	AreaArts,
}

func (a Area) Valid() bool {
	for _, known := range AllAreas {
		if a == known {
			return true
		}
	}
	return false
}
