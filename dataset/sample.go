package dataset

import "github.com/epigraph-tools/lapis/engine"

// Sample returns the built-in illustrative dataset: ten inscriptions used
// when no real data file is present. Persons 1–10, five Male and five
// Female, years spanning 80–200.
func Sample() *engine.Dataset {
	columns := []string{
		engine.ColPersonID,
		engine.ColName,
		engine.ColGender,
		engine.ColAge,
		engine.ColYear,
		engine.ColCase,
		engine.ColType,
	}
	rows := [][]string{
		{"1", "Marcus Aurelius", "Male", "Adult", "120", "Nominative", "Funerary"},
		{"2", "Julia Felix", "Female", "Adult", "150", "Genitive", "Honorary"},
		{"3", "Gaius Julius", "Male", "Child", "80", "Accusative", "Votive"},
		{"4", "Claudia Severa", "Female", "Adult", "200", "Dative", "Funerary"},
		{"5", "Titus Flavius", "Male", "Elder", "170", "Nominative", "Building"},
		{"6", "Cornelia Prima", "Female", "Adult", "140", "Ablative", "Funerary"},
		{"7", "Lucius Vorenus", "Male", "Adult", "90", "Nominative", "Military"},
		{"8", "Antonia Minor", "Female", "Elder", "180", "Genitive", "Honorary"},
		{"9", "Quintus Sertorius", "Male", "Adult", "110", "Dative", "Votive"},
		{"10", "Livia Drusilla", "Female", "Adult", "160", "Nominative", "Funerary"},
	}
	return engine.NewDataset(columns, rows)
}
