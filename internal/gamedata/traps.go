package gamedata

// TrapDef defines a floor trap loaded from JSON.
type TrapDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SpawnWeight int    `json:"spawnWeight"`
	floorRange
}

// Key implements Weighted.
func (t TrapDef) Key() string { return t.ID }

// Weight implements Weighted.
func (t TrapDef) Weight() int { return t.SpawnWeight }

// TrapsFile represents the structure of traps.json.
type TrapsFile struct {
	Traps []TrapDef `json:"traps"`
}

// LoadTraps loads trap definitions from the embedded traps.json file.
func LoadTraps() ([]TrapDef, error) {
	file, err := Load[TrapsFile]("traps.json")
	if err != nil {
		return nil, err
	}
	return file.Traps, nil
}
