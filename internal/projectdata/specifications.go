package projectdata

import "strings"

// Specifications describes the pool that is being built. Every section is
// optional and sections are replaced as a whole.
type Specifications struct {
	Dimensions    *Dimensions    `json:"dimensions,omitempty"`
	Materials     *Materials     `json:"materials,omitempty"`
	Equipment     *Equipment     `json:"equipment,omitempty"`
	WaterFeatures *WaterFeatures `json:"waterFeatures,omitempty"`
	Safety        *Safety        `json:"safety,omitempty"`
	Environmental *Environmental `json:"environmental,omitempty"`
}

type Dimensions struct {
	Length float64  `json:"length" validate:"gte=0"`
	Width  float64  `json:"width" validate:"gte=0"`
	Depth  *Depth   `json:"depth,omitempty"`
	Volume *float64 `json:"volume,omitempty" validate:"omitempty,gte=0"`
}

type Depth struct {
	Shallow float64 `json:"shallow" validate:"gte=0"`
	Deep    float64 `json:"deep" validate:"gte=0"`
}

type Materials struct {
	PoolShell string `json:"poolShell,omitempty" validate:"omitempty,oneof=concrete fiberglass vinyl steel composite"`
	Finish    string `json:"finish,omitempty" validate:"omitempty,oneof=tile plaster pebble glass paint"`
	Coping    string `json:"coping,omitempty" validate:"omitempty,oneof=stone concrete brick tile composite"`
	Decking   string `json:"decking,omitempty" validate:"omitempty,oneof=concrete stone wood composite pavers"`
}

type Equipment struct {
	Pump     *Pump     `json:"pump,omitempty"`
	Filter   *Filter   `json:"filter,omitempty"`
	Heater   *Heater   `json:"heater,omitempty"`
	Cleaner  *Cleaner  `json:"cleaner,omitempty"`
	Lighting *Lighting `json:"lighting,omitempty"`
}

type Pump struct {
	Brand      string  `json:"brand,omitempty"`
	Model      string  `json:"model,omitempty"`
	Horsepower float64 `json:"horsepower" validate:"gte=0"`
}

type Filter struct {
	Type  string `json:"type" validate:"required,oneof=sand cartridge diatomaceous zeolite"`
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`
}

type Heater struct {
	Type     string   `json:"type" validate:"required,oneof=gas electric heat_pump solar"`
	Brand    string   `json:"brand,omitempty"`
	Model    string   `json:"model,omitempty"`
	Capacity *float64 `json:"capacity,omitempty"`
}

type Cleaner struct {
	Type  string `json:"type" validate:"required,oneof=manual automatic robotic"`
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`
}

type Lighting struct {
	Type  string `json:"type" validate:"required,oneof=led halogen fiber_optic"`
	Color string `json:"color,omitempty" validate:"omitempty,oneof=white blue multi_color"`
	Count int    `json:"count" validate:"gte=0"`
}

// HasEquipment reports whether the equipment section names category (pump,
// filter, heater, cleaner or lighting) as installed.
func (s *Specifications) HasEquipment(category string) bool {
	if s == nil || s.Equipment == nil {
		return false
	}
	e := s.Equipment
	switch strings.ToLower(category) {
	case "pump":
		return e.Pump != nil
	case "filter":
		return e.Filter != nil
	case "heater":
		return e.Heater != nil
	case "cleaner":
		return e.Cleaner != nil
	case "lighting":
		return e.Lighting != nil
	}
	return false
}

// types lists the type of every installed item that carries one. The pump
// has no type and is never listed.
func (e *Equipment) types() []string {
	var out []string
	if e.Filter != nil {
		out = append(out, e.Filter.Type)
	}
	if e.Heater != nil {
		out = append(out, e.Heater.Type)
	}
	if e.Cleaner != nil {
		out = append(out, e.Cleaner.Type)
	}
	if e.Lighting != nil {
		out = append(out, e.Lighting.Type)
	}
	return out
}

// WaterFeatures mixes counts and flags. A feature is present when its count is
// non-zero or its flag is true.
type WaterFeatures struct {
	Waterfalls   *int  `json:"waterfalls,omitempty" validate:"omitempty,gte=0"`
	Fountains    *int  `json:"fountains,omitempty" validate:"omitempty,gte=0"`
	Jets         *int  `json:"jets,omitempty" validate:"omitempty,gte=0"`
	InfinityEdge *bool `json:"infinityEdge,omitempty"`
	Spa          *bool `json:"spa,omitempty"`
	Slide        *bool `json:"slide,omitempty"`
}

type featureEntry struct {
	key     string
	present bool
}

// entries returns the features that are set, keyed by their JSON name.
func (w *WaterFeatures) entries() []featureEntry {
	var out []featureEntry
	count := func(key string, v *int) {
		if v != nil {
			out = append(out, featureEntry{key, *v != 0})
		}
	}
	flag := func(key string, v *bool) {
		if v != nil {
			out = append(out, featureEntry{key, *v})
		}
	}
	count("waterfalls", w.Waterfalls)
	count("fountains", w.Fountains)
	count("jets", w.Jets)
	flag("infinityEdge", w.InfinityEdge)
	flag("spa", w.Spa)
	flag("slide", w.Slide)
	return out
}

type Safety struct {
	Fence      *bool    `json:"fence,omitempty"`
	Alarm      *bool    `json:"alarm,omitempty"`
	Cover      *bool    `json:"cover,omitempty"`
	Handrails  *bool    `json:"handrails,omitempty"`
	Steps      *bool    `json:"steps,omitempty"`
	Compliance []string `json:"compliance,omitempty"`
}

type Environmental struct {
	SolarHeating        *bool `json:"solarHeating,omitempty"`
	EnergyEfficientPump *bool `json:"energyEfficientPump,omitempty"`
	SaltWaterSystem     *bool `json:"saltWaterSystem,omitempty"`
	OzoneSystem         *bool `json:"ozoneSystem,omitempty"`
	UVSystem            *bool `json:"uvSystem,omitempty"`
}

// MergeSpecifications returns current with every section present in updates
// replacing the matching section. Either argument may be nil.
func MergeSpecifications(current, updates *Specifications) *Specifications {
	var out Specifications
	if current != nil {
		out = *current
	}
	if updates == nil {
		return &out
	}
	if updates.Dimensions != nil {
		out.Dimensions = updates.Dimensions
	}
	if updates.Materials != nil {
		out.Materials = updates.Materials
	}
	if updates.Equipment != nil {
		out.Equipment = updates.Equipment
	}
	if updates.WaterFeatures != nil {
		out.WaterFeatures = updates.WaterFeatures
	}
	if updates.Safety != nil {
		out.Safety = updates.Safety
	}
	if updates.Environmental != nil {
		out.Environmental = updates.Environmental
	}
	return &out
}
