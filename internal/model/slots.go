package model

import (
	"sort"
	"strings"
)

// Slot is one of the fixed image attachment positions on an interior project.
// The values double as multipart field names on the update endpoint, so the set is
// closed: the server only accepts these keys.
type Slot string

const (
	FloorPlan1 Slot = "Floor_Plan_1"
	FloorPlan2 Slot = "Floor_Plan_2"
	FloorPlan3 Slot = "Floor_Plan_3"
	FloorPlan4 Slot = "Floor_Plan_4"

	Section1 Slot = "Section_1"
	Section2 Slot = "Section_2"
	Section3 Slot = "Section_3"
	Section4 Slot = "Section_4"

	Elevation1 Slot = "Elevation_1"
	Elevation2 Slot = "Elevation_2"
	Elevation3 Slot = "Elevation_3"
	Elevation4 Slot = "Elevation_4"

	ThreeDModel1 Slot = "ThreeD_Model_1"
	ThreeDModel2 Slot = "ThreeD_Model_2"
	ThreeDModel3 Slot = "ThreeD_Model_3"

	DetailWorkingLayout1 Slot = "Detail_Working_Layout_1"

	ElectricalLayout1 Slot = "Electrical_Layout_1"
	ElectricalLayout2 Slot = "Electrical_Layout_2"
	ElectricalLayout3 Slot = "Electrical_Layout_3"

	// "Celling" is the spelling the API uses.
	CellingLayout1 Slot = "Celling_Layout_1"
	CellingLayout2 Slot = "Celling_Layout_2"
)

// SlotDef pairs a slot with its display label.
type SlotDef struct {
	Slot  Slot   `json:"key"`
	Label string `json:"label"`
}

var slotDefs = []SlotDef{
	{FloorPlan1, "Floor Plan 1"},
	{FloorPlan2, "Floor Plan 2"},
	{FloorPlan3, "Floor Plan 3"},
	{FloorPlan4, "Floor Plan 4"},
	{Section1, "Section 1"},
	{Section2, "Section 2"},
	{Section3, "Section 3"},
	{Section4, "Section 4"},
	{Elevation1, "Elevation 1"},
	{Elevation2, "Elevation 2"},
	{Elevation3, "Elevation 3"},
	{Elevation4, "Elevation 4"},
	{ThreeDModel1, "3D Model 1"},
	{ThreeDModel2, "3D Model 2"},
	{ThreeDModel3, "3D Model 3"},
	{DetailWorkingLayout1, "Detail Working Layout 1"},
	{ElectricalLayout1, "Electrical Layout 1"},
	{ElectricalLayout2, "Electrical Layout 2"},
	{ElectricalLayout3, "Electrical Layout 3"},
	{CellingLayout1, "Celling Layout 1"},
	{CellingLayout2, "Celling Layout 2"},
}

var slotIndex = func() map[Slot]int {
	idx := make(map[Slot]int, len(slotDefs))
	for i, d := range slotDefs {
		idx[d.Slot] = i
	}
	return idx
}()

// SlotDefs returns the slot enumeration in display order.
func SlotDefs() []SlotDef {
	out := make([]SlotDef, len(slotDefs))
	copy(out, slotDefs)
	return out
}

// AllSlots returns every slot in display order.
func AllSlots() []Slot {
	out := make([]Slot, 0, len(slotDefs))
	for _, d := range slotDefs {
		out = append(out, d.Slot)
	}
	return out
}

// ParseSlot accepts the exact wire key.
func ParseSlot(name string) (Slot, bool) {
	s := Slot(strings.TrimSpace(name))
	if _, ok := slotIndex[s]; !ok {
		return "", false
	}
	return s, true
}

func IsSlotKey(name string) bool {
	_, ok := slotIndex[Slot(name)]
	return ok
}

func (s Slot) Valid() bool {
	_, ok := slotIndex[s]
	return ok
}

func (s Slot) Label() string {
	if i, ok := slotIndex[s]; ok {
		return slotDefs[i].Label
	}
	return string(s)
}

func (s Slot) String() string { return string(s) }

// slotLess orders slots by display position.
func slotLess(a, b Slot) bool {
	ia, oka := slotIndex[a]
	ib, okb := slotIndex[b]
	if oka && okb {
		return ia < ib
	}
	if oka != okb {
		return oka
	}
	return a < b
}

// SortSlots sorts in display order.
func SortSlots(xs []Slot) {
	sort.Slice(xs, func(i, j int) bool { return slotLess(xs[i], xs[j]) })
}
