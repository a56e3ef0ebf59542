package ifc

import "strings"

// Category groups element types for quantity takeoff. It is coarser than
// the entity type: IFCWALL and IFCWALLSTANDARDCASE are both walls.
type Category string

const (
	CategoryWall            Category = "wall"
	CategoryCurtainWall     Category = "curtain-wall"
	CategoryWindow          Category = "window"
	CategoryDoor            Category = "door"
	CategorySlab            Category = "slab"
	CategoryRoof            Category = "roof"
	CategoryStair           Category = "stair"
	CategoryRamp            Category = "ramp"
	CategoryRailing         Category = "railing"
	CategoryCovering        Category = "covering"
	CategoryBeam            Category = "beam"
	CategoryColumn          Category = "column"
	CategoryMember          Category = "member"
	CategoryPlate           Category = "plate"
	CategoryFooting         Category = "footing"
	CategoryPile            Category = "pile"
	CategoryPipe            Category = "pipe"
	CategoryPipeFitting     Category = "pipe-fitting"
	CategoryValve           Category = "valve"
	CategoryPump            Category = "pump"
	CategoryTank            Category = "tank"
	CategorySanitary        Category = "sanitary-terminal"
	CategoryWasteTerminal   Category = "waste-terminal"
	CategoryCable           Category = "cable"
	CategoryCableCarrier    Category = "cable-carrier"
	CategoryBoard           Category = "distribution-board"
	CategoryOutlet          Category = "outlet"
	CategorySwitch          Category = "switch"
	CategoryLightFixture    Category = "light-fixture"
	CategoryElectricDevice  Category = "electric-appliance"
	CategoryTransformer     Category = "transformer"
	CategoryDuct            Category = "duct"
	CategoryDuctFitting     Category = "duct-fitting"
	CategoryAirTerminal     Category = "air-terminal"
	CategoryFan             Category = "fan"
	CategoryCoil            Category = "coil"
	CategoryBoiler          Category = "boiler"
	CategoryChiller         Category = "chiller"
	CategoryUnitaryEquip    Category = "unitary-equipment"
	CategoryFireTerminal    Category = "fire-suppression-terminal"
	CategoryAlarm           Category = "alarm"
	CategorySensor          Category = "sensor"
	CategoryCommsAppliance  Category = "communications-appliance"
	CategoryAVAppliance     Category = "audio-visual-appliance"
	CategoryBurner          Category = "burner"
	CategoryFlowMeter       Category = "flow-meter"
	CategorySpace           Category = "space"
	CategoryBuildingElement Category = "building-element"
)

// elementCategories is the extraction allowlist: only these entity types
// yield Element records. "TYPE"-suffixed template variants are excluded
// separately.
var elementCategories = map[string]Category{
	"IFCWALL":                       CategoryWall,
	"IFCWALLSTANDARDCASE":           CategoryWall,
	"IFCCURTAINWALL":                CategoryCurtainWall,
	"IFCWINDOW":                     CategoryWindow,
	"IFCDOOR":                       CategoryDoor,
	"IFCSLAB":                       CategorySlab,
	"IFCROOF":                       CategoryRoof,
	"IFCSTAIR":                      CategoryStair,
	"IFCSTAIRFLIGHT":                CategoryStair,
	"IFCRAMP":                       CategoryRamp,
	"IFCRAILING":                    CategoryRailing,
	"IFCCOVERING":                   CategoryCovering,
	"IFCBEAM":                       CategoryBeam,
	"IFCCOLUMN":                     CategoryColumn,
	"IFCMEMBER":                     CategoryMember,
	"IFCPLATE":                      CategoryPlate,
	"IFCFOOTING":                    CategoryFooting,
	"IFCPILE":                       CategoryPile,
	"IFCBUILDINGELEMENTPROXY":       CategoryBuildingElement,
	"IFCSPACE":                      CategorySpace,
	"IFCPIPESEGMENT":                CategoryPipe,
	"IFCFLOWSEGMENT":                CategoryPipe,
	"IFCPIPEFITTING":                CategoryPipeFitting,
	"IFCFLOWFITTING":                CategoryPipeFitting,
	"IFCVALVE":                      CategoryValve,
	"IFCFLOWCONTROLLER":             CategoryValve,
	"IFCPUMP":                       CategoryPump,
	"IFCTANK":                       CategoryTank,
	"IFCSANITARYTERMINAL":           CategorySanitary,
	"IFCWASTETERMINAL":              CategoryWasteTerminal,
	"IFCFLOWTERMINAL":               CategorySanitary,
	"IFCCABLESEGMENT":               CategoryCable,
	"IFCCABLECARRIERSEGMENT":        CategoryCableCarrier,
	"IFCCABLECARRIERFITTING":        CategoryCableCarrier,
	"IFCELECTRICDISTRIBUTIONBOARD":  CategoryBoard,
	"IFCELECTRICDISTRIBUTIONPOINT":  CategoryBoard,
	"IFCOUTLET":                     CategoryOutlet,
	"IFCSWITCHINGDEVICE":            CategorySwitch,
	"IFCLIGHTFIXTURE":               CategoryLightFixture,
	"IFCLAMP":                       CategoryLightFixture,
	"IFCELECTRICAPPLIANCE":          CategoryElectricDevice,
	"IFCTRANSFORMER":                CategoryTransformer,
	"IFCJUNCTIONBOX":                CategoryOutlet,
	"IFCDUCTSEGMENT":                CategoryDuct,
	"IFCDUCTFITTING":                CategoryDuctFitting,
	"IFCAIRTERMINAL":                CategoryAirTerminal,
	"IFCFAN":                        CategoryFan,
	"IFCCOIL":                       CategoryCoil,
	"IFCBOILER":                     CategoryBoiler,
	"IFCCHILLER":                    CategoryChiller,
	"IFCUNITARYEQUIPMENT":           CategoryUnitaryEquip,
	"IFCAIRTOAIRHEATRECOVERY":       CategoryUnitaryEquip,
	"IFCFIRESUPPRESSIONTERMINAL":    CategoryFireTerminal,
	"IFCALARM":                      CategoryAlarm,
	"IFCSENSOR":                     CategorySensor,
	"IFCCOMMUNICATIONSAPPLIANCE":    CategoryCommsAppliance,
	"IFCAUDIOVISUALAPPLIANCE":       CategoryAVAppliance,
	"IFCBURNER":                     CategoryBurner,
	"IFCFLOWMETER":                  CategoryFlowMeter,
	"IFCENERGYCONVERSIONDEVICE":     CategoryUnitaryEquip,
	"IFCDISTRIBUTIONCONTROLELEMENT": CategorySensor,
}

// CategoryOf returns the takeoff category of an entity type tag, and
// whether the tag is on the allowlist at all. Template records such as
// IFCWALLTYPE never match.
func CategoryOf(entityType string) (Category, bool) {
	tag := strings.ToUpper(entityType)
	if strings.HasSuffix(tag, "TYPE") {
		return "", false
	}
	cat, ok := elementCategories[tag]
	return cat, ok
}

// structuralCategories are the member kinds whose names may embed a
// vendor "WIDTHxDEPTHmm" section token.
var structuralCategories = map[Category]bool{
	CategoryBeam:    true,
	CategoryColumn:  true,
	CategoryWall:    true,
	CategoryFooting: true,
	CategoryMember:  true,
}

// openingCategories are elements whose trailing record fields carry
// overall height and width.
var openingCategories = map[Category]bool{
	CategoryWindow: true,
	CategoryDoor:   true,
}
