package model

type ServiceType string

const (
	ServiceTypeRollOff  ServiceType = "rolloff"
	ServiceTypeFrontEnd ServiceType = "frontend"
)

var ServiceTypes = []ServiceType{ServiceTypeRollOff, ServiceTypeFrontEnd}

func (t ServiceType) Valid() bool {
	for _, known := range ServiceTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t ServiceType) Label() string {
	switch t {
	case ServiceTypeRollOff:
		return "Roll Off"
	case ServiceTypeFrontEnd:
		return "Front End"
	default:
		return string(t)
	}
}

type MaterialType string

const (
	MaterialTypeWaste     MaterialType = "waste"
	MaterialTypeRecycling MaterialType = "recycling"
	MaterialTypeConcrete  MaterialType = "concrete"
	MaterialTypeDirt      MaterialType = "dirt"
	MaterialTypeMixed     MaterialType = "mixed"
)

var MaterialTypes = []MaterialType{
	MaterialTypeWaste,
	MaterialTypeRecycling,
	MaterialTypeConcrete,
	MaterialTypeDirt,
	MaterialTypeMixed,
}

func (t MaterialType) Valid() bool {
	for _, known := range MaterialTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t MaterialType) Label() string {
	switch t {
	case MaterialTypeWaste:
		return "Waste"
	case MaterialTypeRecycling:
		return "Recycling"
	case MaterialTypeConcrete:
		return "Concrete"
	case MaterialTypeDirt:
		return "Dirt"
	case MaterialTypeMixed:
		return "Mixed"
	default:
		return string(t)
	}
}

// ServiceProfile is what a customer asks for; rates are ranked against it.
type ServiceProfile struct {
	BinSize      int          `json:"binSize"`
	ServiceType  ServiceType  `json:"serviceType"`
	MaterialType MaterialType `json:"materialType"`
}
