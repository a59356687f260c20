package models

import "strings"

// ProfileSchemaVersion is the canonical stored shape. Older shapes are migrated on read.
const ProfileSchemaVersion = 1

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Location string

const (
	LocationUrban Location = "Urban"
	LocationRural Location = "Rural"
)

type SocialCategory string

const (
	CategorySC       SocialCategory = "SC"
	CategoryST       SocialCategory = "ST"
	CategoryBC       SocialCategory = "BC"
	CategoryEBC      SocialCategory = "EBC"
	CategoryMinority SocialCategory = "Minority"
	CategoryBrahmin  SocialCategory = "Brahmin"
	CategoryEWS      SocialCategory = "EWS"
	CategoryGeneral  SocialCategory = "General"
	// CategoryKapu only appears in scheme requirements.
	CategoryKapu SocialCategory = "Kapu"
)

type Occupation string

const (
	OccupationStudent     Occupation = "student"
	OccupationEmployed    Occupation = "employed"
	OccupationUnemployed  Occupation = "unemployed"
	OccupationFarmer      Occupation = "farmer"
	OccupationDriver      Occupation = "driver"
	OccupationWeaver      Occupation = "weaver"
	OccupationDailyWorker Occupation = "daily worker"
	OccupationFisherman   Occupation = "fisherman"
	OccupationHousewife   Occupation = "housewife"
	OccupationOther       Occupation = "other"
)

type HouseType string

const (
	HouseOwned  HouseType = "owned"
	HouseRented HouseType = "rented"
	HouseNone   HouseType = "none"
)

type Education string

const (
	EducationNone      Education = "uneducated"
	EducationSchool    Education = "1-10"
	EducationInter     Education = "inter"
	EducationBachelors Education = "bachelors"
	EducationMasters   Education = "masters"
)

// Profile is the citizen's self-declared data. Pointer and empty-string fields mean "not provided".
type Profile struct {
	Name                   string         `json:"name,omitempty"`
	Age                    *int           `json:"age,omitempty"`
	Gender                 Gender         `json:"gender,omitempty"`
	AnnualIncome           *int           `json:"annualIncome,omitempty"`
	FamilySize             *int           `json:"familySize,omitempty"`
	Location               Location       `json:"location,omitempty"`
	District               string         `json:"district,omitempty"`
	Mandal                 string         `json:"mandal,omitempty"`
	Category               SocialCategory `json:"category,omitempty"`
	Disability             *bool          `json:"disability,omitempty"`
	Occupation             Occupation     `json:"occupation,omitempty"`
	LandHolding            string         `json:"landHolding,omitempty"`
	VehiclesOwned          *bool          `json:"vehiclesOwned,omitempty"`
	HouseType              HouseType      `json:"houseType,omitempty"`
	EducationQualification Education      `json:"educationQualification,omitempty"`
	SchemaVersion          int            `json:"schemaVersion,omitempty"`
}

// Merge returns p with every field present in update overlaid. Absent fields keep p's value.
func (p Profile) Merge(update Profile) Profile {
	out := p
	if update.Name != "" {
		out.Name = update.Name
	}
	if update.Age != nil {
		out.Age = IntPtr(*update.Age)
	}
	if update.Gender != "" {
		out.Gender = update.Gender
	}
	if update.AnnualIncome != nil {
		out.AnnualIncome = IntPtr(*update.AnnualIncome)
	}
	if update.FamilySize != nil {
		out.FamilySize = IntPtr(*update.FamilySize)
	}
	if update.Location != "" {
		out.Location = update.Location
	}
	if update.District != "" {
		out.District = update.District
	}
	if update.Mandal != "" {
		out.Mandal = update.Mandal
	}
	if update.Category != "" {
		out.Category = update.Category
	}
	if update.Disability != nil {
		out.Disability = BoolPtr(*update.Disability)
	}
	if update.Occupation != "" {
		out.Occupation = update.Occupation
	}
	if update.LandHolding != "" {
		out.LandHolding = update.LandHolding
	}
	if update.VehiclesOwned != nil {
		out.VehiclesOwned = BoolPtr(*update.VehiclesOwned)
	}
	if update.HouseType != "" {
		out.HouseType = update.HouseType
	}
	if update.EducationQualification != "" {
		out.EducationQualification = update.EducationQualification
	}
	out.SchemaVersion = ProfileSchemaVersion
	return out
}

// IsEmpty reports whether no field was provided.
func (p Profile) IsEmpty() bool {
	blank := Profile{SchemaVersion: p.SchemaVersion}
	return p == blank
}

// HasAnyLandHolding reports whether a non-empty bracket was declared.
func (p Profile) HasAnyLandHolding() bool {
	return strings.TrimSpace(p.LandHolding) != ""
}

func IntPtr(v int) *int { return &v }

func BoolPtr(v bool) *bool { return &v }

// ProfileJSONSchema validates profile payloads at the worker and API boundary.
// Every field is optional so partial updates pass.
const ProfileJSONSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "maxLength": 200},
		"age": {"type": "integer", "minimum": 0, "maximum": 150},
		"gender": {"enum": ["male", "female", "other"]},
		"annualIncome": {"type": "integer", "minimum": 0},
		"familySize": {"type": "integer", "minimum": 1},
		"location": {"enum": ["Urban", "Rural"]},
		"district": {"type": "string"},
		"mandal": {"type": "string"},
		"category": {"enum": ["SC", "ST", "BC", "EBC", "Minority", "Brahmin", "EWS", "General"]},
		"disability": {"type": "boolean"},
		"occupation": {"enum": ["student", "employed", "unemployed", "farmer", "driver", "weaver", "daily worker", "fisherman", "housewife", "other"]},
		"landHolding": {"type": "string", "maxLength": 32},
		"vehiclesOwned": {"type": "boolean"},
		"houseType": {"enum": ["owned", "rented", "none"]},
		"educationQualification": {"enum": ["uneducated", "1-10", "inter", "bachelors", "masters"]},
		"schemaVersion": {"type": "integer"}
	},
	"additionalProperties": false
}`
