package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"schemesathi/internal/models"
)

// legacyKeys maps field names written by older clients to the canonical names.
var legacyKeys = map[string]string{
	"casteCategory":        "category",
	"socialCategory":       "category",
	"housingStatus":        "houseType",
	"highestQualification": "educationQualification",
	"education":            "educationQualification",
	"employmentStatus":     "occupation",
	"hasVehicle":           "vehiclesOwned",
	"income":               "annualIncome",
	"isDisabled":           "disability",
}

var (
	intFields  = map[string]bool{"age": true, "annualIncome": true, "familySize": true}
	boolFields = map[string]bool{"disability": true, "vehiclesOwned": true}
)

var categoryCanon = map[string]models.SocialCategory{
	"sc":       models.CategorySC,
	"st":       models.CategoryST,
	"bc":       models.CategoryBC,
	"ebc":      models.CategoryEBC,
	"minority": models.CategoryMinority,
	"brahmin":  models.CategoryBrahmin,
	"ews":      models.CategoryEWS,
	"general":  models.CategoryGeneral,
	"oc":       models.CategoryGeneral,
}

var houseCanon = map[string]models.HouseType{
	"owned":    models.HouseOwned,
	"own":      models.HouseOwned,
	"rented":   models.HouseRented,
	"rent":     models.HouseRented,
	"none":     models.HouseNone,
	"homeless": models.HouseNone,
}

// Migrate converts a stored profile document of any known shape into the canonical Profile.
// Unknown keys are dropped; values that cannot be converted are treated as not provided.
func Migrate(doc []byte) (models.Profile, error) {
	if len(bytes.TrimSpace(doc)) == 0 {
		return models.Profile{SchemaVersion: models.ProfileSchemaVersion}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return models.Profile{}, fmt.Errorf("decode stored profile: %w", err)
	}

	canonical := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		name := key
		if renamed, ok := legacyKeys[key]; ok {
			name = renamed
			// A canonical key written alongside the legacy one wins.
			if _, exists := raw[name]; exists {
				continue
			}
		}
		if v, ok := normalize(name, value); ok {
			canonical[name] = v
		}
	}

	buf, err := json.Marshal(canonical)
	if err != nil {
		return models.Profile{}, fmt.Errorf("encode canonical profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal(buf, &p); err != nil {
		return models.Profile{}, fmt.Errorf("decode canonical profile: %w", err)
	}
	p.SchemaVersion = models.ProfileSchemaVersion
	return p, nil
}

func normalize(field string, value interface{}) (interface{}, bool) {
	switch {
	case intFields[field]:
		return toInt(value)
	case boolFields[field]:
		return toBool(value)
	case field == "schemaVersion":
		return nil, false
	}

	s, ok := value.(string)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	switch field {
	case "gender", "occupation":
		return strings.ToLower(s), true
	case "location":
		return strings.ToUpper(s[:1]) + strings.ToLower(s[1:]), true
	case "category":
		if c, ok := categoryCanon[strings.ToLower(s)]; ok {
			return string(c), true
		}
		return s, true
	case "houseType":
		if h, ok := houseCanon[strings.ToLower(s)]; ok {
			return string(h), true
		}
		return strings.ToLower(s), true
	case "educationQualification":
		return strings.ToLower(s), true
	case "name", "district", "mandal", "landHolding":
		return s, true
	}
	return nil, false
}

func toInt(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return int64(f), true
		}
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if i, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
			return i, true
		}
	}
	return nil, false
}

func toBool(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	case json.Number:
		return v.String() != "0", true
	}
	return nil, false
}
