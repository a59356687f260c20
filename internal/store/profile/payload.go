package profile

import (
	"encoding/json"
	"fmt"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/validation"
	"schemesathi/internal/models"
)

var payloadSchema = validation.MustCompile(models.ProfileJSONSchema)

// ParsePayload validates a (possibly partial) profile document from a client.
func ParsePayload(raw []byte) (models.Profile, error) {
	if len(raw) == 0 {
		return models.Profile{}, errors.NewValidationError("profile is required")
	}
	if res := payloadSchema.ValidateBytes(raw); !res.Valid {
		return models.Profile{}, errors.NewValidationError(res.Error())
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Profile{}, errors.NewValidationError(fmt.Sprintf("decode profile: %v", err))
	}
	p.SchemaVersion = models.ProfileSchemaVersion
	return p, nil
}
