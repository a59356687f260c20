package sendapplicationnotification

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"schemesathi/internal/models"
)

//go:embed templates.json
var defaultTemplates []byte

func loadTemplates(raw []byte) (map[models.NotificationType]template, error) {
	var out map[models.NotificationType]template
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for typ, t := range out {
		if t.Subject == "" || t.Body == "" {
			return nil, fmt.Errorf("template %s needs a subject and a body", typ)
		}
	}
	return out, nil
}

// renderTemplate replaces {{key}} with data[key]; unknown placeholders are removed.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		value := ""
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}
	return result
}
