package form

import (
	"html/template"

	"github.com/xy-planning-network/dbenum"
)

// FuncMap exposes enumerations registered in reg to templates.
// If reg is nil, the default registry is used.
//
//   - "enumLabel" returns the label for a value: {{ enumLabel "Status" .Status }}
//   - "enumChoices" returns the ordered choices: {{ range enumChoices "Status" }}...{{ end }}
func FuncMap(reg *dbenum.Registry) template.FuncMap {
	if reg == nil {
		reg = dbenum.Default()
	}

	return template.FuncMap{
		"enumLabel": func(name string, value any) (string, error) {
			def, err := reg.Lookup(name)
			if err != nil {
				return "", err
			}

			v, err := def.StorageValue(value)
			if err != nil || v == nil {
				return "", err
			}

			return def.Label(v.(string))
		},
		"enumChoices": func(name string) ([]dbenum.Choice, error) {
			def, err := reg.Lookup(name)
			if err != nil {
				return nil, err
			}

			return def.Choices(), nil
		},
	}
}
