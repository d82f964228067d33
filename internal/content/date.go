package content

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DateField is one endpoint of a role's date range. It is either a plain
// string, shown as-is and used as its own datetime token, or a structured
// label/dateTime pair. A structured field marked current takes its
// dateTime from the clock when the roles are materialised.
type DateField struct {
	text       string
	label      string
	dateTime   string
	current    bool
	structured bool
}

// Plain returns a DateField whose label and datetime token are both s.
func Plain(s string) DateField {
	return DateField{text: s}
}

// At returns a structured DateField.
func At(label, dateTime string) DateField {
	return DateField{label: label, dateTime: dateTime, structured: true}
}

// Current returns a structured DateField whose datetime token is the
// current year, resolved by Materialize.
func Current(label string) DateField {
	return DateField{label: label, current: true, structured: true}
}

// Resolve derives the display label and the machine-readable datetime token.
func (d DateField) Resolve() (label, dateTime string) {
	if !d.structured {
		return d.text, d.text
	}
	return d.label, d.dateTime
}

// Label returns the display label.
func (d DateField) Label() string {
	label, _ := d.Resolve()
	return label
}

// DateTime returns the datetime token.
func (d DateField) DateTime() string {
	_, dateTime := d.Resolve()
	return dateTime
}

// Structured reports whether the field is a label/dateTime pair.
func (d DateField) Structured() bool { return d.structured }

// IsCurrent reports whether the field tracks the current year.
func (d DateField) IsCurrent() bool { return d.current }

// Materialize fills a current field's datetime token with now's year.
// Other fields are returned unchanged.
func (d DateField) Materialize(now time.Time) DateField {
	if !d.current {
		return d
	}
	return At(d.label, strconv.Itoa(now.Year()))
}

type dateFieldYAML struct {
	Label    string `yaml:"label"`
	DateTime string `yaml:"dateTime"`
	Current  bool   `yaml:"current"`
}

// UnmarshalYAML accepts either a scalar or a {label, dateTime, current} mapping.
func (d *DateField) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*d = Plain(value.Value)
		return nil
	case yaml.MappingNode:
		var raw dateFieldYAML
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*d = DateField{
			label:      raw.Label,
			dateTime:   raw.DateTime,
			current:    raw.Current,
			structured: true,
		}
		return nil
	default:
		return fmt.Errorf("line %d: date must be a string or a {label, dateTime} mapping", value.Line)
	}
}
