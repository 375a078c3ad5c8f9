package config

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownSetup is returned when a setup name is not configured.
var ErrUnknownSetup = errors.New("unknown setup")

// Setup is a named set of checking policies for one kind of sample log.
type Setup struct {
	Name string `mapstructure:"name" json:"name" yaml:"name"`

	// Required lists the fields that must have a column in the Data sheet.
	Required []string `mapstructure:"required" json:"required" yaml:"required"`

	// ExtraSheets lists the worksheets besides Data that are checked. Only
	// "metadata" is understood.
	ExtraSheets []string `mapstructure:"extrasheet" json:"extrasheet,omitempty" yaml:"extrasheet,omitempty"`

	// EventGraph turns on the eventID/parentEventID checks and the
	// requiredness rules that depend on where a row sits in the event tree.
	EventGraph bool `mapstructure:"event_graph" json:"event_graph" yaml:"event_graph"`

	// GearColumn names the column holding the gear used for an event.
	// GearExempt lists fields a root event does not need when it names a
	// gear. A root event without a gear is taken to be a sample that lost
	// its parent.
	GearColumn string   `mapstructure:"gear_column" json:"gear_column,omitempty" yaml:"gear_column,omitempty"`
	GearExempt []string `mapstructure:"gear_exempt" json:"gear_exempt,omitempty" yaml:"gear_exempt,omitempty"`
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (s Setup) IsRequired(name string) bool {
	return contains(s.Required, name)
}

func (s Setup) IsGearExempt(name string) bool {
	return contains(s.GearExempt, name)
}

// WantsSheet reports whether sheet is one of the extra sheets to check.
func (s Setup) WantsSheet(sheet string) bool {
	return contains(s.ExtraSheets, sheet)
}

// DefaultSetups returns the built in setups. "aen" is the cruise sample log
// with its event tree and metadata sheet, "darwin" a flat Darwin Core
// occurrence sheet.
func DefaultSetups() map[string]Setup {
	return map[string]Setup{
		"aen": {
			Name: "aen",
			Required: []string{
				"eventID",
				"cruiseNumber",
				"stationName",
				"eventTime",
				"eventDate",
				"decimalLatitude",
				"decimalLongitude",
				"bottomDepthInMeters",
				"eventRemarks",
				"samplingProtocol",
				"parentEventID",
				"sampleLocation",
				"pi_name",
				"pi_email",
				"pi_institution",
				"recordedBy",
				"sampleType",
			},
			ExtraSheets: []string{"metadata"},
			EventGraph:  true,
			GearColumn:  "gearType",
			GearExempt:  []string{"sampleType", "sampleLocation"},
		},
		"darwin": {
			Name: "darwin",
			Required: []string{
				"eventID",
				"eventDate",
				"decimalLatitude",
				"decimalLongitude",
				"scientificName",
				"recordedBy",
			},
		},
	}
}

// Setups holds the setups known to the program.
type Setups map[string]Setup

// Get returns the setup called name.
func (s Setups) Get(name string) (Setup, error) {
	setup, ok := s[name]
	if !ok {
		return Setup{}, errors.Wrapf(ErrUnknownSetup, "'%s'", name)
	}
	return setup, nil
}

// Names returns the setup names in sorted order.
func (s Setups) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
