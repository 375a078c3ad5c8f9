package processor

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/umeldt/darwinsheet/internal/check"
	"github.com/umeldt/darwinsheet/internal/fields"
)

// Format is an output format of the displayer.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat checks that s names a known format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML:
		return f, nil
	case "":
		return Text, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "'%s'", s)
}

// Displayer writes reports for people (Text) or programs (JSON, YAML).
type Displayer struct {
	Format Format
	w      io.Writer
}

func NewDisplayer(w io.Writer, format Format) *Displayer {
	return &Displayer{Format: format, w: w}
}

func (d *Displayer) Apply(result *check.Result) error {
	switch d.Format {
	case JSON:
		return d.writeJSON(result)
	case YAML:
		return d.writeYAML(result)
	}
	d.printReport(result)
	return nil
}

func (d *Displayer) printReport(result *check.Result) {
	name := result.File
	if name == "" {
		name = "Sample log"
	}

	if result.Report.Passed {
		fmt.Fprintf(d.w, "%s passed the checks for setup '%s'\n", name, result.Setup)
		return
	}

	fmt.Fprintf(d.w, "%s failed the checks for setup '%s':\n", name, result.Setup)
	n := 0
	for _, line := range result.Report.Errors() {
		if line == check.DuplicateHeading {
			fmt.Fprintf(d.w, "%s%s\n", spaces(2), line)
			continue
		}
		n++
		fmt.Fprintf(d.w, "%s%d. %s\n", spaces(4), n, line)
	}
}

func (d *Displayer) writeJSON(v interface{}) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to encode json")
	}
	_, err = fmt.Fprintf(d.w, "%s\n", out)
	return err
}

func (d *Displayer) writeYAML(v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "unable to encode yaml")
	}
	_, err = d.w.Write(out)
	return err
}

// FieldView is how a field is listed to users.
type FieldView struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Rule        string `json:"rule" yaml:"rule"`
	Inherit     bool   `json:"inherit" yaml:"inherit"`
	Units       string `json:"units,omitempty" yaml:"units,omitempty"`
	DwcID       string `json:"dwcid,omitempty" yaml:"dwcid,omitempty"`
}

// ViewFields turns fields into their listing form.
func ViewFields(fs []fields.Field) []FieldView {
	views := make([]FieldView, len(fs))
	for i, f := range fs {
		views[i] = FieldView{
			Name:        f.Name,
			DisplayName: f.DisplayName,
			Rule:        f.Rule.String(),
			Inherit:     f.Inherit,
			Units:       f.Units,
			DwcID:       f.DwcID,
		}
	}
	return views
}

// ShowFields lists the fields of a catalogue.
func (d *Displayer) ShowFields(fs []fields.Field) error {
	views := ViewFields(fs)
	switch d.Format {
	case JSON:
		return d.writeJSON(views)
	case YAML:
		return d.writeYAML(views)
	}

	for _, v := range views {
		fmt.Fprintf(d.w, "%s (%s)\n", v.Name, v.DisplayName)
		fmt.Fprintf(d.w, "%sRule: %s\n", spaces(4), v.Rule)
		if v.Inherit {
			fmt.Fprintf(d.w, "%sInherited from parent events\n", spaces(4))
		}
		if v.Units != "" {
			fmt.Fprintf(d.w, "%sUnits: %s\n", spaces(4), v.Units)
		}
	}
	return nil
}
