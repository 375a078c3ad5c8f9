// Package toktlog turns the activity dumps of the ship's cruise logger into
// a gear log dataset that can be written out as a sample log and checked.
// The JSON is read from files or readers, the logger is never contacted.
package toktlog

import (
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/umeldt/darwinsheet/internal/spreadsheet"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

// echoSounder is the NMEA identifier of the sentences holding the bottom
// depth measured by the echo sounder.
const echoSounder = "EKDBS"

// Columns of the gear log, in the order they are written.
var Columns = []string{
	"eventID",
	"gearType",
	"eventDate",
	"eventTime",
	"cruiseNumber",
	"stationName",
	"decimalLatitude",
	"decimalLongitude",
	"bottomDepthInMeters",
	"statID",
	"sampleDepthInMeters",
	"maximumDepthInMeters",
	"minimumDepthInMeters",
	"start_date",
	"end_date",
	"end_time",
	"endDecimalLatitude",
	"endDecimalLongitude",
	"eventRemarks",
	"samplingProtocol",
	"recordedBy",
	"pi_name",
	"pi_email",
	"pi_institution",
}

type Activity struct {
	ID                 string          `json:"id"`
	ActivityTypeName   string          `json:"activityTypeName"`
	StartTime          string          `json:"startTime"`
	EndTime            string          `json:"endTime"`
	StartPosition      *Position       `json:"startPosition"`
	EndPosition        *Position       `json:"endPosition"`
	SuperstationNumber interface{}     `json:"superstationNumber"`
	Comment            string          `json:"comment"`
	Fields             []ActivityField `json:"fields"`
}

// Position is a GeoJSON point, longitude first.
type Position struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// ActivityField is a value logged with an activity. ExtendedValue holds the
// instrument reading behind the value, when there is one.
type ActivityField struct {
	Name          string      `json:"name"`
	Value         interface{} `json:"value"`
	ExtendedValue interface{} `json:"extendedValue"`
}

type Cruise struct {
	CruiseNumber interface{} `json:"cruiseNumber"`
	VesselName   string      `json:"vesselName"`
}

// Decode reads the activity list and the cruise description.
func Decode(activities, cruise io.Reader) ([]Activity, *Cruise, error) {
	var acts []Activity
	if err := decode(activities, &acts); err != nil {
		return nil, nil, errors.Wrap(err, "unable to decode activities")
	}

	var c Cruise
	if err := decode(cruise, &c); err != nil {
		return nil, nil, errors.Wrap(err, "unable to decode cruise")
	}

	return acts, &c, nil
}

func decode(r io.Reader, v interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(data, v)
}

// ToDataset lays the activities out as gear log rows. An activity that can't
// be converted is reported in the returned error and left out, the others
// are still returned. Activities without an id get a new UUID.
func ToDataset(acts []Activity, cruise *Cruise) (*model.Dataset, error) {
	ds := &model.Dataset{
		Sheet:     spreadsheet.DataSheet,
		HeaderRow: spreadsheet.DefaultHeaderRow,
		Header:    append([]string(nil), Columns...),
	}

	cruiseNumber := model.EmptyCell()
	if cruise != nil && cruise.CruiseNumber != nil {
		n, err := cast.ToInt64E(cruise.CruiseNumber)
		if err != nil {
			return nil, errors.Wrapf(err, "cruise number '%v'", cruise.CruiseNumber)
		}
		cruiseNumber = model.IntCell(n)
	}

	var actErrs *multierror.Error
	for i, act := range acts {
		row, err := toRow(act, cruiseNumber)
		if err != nil {
			actErrs = multierror.Append(actErrs, errors.Wrapf(err, "activity %d (%s)", i+1, act.ID))
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, actErrs.ErrorOrNil()
}

func toRow(act Activity, cruiseNumber model.Cell) ([]model.Cell, error) {
	start, err := parseTimestamp(act.StartTime)
	if err != nil {
		return nil, errors.Wrap(err, "start time")
	}

	id := act.ID
	if id == "" {
		if id, err = uuid.GenerateUUID(); err != nil {
			return nil, err
		}
	}

	values := map[string]model.Cell{
		"eventID":      model.TextCell(id),
		"gearType":     text(act.ActivityTypeName),
		"eventDate":    dateOf(start),
		"eventTime":    model.TimeCell(clockOf(start)),
		"start_date":   dateOf(start),
		"cruiseNumber": cruiseNumber,
		"stationName":  stationName(act.Fields),
		"statID":       valueCell(act.SuperstationNumber),
		"eventRemarks": text(act.Comment),
	}

	if act.EndTime != "" {
		end, err := parseTimestamp(act.EndTime)
		if err != nil {
			return nil, errors.Wrap(err, "end time")
		}
		values["end_date"] = dateOf(end)
		values["end_time"] = model.TimeCell(clockOf(end))
	}

	if lon, lat, ok := act.StartPosition.lonLat(); ok {
		values["decimalLongitude"] = model.FloatCell(lon)
		values["decimalLatitude"] = model.FloatCell(lat)
	}
	if lon, lat, ok := act.EndPosition.lonLat(); ok {
		values["endDecimalLongitude"] = model.FloatCell(lon)
		values["endDecimalLatitude"] = model.FloatCell(lat)
	}

	if depth, ok := bottomDepth(act.Fields); ok {
		values["bottomDepthInMeters"] = model.FloatCell(depth)
	}

	row := make([]model.Cell, len(Columns))
	for i, name := range Columns {
		if c, ok := values[name]; ok {
			row[i] = c
		} else {
			row[i] = model.EmptyCell()
		}
	}
	return row, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "'%s' is not a timestamp", s)
	}
	return t.UTC(), nil
}

func dateOf(t time.Time) model.Cell {
	return model.DateCell(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// clockOf returns the time of day to the second.
func clockOf(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
}

func (p *Position) lonLat() (float64, float64, bool) {
	if p == nil || len(p.Coordinates) < 2 {
		return 0, 0, false
	}
	return p.Coordinates[0], p.Coordinates[1], true
}

// stationName is the value of the first field whose name mentions a
// station.
func stationName(fs []ActivityField) model.Cell {
	for _, f := range fs {
		if strings.Contains(strings.ToLower(f.Name), "station") {
			return valueCell(f.Value)
		}
	}
	return model.EmptyCell()
}

// bottomDepth averages the echo sounder depths logged with the activity.
// The sounder reports 0 when the bottom is out of range and the odd spike,
// so only readings between 0 and 10000 m count.
func bottomDepth(fs []ActivityField) (float64, bool) {
	var sum float64
	var n int
	for _, f := range fs {
		ext, ok := f.ExtendedValue.(map[string]interface{})
		if !ok {
			continue
		}
		mapping, _ := ext["mapping"].(map[string]interface{})
		if cast.ToString(mapping["nmeaIdentifier"]) != echoSounder {
			continue
		}
		depth, ok := ext["result"].(float64)
		if !ok || depth <= 0 || depth >= 1e4 {
			continue
		}
		sum += depth
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func text(s string) model.Cell {
	if strings.TrimSpace(s) == "" {
		return model.EmptyCell()
	}
	return model.TextCell(s)
}

// valueCell converts a decoded JSON value into a cell.
func valueCell(v interface{}) model.Cell {
	switch val := v.(type) {
	case nil:
		return model.EmptyCell()
	case float64:
		if val == float64(int64(val)) {
			return model.IntCell(int64(val))
		}
		return model.FloatCell(val)
	case string:
		return text(val)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return model.EmptyCell()
	}
	return text(s)
}
