package fields

import (
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/umeldt/darwinsheet/internal/vocab"
)

// listHeaderRows is the number of rows at the top of a list file that are
// not values.
const listHeaderRows = 2

// Lists holds the allowed values for the gearType and sampleType columns.
type Lists struct {
	GearTypes   []string
	SampleTypes []string
}

// DefaultLists returns the lists used when no list files are configured.
func DefaultLists() Lists {
	return Lists{
		GearTypes: []string{
			"CTD w/bottles", "CTD w/o bottles", "Niskin bottle", "Multinet",
			"WP2 net", "Bongo net", "MIK net", "Beam trawl", "Pelagic trawl",
			"Box corer", "Multicorer", "Gravity corer", "Van Veen grab",
			"Ice corer", "Sediment trap", "Plankton pump", "Secchi disk",
			"Hand net", "Manual sampling", "Mooring",
		},
		SampleTypes: []string{
			"Water", "Seawater", "Sea ice", "Snow", "Sediment", "Filter",
			"Phytoplankton", "Zooplankton", "Fish", "Benthos", "Tissue",
			"Organism", "Ice algae", "Bacteria", "Meltpond water",
		},
	}
}

// LoadLists reads the gear and sample type lists from CSV files on fs. An
// empty path keeps the built-in list for that column.
func LoadLists(fs afero.Fs, gearTypesPath, sampleTypesPath string) (Lists, error) {
	lists := DefaultLists()
	var loadErrs *multierror.Error

	if gearTypesPath != "" {
		values, err := vocab.LoadList(fs, gearTypesPath, listHeaderRows)
		if err != nil {
			loadErrs = multierror.Append(loadErrs, err)
		} else {
			lists.GearTypes = values
		}
	}

	if sampleTypesPath != "" {
		values, err := vocab.LoadList(fs, sampleTypesPath, listHeaderRows)
		if err != nil {
			loadErrs = multierror.Append(loadErrs, err)
		} else {
			lists.SampleTypes = values
		}
	}

	return lists, loadErrs.ErrorOrNil()
}
