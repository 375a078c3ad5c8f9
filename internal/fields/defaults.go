package fields

import "time"

const (
	dwcTerms = "http://rs.tdwg.org/dwc/terms/"
	nercP01  = "http://vocab.nerc.ac.uk/collection/P01/current/"
	nercP07  = "http://vocab.nerc.ac.uk/collection/P07/current/"
	nercP09  = "http://vocab.nerc.ac.uk/collection/P09/current/"
	nercP35  = "http://vocab.nerc.ac.uk/collection/P35/current/"
)

var (
	uuidRule  = Length{Compared(Eq, 36)}
	dateRule  = Date{Bounded(FixedDate(2000, time.January, 1), Today(2))}
	timeRule  = Time{Bounded(TimeOfDayFromDays(0), TimeOfDayFromDays(0.9999999))}
	latRule   = Decimal{Bounded(-90.0, 90.0)}
	lonRule   = Decimal{Bounded(-180.0, 180.0)}
	depthRule = Decimal{Bounded(0.0, 9999.0)}
	coreRule  = Decimal{Bounded(0.0, 3000.0)}
	phRule    = Decimal{Bounded(-2.0, 16.0)}
	countRule = Integer{Compared[int64](Gt, 0)}
)

func atLeast(v float64) Decimal {
	return Decimal{Compared(Ge, v)}
}

func above(v float64) Decimal {
	return Decimal{Compared(Gt, v)}
}

// CruiseNumbers and VesselNames are the values accepted in the cruiseNumber
// and vesselName columns.
var (
	CruiseNumbers = []string{
		"2018616", "2018791", "2018707", "2018709", "2018710",
		"2019616", "2019706", "2019710", "2019711", "2020113",
		"2021604", "2021702", "2021703", "2021704", "2021708",
		"2021710", "2021713",
	}
	VesselNames = []string{"Kronprins Haakon", "G.O.Sars", "Kristine Bonnevie"}
)

// Defaults returns the static field declarations. The gear and sample type
// columns take their allowed values from lists.
func Defaults(lists Lists) []Field {
	return []Field{
		// Identifiers
		field("eventID", "Event ID", uuidRule).dwc(dwcTerms + "eventID"),
		field("parentEventID", "Parent event UUID", uuidRule).dwc(dwcTerms + "parentEventID"),
		field("cruiseNumber", "Cruise number", List{CruiseNumbers}).inherit(),
		field("vesselName", "Vessel name", List{VesselNames}).inherit(),
		field("statID", "Local Station ID", Any{}).inherit(),
		field("stationName", "Station Name", Any{}).inherit(),

		// Time and date
		field("eventDate", "Date", dateRule).inherit().dwc(dwcTerms + "eventDate"),
		field("start_date", "Start Date", dateRule).inherit(),
		field("middle_date", "Middle Date", dateRule).inherit(),
		field("end_date", "End Date", dateRule).inherit(),
		field("eventTime", "Time (UTC)", timeRule).inherit().dwc(dwcTerms + "eventTime"),
		field("middle_time", "Middle Time", timeRule).inherit(),
		field("end_time", "End Time", timeRule).inherit(),

		// Position
		field("decimalLatitude", "Latitude", latRule).inherit().units("degrees_north").dwc(dwcTerms + "decimalLatitude"),
		field("decimalLongitude", "Longitude", lonRule).inherit().units("degree_east").dwc(dwcTerms + "decimalLongitude"),
		field("endDecimalLatitude", "End Latitude", latRule).inherit().units("degrees_north"),
		field("endDecimalLongitude", "End Longitude", lonRule).inherit().units("degree_east"),
		field("middleDecimalLatitude", "Middle Latitude", latRule).inherit().units("degrees_north"),
		field("middleDecimalLongitude", "Middle Longitude", lonRule).inherit().units("degree_east"),
		field("shipSpeedInMetersPerSecond", "Ship Speed (m/s)", atLeast(0)).inherit().units("m/s"),

		// Depths and elevations
		field("bottomDepthInMeters", "Bottom Depth (m)", atLeast(0)).inherit().units("m").measurement(nercP01 + "MBANZZ01/"),
		field("sampleDepthInMeters", "Sample Depth (m)", atLeast(0)).inherit().units("m"),
		field("maximumDepthInMeters", "Maximum depth(m)", depthRule).weak().units("m").dwc(dwcTerms + "maximumDepthInMeters"),
		field("minimumDepthInMeters", "Minimum depth (m)", depthRule).weak().units("m").dwc(dwcTerms + "minimumDepthInMeters"),
		field("altitudeInMeters", "Altitude (m)", atLeast(0)).inherit().units("m"),
		field("maximumElevationInMeters", "Maximum elevation(m)", atLeast(0)).weak().units("m").dwc(dwcTerms + "maximumElevationInMeters"),
		field("minimumElevationInMeters", "Minimum elevation(m)", atLeast(0)).weak().units("m").dwc(dwcTerms + "minimumElevationInMeters"),
		field("sedimentCoreLengthInMeters", "Sediment Core Length (m)", atLeast(0)).units("m"),
		field("sedimentCoreMaximumDepthInCentiMeters", "Sediment Core Maximum Depth (cm)", coreRule).units("cm"),
		field("sedimentCoreMinimumDepthInCentiMeters", "Sediment Core Minimum Depth (cm)", coreRule).units("cm"),

		// Descriptions and remarks
		field("colour", "Colour", Any{}),
		field("smell", "Smell", Any{}),
		field("description", "Description", Any{}),
		field("eventRemarks", "Event Remarks", Any{}).dwc(dwcTerms + "eventRemarks"),
		field("fieldNotes", "Field Notes", Any{}).dwc(dwcTerms + "fieldNotes"),
		field("occurrenceRemarks", "Occurrence Remarks", Any{}).dwc(dwcTerms + "occurrenceRemarks"),
		field("recordedBy", "Recorded By", Any{}).dwc(dwcTerms + "recordedBy"),
		field("recordNumber", "Record Number", Any{}).dwc(dwcTerms + "recordNumber"),

		// Sample handling
		field("individualCount", "Individual Count", countRule).units("1").dwc(dwcTerms + "individualCount"),
		field("storageTemp", "Storage temp", List{[]string{"neg 196 C (LN)", "neg 80 C", "neg 20 C", "Cool room", "Room temp"}}),
		field("incubationTemperatureInCelsius", "Incubation Temperature (C)", above(-10)).units("Celsius"),
		field("fixative", "Fixative", Any{}),
		field("bottleNumber", "Bottle Number", countRule).inherit(),
		field("sampleLocation", "Sample Location", Any{}),
		field("dilution_factor", "Dilution factor", countRule),
		field("filter", "Filter", List{[]string{"None", "GFF", "10 µm"}}),
		field("filteredVolumeInMilliliters", "Filtered volume (mL)", above(0)),
		field("methanol_vol", "Methanol volume (mL)", countRule).units("mL"),
		field("sampleVolumeInMilliliters", "Sample volume (mL)", above(0)).units("mL"),
		field("subsample_vol", "Subsample volume (mL)", countRule).units("mL"),
		field("subsample_number", "Number of subsamples", countRule),
		field("sample_owner", "Sample Owner", Any{}),

		// Project and people
		field("title", "Title", Any{}),
		field("abstract", "Abstract", Any{}),
		field("pi_name", "Principal investigator (PI)", Any{}),
		field("pi_email", "PI email", Any{}),
		field("pi_institution", "PI institution", Any{}),
		field("pi_address", "PI address", Any{}),
		field("project_long", "Project long name", Any{}),
		field("project_short", "Project short name", Any{}),
		field("projectID", "Project ID", Any{}),

		// Taxonomy
		field("Taxon", "Taxon", Any{}).dwc(dwcTerms + "Taxon"),
		field("phylum", "Phylum", Any{}).dwc(dwcTerms + "phylum"),
		field("sex", "Sex", Any{}).dwc(dwcTerms + "sex"),
		field("class", "Class", Any{}).dwc(dwcTerms + "class"),
		field("order", "Order", Any{}).dwc(dwcTerms + "order"),
		field("family", "Family", Any{}).dwc(dwcTerms + "family"),
		field("scientificName", "Scientific Name", Any{}).dwc(dwcTerms + "scientificName"),

		// Gear and samples
		field("dataFilename", "Data filename", Any{}),
		field("serialNumber", "Serial Number", Any{}).measurement(nercP01 + "SERNUMZZ/"),
		field("samplingProtocol", "Sampling protocol", Any{}),
		field("gearType", "Gear Type", List{lists.GearTypes}).inherit(),
		field("sampleType", "Sample Type", List{lists.SampleTypes}),
		field("tissueType", "Tissue Type", Any{}).measurement("http://vocab.nerc.ac.uk/collection/S12/current/S1225/"),
		field("intendedMethod", "Intended Method", Any{}),
		field("instrument", "Instrument Name", Any{}),
		field("objective", "Objective", Any{}),
		field("risID", "RISID", Any{}),

		// Sea ice
		field("seaIceCoreType", "Sea Ice Core Type", Any{}),
		field("seaIceCoreLengthInMeters", "Sea Ice Core Length (cm)", above(0)).units("cm"),
		field("seaIceCoreMaximumDepthInCentiMeters", "Sea Ice Core Maximum Depth (cm)", coreRule).units("cm"),
		field("seaIceCoreMinimumDepthInCentiMeters", "Sea Ice Core Minimum Depth (cm)", coreRule).units("cm"),
		field("seaIceThicknessInMeters", "Sea Ice Thickness (cm)", above(0)).units("cm").measurement(nercP07 + "CFSN0369/"),
		field("seaIceFreeboardInMeters", "Sea Ice Freeboard (cm)", above(0)).units("cm").measurement(nercP07 + "CFSN0365/"),
		field("seaIceCoreTemperatureInCelsius", "Sea Ice Core Temperature (C)", above(-40)).units("Celsius"),
		field("seaIceMeltpondTemperatureInCelsius", "Sea Ice Meltpond Temperature (C)", above(-10)).units("Celsius"),
		field("seaIceMeltpondSalinity", "Sea Ice Meltpond Salinity (1e-3)", atLeast(0)).units("1e-3"),

		// Sea water
		field("seaWaterTemperatueInCelsius", "Sea Water Temp (C)", above(-10)).inherit().units("Celsius").measurement(nercP07 + "CFSN0335/"),
		field("seaWaterPracticalSalinity", "Sea Water Practical Salinity (1)", atLeast(0)).inherit().units("1").measurement(nercP07 + "IADIHDIJ/"),
		field("seaWaterAbsoluteSalinity", "Sea Water Absolute Salinity (g/kg)", atLeast(0)).inherit().units("g kg-1").measurement(nercP07 + "JIBGDIEJ/"),
		field("seaWaterElectricalConductivity", "Sea Water Conductivity (S/m)", atLeast(0)).inherit().units("s m-1").measurement(nercP07 + "CFSN0394/"),
		field("seaWaterPressure", "Sea Water Pressure (dbar)", above(0)).inherit().units("dbar").measurement(nercP07 + "CFSN0330/"),

		// Pigments
		field("seaWaterChlorophyllA", "Sea Chl A (mg/m^3)", atLeast(0)).units("mg m-3").measurement(nercP07 + "CF14N7/"),
		field("seaWaterPhaeopigment", "Sea Phaeo (mg/m^3)", above(0)).units("mg m-3"),
		field("seaIceChlorophyllA", "Ice Chl A (mg/m^3)", atLeast(0)).units("mg m-3"),
		field("seaIcePhaeopigment", "Ice Phaeo (mg/m^3)", above(0)).units("mg m-3"),
		field("sedimentChlorophyllA", "Sediment Chl A (mg/m^3)", atLeast(0)).units("mg m-3").measurement(nercP09 + "CHAS/"),
		field("sedimentPhaeopigment", "Sediment Phaeo (mg/m^3)", above(0)).units("mg m-3"),

		// Chemistry
		field("sedimentPH", "Sediment pH  (total scale)", phRule).units("1").measurement(nercP35 + "EPC00136/"),
		field("sedimentTOC", "Sediment TOC (mg/L)", atLeast(0)).units("mg L-1").measurement(nercP09 + "TOCS/"),
		field("sedimentTN", "Sediment TN (mg/L)", atLeast(0)).units("mg L-1").measurement(nercP09 + "TNNS/"),
		field("benthicRespiration", "Benthic Respiration (mmol/m^2)", atLeast(0)).units("mmol m-2"),
		field("seaWaterTotalDIC", "Sea DIC (umol/kg)", atLeast(0)).units("umol kg-1").measurement(nercP07 + "CF14N27/"),
		field("seaIceTotalDIC", "Ice DIC (umol/kg)", atLeast(0)).units("umol kg-1"),
		field("seaWaterDeltaO18", "Sea delta-O-18 (1e-3)", atLeast(0)).units("1e-3").measurement(nercP09 + "OXIR/"),
		field("seaIceDeltaO18", "Ice delta-O-18 (1e-3)", atLeast(0)).units("1e-3").measurement(nercP09 + "OXIR/"),
		field("seaWaterPH", "Sea Water pH  (total scale)", phRule).units("1").measurement(nercP07 + "CF14N56/"),
		field("seaWaterAlkalinity", "Total Alkalinity (umol/kg)", atLeast(0)).units("umol kg-1").measurement(nercP01 + "MDMAP014/"),
		field("seaWaterTOC", "TOC (mg/L)", atLeast(0)).units("mg L-1").measurement(nercP09 + "TOCW/"),
		field("seaWaterPON", "PON (ug/L)", atLeast(0)).units("ug L-1").measurement(nercP35 + "EPC00212/"),
		field("seaWaterPOC", "POC (ug/L)", atLeast(0)).units("ug L-1").measurement(nercP35 + "EPC00157/"),

		// Biology
		field("weightInGrams", "Weight (g)", above(0)).units("g").measurement("http://vocab.nerc.ac.uk/collection/P21/current/MS6179/"),
		field("gonadWeightInGrams", "Gonad Weight (g)", above(0)).units("g"),
		field("liverWeightInGrams", "Liver Weight (g)", above(0)).units("g"),
		field("somaticWeightInGrams", "Somatic Weight (g)", above(0)).units("g"),
		field("forkLengthInMeters", "Fork length (cm)", above(0)).units("cm"),
		field("totalFishLengthInMeters", "Total fish length (cm)", above(0)).units("cm"),
		field("lengthInMeters", "Length (m)", above(0)).units("m"),
		field("maturationStage", "Maturation Stage", Decimal{Bounded(0.0, 7.0)}).units("1").measurement("http://vocab.nerc.ac.uk/collection/S11/current/"),
		field("ectoparasites", "Ectoparasites", Integer{Bounded[int64](0, 1)}).units("1"),
		field("endoparasites", "Endoparasites", Integer{Bounded[int64](0, 1)}).units("1"),
	}
}
