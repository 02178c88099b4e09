package logging

// Standardized field names for structured logging. Keeping them in one place
// makes log output consistent across pipeline stages and easy to filter.
const (
	FieldFile       = "file_path"
	FieldStage      = "stage"
	FieldCity       = "city"
	FieldCountry    = "country"
	FieldQuery      = "query"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldDropped    = "dropped"
	FieldDuration   = "duration_ms"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldDelimiter  = "delimiter"
)
