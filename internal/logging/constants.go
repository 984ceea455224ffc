package logging

// Standardized field names for structured logging. These constants keep the
// log output consistent across the extraction pipeline.
const (
	FieldFile       = "file"
	FieldDocument   = "document"
	FieldPage       = "page"
	FieldCount      = "count"
	FieldRecords    = "records"
	FieldLookup     = "lookup_file"
	FieldKey        = "abbrev_key"
	FieldSheet      = "sheet"
	FieldOutputFile = "output_file"
	FieldInputDir   = "input_dir"
)
