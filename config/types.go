package config

type SourceKind string

const (
	SourceKindXML      SourceKind = "xml"
	SourceKindCSV      SourceKind = "csv"
	SourceKindSQL      SourceKind = "sql"
	SourceKindDynamoDB SourceKind = "dynamodb"
	SourceKindParquet  SourceKind = "parquet"
)

// ColumnMapping names the fields of a report row that carry the logical
// coordinates and the value. Empty fields fall back to "row", "column", "value".
type ColumnMapping struct {
	Row    string `json:"row,omitempty"    yaml:"row,omitempty"    toml:"row,omitempty"`
	Column string `json:"column,omitempty" yaml:"column,omitempty" toml:"column,omitempty"`
	Value  string `json:"value,omitempty"  yaml:"value,omitempty"  toml:"value,omitempty"`
}

// ReportSourceConfig describes where report values come from.
type ReportSourceConfig struct {
	Name     string     `json:"name"               yaml:"name"               toml:"name"`
	Kind     SourceKind `json:"kind"               yaml:"kind"               toml:"kind"`
	Location string     `json:"location"           yaml:"location"           toml:"location"` // file path, table name or SELECT query
	Driver   string     `json:"driver,omitempty"   yaml:"driver,omitempty"   toml:"driver,omitempty"` // "mysql", "postgres", "sqlite3"
	DSN      string     `json:"dsn,omitempty"      yaml:"dsn,omitempty"      toml:"dsn,omitempty"`

	Columns ColumnMapping     `json:"columns,omitempty" yaml:"columns,omitempty" toml:"columns,omitempty"`
	Filter  map[string]string `json:"filter,omitempty"  yaml:"filter,omitempty"  toml:"filter,omitempty"`
}

// OutputConfig：where the merged workbook goes
type OutputConfig struct {
	Path     string `json:"path"               yaml:"path"               toml:"path"`
	S3Bucket string `json:"s3Bucket,omitempty" yaml:"s3Bucket,omitempty" toml:"s3Bucket,omitempty"`
	S3Prefix string `json:"s3Prefix,omitempty" yaml:"s3Prefix,omitempty" toml:"s3Prefix,omitempty"`
	Audit    string `json:"audit,omitempty"    yaml:"audit,omitempty"    toml:"audit,omitempty"` // parquet export of resolved writes
}

// MergeConfig：one merge job
type MergeConfig struct {
	Id         string            `json:"id"                   yaml:"id"                   toml:"id"`
	Name       string            `json:"name"                 yaml:"name"                 toml:"name"`
	Template   string            `json:"template"             yaml:"template"             toml:"template"`
	Sheet      string            `json:"sheet"                yaml:"sheet"                toml:"sheet"`
	Report     string            `json:"report"               yaml:"report"               toml:"report"` // name of a report source
	Output     OutputConfig      `json:"output"               yaml:"output"               toml:"output"`
	Parameters map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty" toml:"parameters,omitempty"`
}
