package config

import (
	"fmt"
)

// Validator validates the configuration objects.
type Validator struct {
	Provider Provider
}

// NewValidator creates a new Validator.
func NewValidator(provider Provider) *Validator {
	return &Validator{Provider: provider}
}

// ValidateMergeConfig validates a job. The referenced report source is only
// checked when a Provider is set.
func (v *Validator) ValidateMergeConfig(job *MergeConfig) error {
	if job.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if job.Template == "" {
		return fmt.Errorf("job '%s' template is required", job.Name)
	}
	if job.Sheet == "" {
		return fmt.Errorf("job '%s' sheet is required", job.Name)
	}
	if job.Report == "" {
		return fmt.Errorf("job '%s' report source is required", job.Name)
	}
	if job.Output.Path == "" && job.Output.S3Bucket == "" {
		return fmt.Errorf("job '%s' needs an output path or an S3 bucket", job.Name)
	}
	if v.Provider != nil {
		if _, err := v.Provider.GetReportSource(job.Report); err != nil {
			return fmt.Errorf("job '%s' references unknown report source '%s'", job.Name, job.Report)
		}
	}
	return nil
}

// ValidateReportSource validates a ReportSourceConfig.
func (v *Validator) ValidateReportSource(src *ReportSourceConfig) error {
	if src.Name == "" {
		return fmt.Errorf("report source name is required")
	}
	if src.Location == "" {
		return fmt.Errorf("report source '%s' location is required", src.Name)
	}
	switch src.Kind {
	case SourceKindXML, SourceKindCSV, SourceKindParquet, SourceKindDynamoDB:
		// OK
	case SourceKindSQL:
		switch src.Driver {
		case "mysql", "postgres", "sqlite3":
		case "":
			return fmt.Errorf("report source '%s' driver is required", src.Name)
		default:
			return fmt.Errorf("report source '%s' has unsupported driver '%s'", src.Name, src.Driver)
		}
		if src.DSN == "" {
			return fmt.Errorf("report source '%s' DSN is required", src.Name)
		}
	case "":
		return fmt.Errorf("report source '%s' kind is required", src.Name)
	default:
		return fmt.Errorf("report source '%s' has invalid kind '%s'", src.Name, src.Kind)
	}
	return nil
}
