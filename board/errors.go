package board

// ConfigurationError reports bad builder input: a missing grouping key,
// a record the key is undefined for, or duplicate ids. It is returned
// synchronously and the caller is expected to fix its inputs and call
// Build again; there is nothing to retry.
type ConfigurationError struct {
	Message  string
	RecordID string // offending record id, when one is known
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.RecordID != "" {
		return "board: " + e.Message + " (record " + e.RecordID + ")"
	}
	return "board: " + e.Message
}
