package differ

// ContentSizeValidator validates content size against limits
type ContentSizeValidator struct {
	maxSizeBytes int
}

// NewContentSizeValidator creates a new content size validator. A limit of
// zero or less disables the check.
func NewContentSizeValidator(maxSizeBytes int) *ContentSizeValidator {
	return &ContentSizeValidator{
		maxSizeBytes: maxSizeBytes,
	}
}

// ValidateSize checks if both reports are within limits
func (csv *ContentSizeValidator) ValidateSize(residentText, attendingText string) error {
	if err := csv.validateSingleContent(residentText, "resident_text"); err != nil {
		return err
	}

	return csv.validateSingleContent(attendingText, "attending_text")
}

// validateSingleContent validates a single content size
func (csv *ContentSizeValidator) validateSingleContent(content string, fieldName string) error {
	if csv.maxSizeBytes > 0 && len(content) > csv.maxSizeBytes {
		return &InputTooLargeError{
			Field: fieldName,
			Size:  len(content),
			Limit: csv.maxSizeBytes,
		}
	}
	return nil
}
