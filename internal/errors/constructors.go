package errors

// Convenience functions for common error patterns

// Folder and listing errors

func FolderNotFound(path string) *RotatorError {
	return New(CategoryFolder, SeverityFatal, "wallpaper folder not found").
		WithContext("path", path)
}

func FolderNotDirectory(path string) *RotatorError {
	return New(CategoryFolder, SeverityFatal, "wallpaper folder is not a directory").
		WithContext("path", path)
}

func ListingFailed(path string, cause error) *RotatorError {
	return Wrap(cause, CategoryImages, SeverityError, "reading wallpaper folder failed").
		WithContext("path", path)
}

func NoImagesFound(path string) *RotatorError {
	return New(CategoryImages, SeverityWarning, "no images found in folder").
		WithContext("path", path)
}

// State errors

func StatePersistFailed(path string, cause error) *RotatorError {
	return Wrap(cause, CategoryState, SeverityWarning, "saving rotation state failed").
		WithContext("path", path)
}

// Order validation

func InvalidOrder(value string) *RotatorError {
	return New(CategoryOrder, SeverityError, "invalid rotation order").
		WithContext("value", value)
}

// Desktop application errors

func HelperTimeout(cause error) *RotatorError {
	return WrapRetryable(cause, CategoryHelper, SeverityWarning, "multi-desktop helper timed out")
}

func ApplyFailed(path string) *RotatorError {
	return New(CategoryApply, SeverityError, "setting wallpaper failed on all strategies").
		WithContext("path", path)
}

// Config errors

func ConfigInvalid(path string, cause error) *RotatorError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

// History journal errors

func HistoryError(operation string, cause error) *RotatorError {
	return Wrap(cause, CategoryStorage, SeverityWarning, "rotation history operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *RotatorError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
