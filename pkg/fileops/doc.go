// Package fileops provides the read-side file checks used when locating and
// loading data files.
//
// # Locating a file
//
// Candidate locations are normalized with UniquePaths, which expands a
// leading "~", cleans each path and drops blanks and duplicates. FileExists
// then reports whether a candidate names a regular file; directories do not
// count.
//
// # Validating before reading
//
// Check readability first, then size:
//
//	if err := fileops.ValidateFileReadable(path); err != nil {
//	    return fmt.Errorf("data file not accessible: %w", err)
//	}
//	if err := fileops.ValidateFileSizeLimit(path, 10*1024*1024); err != nil {
//	    return fmt.Errorf("data file rejected: %w", err)
//	}
//
//	content, err := os.ReadFile(path)
//
// Relative paths, including ones that climb out of the working directory,
// are accepted as given.
package fileops
