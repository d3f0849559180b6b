package tools

import "os"

// CreateDirectoryIfDoesNotExist creates the given directory and any missing
// parents. Existing directories are left untouched.
func CreateDirectoryIfDoesNotExist(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return err
		}
	}
	return nil
}
