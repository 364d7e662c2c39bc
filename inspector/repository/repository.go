package repository

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project (typescript, javascript, git)
	Name         string // Name of the project (extracted from package.json)
	RelativePath string // Path from project root to the specified file
	ConfigPath   string // Check config file, empty if none was found
}
