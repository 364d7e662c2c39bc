package repository

import (
	"os"
	"path/filepath"
	"regexp"
)

// ConfigFiles lists check config file names, in lookup order
var ConfigFiles = []string{".rxguard.yaml", ".rxguard.yml"}

var nameRegex = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)

// Detector identifies project root folders and check config files
type Detector struct {
	// Project root marker files/directories
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"tsconfig.json", // TypeScript projects
			"package.json",  // JavaScript/Node projects
			"deno.json",     // Deno projects
			".git",          // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given path and locates the nearest config file
func (d *Detector) DetectProject(location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = extractJSPackageName(filepath.Join(info.RootPath, "package.json"))
	info.ConfigPath = d.findConfig(startDir, info.RootPath)
	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findConfig searches up from startDir to rootPath (inclusive) for a config file
func (d *Detector) findConfig(startDir, rootPath string) string {
	dir := startDir
	for {
		for _, name := range ConfigFiles {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if dir == rootPath || parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func determineProjectType(marker string) string {
	switch marker {
	case "tsconfig.json", "deno.json":
		return "typescript"
	case "package.json":
		return "javascript"
	case ".git":
		return "git"
	}
	return "unknown"
}

func extractJSPackageName(packageJsonPath string) string {
	data, err := os.ReadFile(packageJsonPath)
	if err != nil {
		return filepath.Base(filepath.Dir(packageJsonPath))
	}
	// Simple regex to extract the "name" field from package.json
	matches := nameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(filepath.Dir(packageJsonPath))
	}
	return string(matches[1])
}
