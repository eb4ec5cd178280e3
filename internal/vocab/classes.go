package vocab

import "strings"

// extensionClasses maps file extensions to the WDO classes an uploaded
// asset of that kind is typed with.
var extensionClasses = map[string][]string{
	".py":   {"PythonSourceCodeFile"},
	".js":   {"JavaScriptSourceCodeFile"},
	".ts":   {"TypeScriptSourceCodeFile"},
	".jsx":  {"ReactSourceCodeFile"},
	".tsx":  {"ReactSourceCodeFile"},
	".java": {"JavaSourceCodeFile"},
	".cpp":  {"CppSourceCodeFile"},
	".c":    {"CSourceCodeFile"},
	".css":  {"CSSFile"},
	".scss": {"SCSSFile"},
	".html": {"HTMLFile"},
	".md":   {"DocumentationFile"},
	".txt":  {"DocumentationFile"},
	".rst":  {"DocumentationFile"},
	".json": {"ConfigurationFile"},
	".yml":  {"ConfigurationFile"},
	".yaml": {"ConfigurationFile"},
	".toml": {"ConfigurationFile"},
	".svg":  {"AssetFile"},
	".png":  {"AssetFile"},
	".jpg":  {"AssetFile"},
	".jpeg": {"AssetFile"},
}

var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true,
	".tsx": true, ".java": true, ".cpp": true, ".c": true,
}

// ClassesForFile suggests WDO class local names for a file extension.
// Every asset is at least a DigitalInformationCarrier; source files also
// get the generic SourceCodeFile class.
func ClassesForFile(extension string) []string {
	ext := strings.ToLower(extension)

	var classes []string
	classes = append(classes, extensionClasses[ext]...)
	if codeExtensions[ext] {
		classes = append(classes, "SourceCodeFile")
	}
	classes = append(classes, ClassDigitalInformationCarrier)
	return classes
}
