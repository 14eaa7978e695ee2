package manifest

// FileName is the manifest's name inside a library directory.
const FileName = "extension.yaml"

// SchemaVersion is written into every manifest.
const SchemaVersion = 1

// Extension describes a generated wrapper library.
type Extension struct {
	SchemaVersion  int      `yaml:"schemaVersion" json:"schemaVersion"`
	Name           string   `yaml:"name" json:"name"`
	Title          string   `yaml:"title" json:"title"`
	Component      string   `yaml:"component" json:"component"`
	Tag            string   `yaml:"tag" json:"tag"`
	ExtensionSlots bool     `yaml:"extensionSlots" json:"extensionSlots"`
	Generator      string   `yaml:"generator" json:"generator"`
	Source         Source   `yaml:"source" json:"source"`
	Inputs         []string `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Outputs        []string `yaml:"outputs,omitempty" json:"outputs,omitempty"`
	Files          []string `yaml:"files" json:"files"`
}

// Source identifies the extended widget.
type Source struct {
	ID        string `yaml:"id" json:"id"`
	Package   string `yaml:"package" json:"package"`
	Version   string `yaml:"version,omitempty" json:"version,omitempty"`
	Module    string `yaml:"module" json:"module"`
	Component string `yaml:"component" json:"component"`
}
