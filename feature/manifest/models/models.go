package models

// OS identifies an operating system a file override can target.
type OS string

const (
	OSWindows OS = "windows"
	OSMac     OS = "mac"
	OSLinux   OS = "linux"
)

// AllOS is the full enumerated OS set that override coverage is checked against.
var AllOS = []OS{OSWindows, OSMac, OSLinux}

// IsValid reports whether o is one of AllOS.
func (o OS) IsValid() bool {
	switch o {
	case OSWindows, OSMac, OSLinux:
		return true
	default:
		return false
	}
}

// Manifest is the root of an install manifest.
type Manifest struct {
	Version *int  `json:"version,omitempty"`
	Mods    []Mod `json:"mods"`
}

// Mod is one installable mod (e.g. a game chapter) with its variants.
type Mod struct {
	Name         string        `json:"name"`
	Family       *string       `json:"family,omitempty"`
	Target       *string       `json:"target,omitempty"`
	DataName     *string       `json:"dataName,omitempty"`
	Identifiers  []string      `json:"identifiers,omitempty"`
	Submods      []Submod      `json:"submods"`
	OptionGroups []OptionGroup `json:"modOptionGroups,omitempty"`
}

// Submod is an installable variant of a Mod.
type Submod struct {
	Name          string         `json:"name"`
	DescriptionID *string        `json:"descriptionID,omitempty"`
	Files         []File         `json:"files"`
	FileOverrides []FileOverride `json:"fileOverrides"`
}

// File is a download belonging to a Submod. A nil URL means an override must supply it.
type File struct {
	Name     string  `json:"name"`
	URL      *string `json:"url"`
	Priority *int    `json:"priority,omitempty"`
}

// FileOverride supplies an alternate source for the File named Name on the listed OSes.
// A nil Steam applies to both Steam and non-Steam installs.
type FileOverride struct {
	Name  string  `json:"name"`
	OS    []OS    `json:"os"`
	Steam *bool   `json:"steam,omitempty"`
	URL   string  `json:"url"`
	Unity *string `json:"unity,omitempty"`
}

// Covers reports whether the override applies to the given OS and store platform.
func (f FileOverride) Covers(os OS, steam bool) bool {
	if f.Steam != nil && *f.Steam != steam {
		return false
	}
	for _, o := range f.OS {
		if o == os {
			return true
		}
	}
	return false
}

// OptionGroup is a set of optional components; exactly one of Radio or CheckBox is set.
type OptionGroup struct {
	Name     string       `json:"name"`
	Radio    []OptionItem `json:"radio,omitempty"`
	CheckBox []OptionItem `json:"checkBox,omitempty"`
}

// OptionItem is a selectable component.
type OptionItem struct {
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Data        *OptionData `json:"data,omitempty"`
}

// OptionData is the download payload of an OptionItem.
type OptionData struct {
	URL                    *string `json:"url,omitempty"`
	RelativeExtractionPath *string `json:"relativeExtractionPath,omitempty"`
	Priority               *int    `json:"priority,omitempty"`
}
