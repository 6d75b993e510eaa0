package checks

import (
	"fmt"

	"manifest-validator/core/keypath"
	"manifest-validator/feature/manifest/models"
)

// CoverageKind classifies a coverage violation.
type CoverageKind string

const (
	KindUncoveredFile        CoverageKind = "uncovered_file"
	KindDuplicateFileName    CoverageKind = "duplicate_file_name"
	KindDanglingOverride     CoverageKind = "dangling_override"
	KindMalformedOptionGroup CoverageKind = "malformed_option_group"
	KindMissingOptionData    CoverageKind = "missing_option_data"
)

// SteamValues is the store-platform space every URL-less file must be covered for.
var SteamValues = []bool{true, false}

// CoverageViolation is a semantic problem found in a decoded manifest.
type CoverageViolation struct {
	Kind    CoverageKind    `json:"kind"`
	Path    keypath.KeyPath `json:"path"`
	Mod     string          `json:"mod"`
	Submod  string          `json:"submod,omitempty"`
	File    string          `json:"file,omitempty"`
	OS      models.OS       `json:"os,omitempty"`
	Steam   *bool           `json:"steam,omitempty"`
	Message string          `json:"message"`
}

func (v CoverageViolation) Error() string {
	return fmt.Sprintf("%s at %s: %s", v.Kind, v.Path, v.Message)
}

// CheckCoverage walks the manifest and returns every coverage violation. An empty
// result means every URL-less file resolves on every OS/platform and all option
// groups are well formed.
func CheckCoverage(m *models.Manifest) []CoverageViolation {
	var violations []CoverageViolation

	root := keypath.Root().Key("mods")
	for mi, mod := range m.Mods {
		modPath := root.Index(mi)

		for si, sub := range mod.Submods {
			violations = append(violations, checkSubmod(modPath.Key("submods").Index(si), mod.Name, sub)...)
		}
		for gi, group := range mod.OptionGroups {
			violations = append(violations, checkOptionGroup(modPath.Key("modOptionGroups").Index(gi), mod.Name, group)...)
		}
	}

	return violations
}

func checkSubmod(path keypath.KeyPath, modName string, sub models.Submod) []CoverageViolation {
	var violations []CoverageViolation

	names := make(map[string]struct{}, len(sub.Files))
	for _, f := range sub.Files {
		names[f.Name] = struct{}{}
	}
	if len(names) < len(sub.Files) {
		violations = append(violations, CoverageViolation{
			Kind:    KindDuplicateFileName,
			Path:    path.Key("files"),
			Mod:     modName,
			Submod:  sub.Name,
			Message: fmt.Sprintf("%d files share %d distinct names", len(sub.Files), len(names)),
		})
	}

	for fi, f := range sub.Files {
		if f.URL != nil {
			continue
		}
		for _, os := range models.AllOS {
			for _, steam := range SteamValues {
				if hasOverride(sub.FileOverrides, f.Name, os, steam) {
					continue
				}
				violations = append(violations, CoverageViolation{
					Kind:    KindUncoveredFile,
					Path:    path.Key("files").Index(fi),
					Mod:     modName,
					Submod:  sub.Name,
					File:    f.Name,
					OS:      os,
					Steam:   &steam,
					Message: fmt.Sprintf("file %q has no url and no override for os=%s steam=%t", f.Name, os, steam),
				})
			}
		}
	}

	for oi, o := range sub.FileOverrides {
		if _, ok := names[o.Name]; ok {
			continue
		}
		violations = append(violations, CoverageViolation{
			Kind:    KindDanglingOverride,
			Path:    path.Key("fileOverrides").Index(oi),
			Mod:     modName,
			Submod:  sub.Name,
			File:    o.Name,
			Message: fmt.Sprintf("override refers to unknown file %q", o.Name),
		})
	}

	return violations
}

func hasOverride(overrides []models.FileOverride, name string, os models.OS, steam bool) bool {
	for _, o := range overrides {
		if o.Name == name && o.Covers(os, steam) {
			return true
		}
	}
	return false
}

func checkOptionGroup(path keypath.KeyPath, modName string, group models.OptionGroup) []CoverageViolation {
	var violations []CoverageViolation

	hasRadio, hasCheckBox := group.Radio != nil, group.CheckBox != nil
	if hasRadio == hasCheckBox {
		msg := fmt.Sprintf("option group %q has neither radio nor checkBox", group.Name)
		if hasRadio {
			msg = fmt.Sprintf("option group %q has both radio and checkBox", group.Name)
		}
		violations = append(violations, CoverageViolation{
			Kind:    KindMalformedOptionGroup,
			Path:    path,
			Mod:     modName,
			Message: msg,
		})
	}

	for ii, item := range group.CheckBox {
		if item.Data != nil {
			continue
		}
		violations = append(violations, CoverageViolation{
			Kind:    KindMissingOptionData,
			Path:    path.Key("checkBox").Index(ii),
			Mod:     modName,
			Message: fmt.Sprintf("checkBox option %q in group %q has no data", item.Name, group.Name),
		})
	}

	return violations
}
