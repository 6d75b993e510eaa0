package checks

import (
	"context"
	"strings"

	"manifest-validator/core/keypath"
	"manifest-validator/core/probe"
	"manifest-validator/feature/manifest/models"
)

// Prober is the part of probe.Prober the reachability check needs.
type Prober interface {
	Run(ctx context.Context, targets []probe.Target) []probe.Violation
}

// CollectURLs lists every URL referenced by the manifest: file urls, override urls and
// option data urls. Each target carries the path of its "url" key and a readable label.
func CollectURLs(m *models.Manifest) []probe.Target {
	var targets []probe.Target

	root := keypath.Root().Key("mods")
	for mi, mod := range m.Mods {
		modPath := root.Index(mi)

		for si, sub := range mod.Submods {
			subPath := modPath.Key("submods").Index(si)

			for fi, f := range sub.Files {
				if f.URL == nil {
					continue
				}
				targets = append(targets, probe.Target{
					Path:  subPath.Key("files").Index(fi).Key("url"),
					Label: label(mod.Name, sub.Name, f.Name),
					URL:   *f.URL,
				})
			}
			for oi, o := range sub.FileOverrides {
				targets = append(targets, probe.Target{
					Path:  subPath.Key("fileOverrides").Index(oi).Key("url"),
					Label: label(mod.Name, sub.Name, o.Name, "override"),
					URL:   o.URL,
				})
			}
		}

		for gi, group := range mod.OptionGroups {
			groupPath := modPath.Key("modOptionGroups").Index(gi)
			targets = append(targets, optionTargets(groupPath.Key("radio"), mod.Name, group.Name, group.Radio)...)
			targets = append(targets, optionTargets(groupPath.Key("checkBox"), mod.Name, group.Name, group.CheckBox)...)
		}
	}

	return targets
}

func optionTargets(path keypath.KeyPath, modName, groupName string, items []models.OptionItem) []probe.Target {
	var targets []probe.Target
	for ii, item := range items {
		if item.Data == nil || item.Data.URL == nil {
			continue
		}
		targets = append(targets, probe.Target{
			Path:  path.Index(ii).Key("data").Key("url"),
			Label: label(modName, groupName, item.Name),
			URL:   *item.Data.URL,
		})
	}
	return targets
}

func label(parts ...string) string {
	return strings.Join(parts, "/")
}

// CheckReachability probes every URL in the manifest.
func CheckReachability(ctx context.Context, p Prober, m *models.Manifest) []probe.Violation {
	return p.Run(ctx, CollectURLs(m))
}
