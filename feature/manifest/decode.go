package manifest

import (
	"fmt"

	"manifest-validator/core/strictjson"
	"manifest-validator/feature/manifest/models"
)

// Decode parses an install manifest pedantically.
//
// A *strictjson.StructuralError means nothing was decoded. A *strictjson.UnconsumedError
// is returned together with the complete manifest so the remaining checks can still run.
func Decode(data []byte) (*models.Manifest, error) {
	return strictjson.Decode(data, decodeManifest)
}

func decodeManifest(o *strictjson.Object) (*models.Manifest, error) {
	m := &models.Manifest{}
	var err error

	if m.Version, err = o.OptionalInt("version"); err != nil {
		return nil, err
	}
	if m.Mods, err = strictjson.Objects(o, "mods", decodeMod); err != nil {
		return nil, err
	}
	o.Finish()
	return m, nil
}

func decodeMod(o *strictjson.Object) (models.Mod, error) {
	var mod models.Mod
	var err error

	if mod.Name, err = o.String("name"); err != nil {
		return mod, err
	}
	if mod.Family, err = o.OptionalString("family"); err != nil {
		return mod, err
	}
	if mod.Target, err = o.OptionalString("target"); err != nil {
		return mod, err
	}
	if mod.DataName, err = o.OptionalString("dataName"); err != nil {
		return mod, err
	}
	if mod.Identifiers, err = o.OptionalStrings("identifiers"); err != nil {
		return mod, err
	}
	if mod.Submods, err = strictjson.Objects(o, "submods", decodeSubmod); err != nil {
		return mod, err
	}
	if mod.OptionGroups, err = strictjson.OptionalObjects(o, "modOptionGroups", decodeOptionGroup); err != nil {
		return mod, err
	}
	o.Finish()
	return mod, nil
}

func decodeSubmod(o *strictjson.Object) (models.Submod, error) {
	var sub models.Submod
	var err error

	if sub.Name, err = o.String("name"); err != nil {
		return sub, err
	}
	if sub.DescriptionID, err = o.OptionalString("descriptionID"); err != nil {
		return sub, err
	}
	if sub.Files, err = strictjson.Objects(o, "files", decodeFile); err != nil {
		return sub, err
	}
	if sub.FileOverrides, err = strictjson.OptionalObjects(o, "fileOverrides", decodeFileOverride); err != nil {
		return sub, err
	}
	if sub.FileOverrides == nil {
		sub.FileOverrides = []models.FileOverride{}
	}
	o.Finish()
	return sub, nil
}

func decodeFile(o *strictjson.Object) (models.File, error) {
	var f models.File
	var err error

	if f.Name, err = o.String("name"); err != nil {
		return f, err
	}
	if f.URL, err = o.OptionalString("url"); err != nil {
		return f, err
	}
	if f.Priority, err = o.OptionalInt("priority"); err != nil {
		return f, err
	}
	o.Finish()
	return f, nil
}

func decodeFileOverride(o *strictjson.Object) (models.FileOverride, error) {
	var fo models.FileOverride
	var err error

	if fo.Name, err = o.String("name"); err != nil {
		return fo, err
	}
	names, err := o.Strings("os")
	if err != nil {
		return fo, err
	}
	fo.OS = make([]models.OS, 0, len(names))
	for i, name := range names {
		os := models.OS(name)
		if !os.IsValid() {
			return fo, &strictjson.StructuralError{
				Path:     o.Path().Key("os").Index(i),
				Expected: fmt.Sprintf("one of %v", models.AllOS),
				Cause:    strictjson.CauseTypeMismatch,
				Detail:   fmt.Sprintf("found %q", name),
			}
		}
		fo.OS = append(fo.OS, os)
	}
	if fo.Steam, err = o.OptionalBool("steam"); err != nil {
		return fo, err
	}
	if fo.URL, err = o.String("url"); err != nil {
		return fo, err
	}
	if fo.Unity, err = o.OptionalString("unity"); err != nil {
		return fo, err
	}
	o.Finish()
	return fo, nil
}

func decodeOptionGroup(o *strictjson.Object) (models.OptionGroup, error) {
	var g models.OptionGroup
	var err error

	if g.Name, err = o.String("name"); err != nil {
		return g, err
	}
	if g.Radio, err = strictjson.OptionalObjects(o, "radio", decodeOptionItem); err != nil {
		return g, err
	}
	if g.CheckBox, err = strictjson.OptionalObjects(o, "checkBox", decodeOptionItem); err != nil {
		return g, err
	}
	o.Finish()
	return g, nil
}

func decodeOptionItem(o *strictjson.Object) (models.OptionItem, error) {
	var item models.OptionItem
	var err error

	if item.Name, err = o.String("name"); err != nil {
		return item, err
	}
	if item.Description, err = o.OptionalString("description"); err != nil {
		return item, err
	}
	data, err := o.OptionalObject("data")
	if err != nil {
		return item, err
	}
	if data != nil {
		d, err := decodeOptionData(data)
		if err != nil {
			return item, err
		}
		item.Data = &d
	}
	o.Finish()
	return item, nil
}

func decodeOptionData(o *strictjson.Object) (models.OptionData, error) {
	var d models.OptionData
	var err error

	if d.URL, err = o.OptionalString("url"); err != nil {
		return d, err
	}
	if d.RelativeExtractionPath, err = o.OptionalString("relativeExtractionPath"); err != nil {
		return d, err
	}
	if d.Priority, err = o.OptionalInt("priority"); err != nil {
		return d, err
	}
	o.Finish()
	return d, nil
}
