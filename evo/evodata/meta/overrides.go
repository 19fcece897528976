// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package meta

import (
	"io"
	"io/ioutil"
	"strconv"

	"go.chromium.org/luci/common/errors"
	"gopkg.in/yaml.v2"

	"github.com/EVO-OS/evo/evo/evodata"
)

// Overrides are the metadata values supplied when creating a container. Nil
// fields keep the value of the record they are applied to; list entries are
// appended.
type Overrides struct {
	Name          *string      `yaml:"name"`
	Version       *string      `yaml:"version"`
	Description   *string      `yaml:"description"`
	Maintainer    *string      `yaml:"maintainer"`
	Architecture  *uint32      `yaml:"architecture"`
	InstalledSize *uint64      `yaml:"installed_size"`
	PackageType   *PackageType `yaml:"package_type"`
	Dependencies  []string     `yaml:"dependencies"`

	SupportedArchitectures []string       `yaml:"supported_architectures"`
	MinScreen              ScreenOverride `yaml:"min_screen"`
	RequiredPermissions    []string       `yaml:"required_permissions"`
	TargetSDKVersion       *uint32        `yaml:"target_sdk_version"`
	MinOSVersion           *string        `yaml:"min_os_version"`
}

// ScreenOverride overrides either dimension of the minimum screen size.
type ScreenOverride struct {
	Width  *uint32 `yaml:"width"`
	Height *uint32 `yaml:"height"`
}

// LoadOverrides parses a YAML overrides document. Unknown keys are
// rejected with a ConfigError.
func LoadOverrides(r io.Reader) (*Overrides, error) {
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Annotate(err, "reading overrides").Tag(evodata.IOError).Err()
	}
	o := &Overrides{}
	if err := yaml.UnmarshalStrict(buf, o); err != nil {
		return nil, errors.Annotate(err, "parsing overrides").Tag(evodata.ConfigError).Err()
	}
	return o, nil
}

// Merge copies every field set in other onto o. Lists are appended.
func (o *Overrides) Merge(other *Overrides) {
	if other == nil {
		return
	}
	mergeStr := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	mergeU32 := func(dst **uint32, src *uint32) {
		if src != nil {
			*dst = src
		}
	}
	mergeStr(&o.Name, other.Name)
	mergeStr(&o.Version, other.Version)
	mergeStr(&o.Description, other.Description)
	mergeStr(&o.Maintainer, other.Maintainer)
	mergeStr(&o.MinOSVersion, other.MinOSVersion)
	mergeU32(&o.Architecture, other.Architecture)
	mergeU32(&o.MinScreen.Width, other.MinScreen.Width)
	mergeU32(&o.MinScreen.Height, other.MinScreen.Height)
	mergeU32(&o.TargetSDKVersion, other.TargetSDKVersion)
	if other.InstalledSize != nil {
		o.InstalledSize = other.InstalledSize
	}
	if other.PackageType != nil {
		o.PackageType = other.PackageType
	}
	o.Dependencies = append(o.Dependencies, other.Dependencies...)
	o.SupportedArchitectures = append(o.SupportedArchitectures, other.SupportedArchitectures...)
	o.RequiredPermissions = append(o.RequiredPermissions, other.RequiredPermissions...)
}

// Apply sets every overridden field on m. Text is truncated to its field's
// capacity and list entries beyond a list's capacity are dropped; check
// m.Dropped afterwards.
func (o *Overrides) Apply(m *Metadata) {
	if o == nil {
		return
	}
	setStr := func(dst *string, src *string, width int) {
		if src != nil {
			*dst = truncate(*src, width)
		}
	}
	setU32 := func(dst *uint32, src *uint32) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&m.Name, o.Name, NameLen)
	setStr(&m.Version, o.Version, VersionLen)
	setStr(&m.Description, o.Description, DescriptionLen)
	setStr(&m.Maintainer, o.Maintainer, NameLen)
	setStr(&m.MinOSVersion, o.MinOSVersion, VersionLen)
	setU32(&m.Architecture, o.Architecture)
	setU32(&m.MinScreen.Width, o.MinScreen.Width)
	setU32(&m.MinScreen.Height, o.MinScreen.Height)
	setU32(&m.TargetSDKVersion, o.TargetSDKVersion)
	if o.InstalledSize != nil {
		m.InstalledSize = *o.InstalledSize
	}
	if o.PackageType != nil {
		m.PackageType = *o.PackageType
	}
	m.Dependencies.AddAll(o.Dependencies...)
	m.SupportedArchitectures.AddAll(o.SupportedArchitectures...)
	m.RequiredPermissions.AddAll(o.RequiredPermissions...)
}

// ParsePackageType parses a package type name ("generic", "archive",
// "mobile") or a decimal code. Failures are ConfigErrors.
func ParsePackageType(s string) (PackageType, error) {
	for code, name := range packageTypeNames {
		if name == s {
			return code, nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Reason("bad package type %q", s).Tag(evodata.ConfigError).Err()
	}
	return PackageType(n), nil
}

// UnmarshalYAML accepts either a package type name or its numeric code.
func (p *PackageType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	pt, err := ParsePackageType(s)
	if err != nil {
		return err
	}
	*p = pt
	return nil
}
