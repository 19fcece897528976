// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package meta

import (
	"bufio"
	"io"
	"strings"

	"go.chromium.org/luci/common/data/stringset"
	"go.chromium.org/luci/common/errors"

	"github.com/EVO-OS/evo/evo/evodata"
)

// Directive is a single `key=value` change to a Metadata record.
type Directive struct {
	Key   string
	Value string

	// Line is the 1-based line the directive was read from, or 0.
	Line int
}

// These are the keys a Directive may change. The mobile profile and the
// dependency list are not reachable through directives.
const (
	KeyName          = "name"
	KeyVersion       = "version"
	KeyDescription   = "description"
	KeyArchitecture  = "architecture"
	KeyInstalledSize = "installed_size"
	KeyMaintainer    = "maintainer"
	KeyPackageType   = "package_type"
)

// DirectiveKeys is the set of keys Apply understands. Any other key is
// ignored.
var DirectiveKeys = stringset.NewFromSlice(
	KeyName, KeyVersion, KeyDescription, KeyArchitecture,
	KeyInstalledSize, KeyMaintainer, KeyPackageType,
)

// ParseDirectives reads one directive per line from r. Lines may be of any
// length.
//
// The key runs up to the first '=' (leading '=' characters are skipped) and
// the value is the rest of the line. Lines without a value, or with an empty
// one, are skipped. Keys are not validated here; see Apply.
func ParseDirectives(r io.Reader) ([]Directive, error) {
	var ret []Directive

	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Annotate(err, "reading directives").Tag(evodata.IOError).Err()
		}
		if line == "" && err == io.EOF {
			return ret, nil
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimLeft(line, "=")
		if key, value, ok := strings.Cut(line, "="); ok && value != "" {
			ret = append(ret, Directive{Key: key, Value: value, Line: lineNo})
		}
		if err == io.EOF {
			return ret, nil
		}
	}
}

// Apply applies directives to m in order and returns the keys it did not
// recognize, sorted and without duplicates. Those directives are otherwise
// ignored.
//
// Text values are truncated to their field's capacity. Numeric values are
// parsed leniently: leading digits are used and anything unparseable is 0.
func (m *Metadata) Apply(directives ...Directive) (ignored []string) {
	unknown := stringset.New(0)
	for _, d := range directives {
		switch d.Key {
		case KeyName:
			m.Name = truncate(d.Value, NameLen)
		case KeyVersion:
			m.Version = truncate(d.Value, VersionLen)
		case KeyDescription:
			m.Description = truncate(d.Value, DescriptionLen)
		case KeyArchitecture:
			m.Architecture = atou32(d.Value)
		case KeyInstalledSize:
			m.InstalledSize = atou64(d.Value)
		case KeyMaintainer:
			m.Maintainer = truncate(d.Value, NameLen)
		case KeyPackageType:
			m.PackageType = PackageType(atou32(d.Value))
		default:
			unknown.Add(d.Key)
		}
	}
	if unknown.Len() > 0 {
		ignored = unknown.ToSortedSlice()
	}
	return
}
