// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evo

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"go.chromium.org/luci/common/errors"

	"github.com/EVO-OS/evo/evo/evodata"
	"github.com/EVO-OS/evo/evo/evodata/meta"
)

// Render writes a human readable dump of the report to w: the header, the
// metadata record and the integrity outcome.
func (r *Report) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...interface{}) {
		fmt.Fprintf(bw, format, args...)
	}
	list := func(title string, l *meta.List) {
		p("%s (%d):\n", title, l.Len())
		for _, item := range l.Items() {
			p("  %s\n", item)
		}
	}

	h := r.Header
	p("EVO File Header:\n")
	p("Magic: %s\n", evodata.Magic)
	p("Version: %d\n", h.Version)
	p("Metadata size: %d bytes\n", h.MetadataSize)
	p("Data size: %d bytes\n", h.DataSize)

	m := r.Metadata
	p("\nMetadata:\n")
	p("Name: %s\n", m.Name)
	p("Version: %s\n", m.Version)
	p("Description: %s\n", m.Description)
	p("Architecture: %d\n", m.Architecture)
	p("Installed size: %d bytes\n", m.InstalledSize)
	p("Maintainer: %s\n", m.Maintainer)
	list("Dependencies", &m.Dependencies)
	p("Package type: %d\n", uint32(m.PackageType))

	p("\nMobile profile:\n")
	list("Supported architectures", &m.SupportedArchitectures)
	p("Minimum screen size: %dx%d\n", m.MinScreen.Width, m.MinScreen.Height)
	list("Required permissions", &m.RequiredPermissions)
	p("Target SDK version: %d\n", m.TargetSDKVersion)
	p("Minimum OS version: %s\n", m.MinOSVersion)

	p("\nData Integrity:\n")
	p("File size: %d bytes\n", r.FileSize)
	p("Data read for checksum: %d bytes\n", r.Checksummed)
	p("Calculated checksum: 0x%08X (%d)\n", r.Computed, r.Computed)
	p("Stored checksum:     0x%08X (%d)\n", r.Stored, r.Stored)
	if r.PayloadDigest != nil {
		p("Payload digest (%s): %s\n", r.DigestScheme, hex.EncodeToString(r.PayloadDigest))
	}
	p("Checksum verification: %s\n", r.Status())

	return errors.Annotate(bw.Flush(), "rendering report").Tag(evodata.IOError).Err()
}

type jsonMetadata struct {
	Name                   string          `json:"name"`
	Version                string          `json:"version"`
	Description            string          `json:"description"`
	Architecture           uint32          `json:"architecture"`
	InstalledSize          uint64          `json:"installed_size"`
	Maintainer             string          `json:"maintainer"`
	Dependencies           []string        `json:"dependencies"`
	PackageType            uint32          `json:"package_type"`
	SupportedArchitectures []string        `json:"supported_architectures"`
	MinScreen              meta.ScreenSize `json:"min_screen"`
	RequiredPermissions    []string        `json:"required_permissions"`
	TargetSDKVersion       uint32          `json:"target_sdk_version"`
	MinOSVersion           string          `json:"min_os_version"`
}

type jsonReport struct {
	Header struct {
		Magic        string `json:"magic"`
		Version      uint32 `json:"version"`
		MetadataSize uint32 `json:"metadata_size"`
		DataSize     uint64 `json:"data_size"`
	} `json:"header"`
	Metadata  jsonMetadata `json:"metadata"`
	Integrity struct {
		FileSize    int64  `json:"file_size"`
		Checksummed int64  `json:"checksummed_bytes"`
		Calculated  string `json:"calculated"`
		Stored      string `json:"stored"`
		Status      string `json:"status"`
	} `json:"integrity"`
	PayloadDigest *struct {
		Scheme string `json:"scheme"`
		Value  string `json:"value"`
	} `json:"payload_digest,omitempty"`
}

// MarshalJSON renders the report as a stable JSON document.
func (r *Report) MarshalJSON() ([]byte, error) {
	ret := jsonReport{}
	ret.Header.Magic = evodata.Magic
	ret.Header.Version = r.Header.Version
	ret.Header.MetadataSize = r.Header.MetadataSize
	ret.Header.DataSize = r.Header.DataSize

	m := r.Metadata
	ret.Metadata = jsonMetadata{
		Name:                   m.Name,
		Version:                m.Version,
		Description:            m.Description,
		Architecture:           m.Architecture,
		InstalledSize:          m.InstalledSize,
		Maintainer:             m.Maintainer,
		Dependencies:           nonNil(m.Dependencies.Items()),
		PackageType:            uint32(m.PackageType),
		SupportedArchitectures: nonNil(m.SupportedArchitectures.Items()),
		MinScreen:              m.MinScreen,
		RequiredPermissions:    nonNil(m.RequiredPermissions.Items()),
		TargetSDKVersion:       m.TargetSDKVersion,
		MinOSVersion:           m.MinOSVersion,
	}

	ret.Integrity.FileSize = r.FileSize
	ret.Integrity.Checksummed = r.Checksummed
	ret.Integrity.Calculated = fmt.Sprintf("0x%08X", r.Computed)
	ret.Integrity.Stored = fmt.Sprintf("0x%08X", r.Stored)
	ret.Integrity.Status = r.Status()

	if r.PayloadDigest != nil {
		ret.PayloadDigest = &struct {
			Scheme string `json:"scheme"`
			Value  string `json:"value"`
		}{r.DigestScheme.String(), hex.EncodeToString(r.PayloadDigest)}
	}
	return json.Marshal(&ret)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
