// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package meta

import (
	"encoding/binary"
	"fmt"

	"go.chromium.org/luci/common/errors"

	"github.com/EVO-OS/evo/evo/evodata"
)

// Capacities of the fixed text fields and lists, in bytes and entries.
// Text widths include the terminating NUL.
const (
	NameLen          = 256
	VersionLen       = 64
	DescriptionLen   = 1024
	MaxDependencies  = 100
	DependencyLen    = 256
	MaxArchitectures = 10
	ArchitectureLen  = NameLen
	MaxPermissions   = 50
	PermissionLen    = 128
)

// Byte offsets of each field within the encoded record. The layout matches a
// naturally aligned C struct on a 64-bit little-endian machine, including its
// padding (4 bytes before installed_size, 4 at the end).
const (
	offName                   = 0
	offVersion                = offName + NameLen
	offDescription            = offVersion + VersionLen
	offArchitecture           = offDescription + DescriptionLen
	offInstalledSize          = offArchitecture + 4 + 4
	offMaintainer             = offInstalledSize + 8
	offDependencies           = offMaintainer + NameLen
	offNumDependencies        = offDependencies + MaxDependencies*DependencyLen
	offPackageType            = offNumDependencies + 4
	offSupportedArchitectures = offPackageType + 4
	offNumArchitectures       = offSupportedArchitectures + MaxArchitectures*ArchitectureLen
	offScreenWidth            = offNumArchitectures + 4
	offScreenHeight           = offScreenWidth + 4
	offPermissions            = offScreenHeight + 4
	offNumPermissions         = offPermissions + MaxPermissions*PermissionLen
	offTargetSDKVersion       = offNumPermissions + 4
	offMinOSVersion           = offTargetSDKVersion + 4
	offEnd                    = offMinOSVersion + VersionLen

	// Size is the encoded width of a Metadata record.
	Size = offEnd + 4
)

// PackageType classifies the payload.
type PackageType uint32

// Known package types. Other values are carried through unchanged.
const (
	PackageGeneric PackageType = iota
	PackageArchive             // deb-like
	PackageMobile              // apk-like
)

var packageTypeNames = map[PackageType]string{
	PackageGeneric: "generic",
	PackageArchive: "archive",
	PackageMobile:  "mobile",
}

func (p PackageType) String() string {
	if n, ok := packageTypeNames[p]; ok {
		return n
	}
	return fmt.Sprintf("PackageType(%d)", uint32(p))
}

// ScreenSize is a minimum display size in pixels.
type ScreenSize struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Metadata is the structured record describing a payload.
//
// Use New or Default to get a Metadata whose lists have the right
// capacities; the zero value's lists accept no entries.
type Metadata struct {
	Name          string
	Version       string
	Description   string
	Architecture  uint32
	InstalledSize uint64
	Maintainer    string
	Dependencies  List
	PackageType   PackageType

	// Mobile profile.
	SupportedArchitectures List
	MinScreen              ScreenSize
	RequiredPermissions    List
	TargetSDKVersion       uint32
	MinOSVersion           string
}

// New returns an empty Metadata record.
func New() *Metadata {
	return &Metadata{
		Dependencies:           NewList(MaxDependencies, DependencyLen),
		SupportedArchitectures: NewList(MaxArchitectures, ArchitectureLen),
		RequiredPermissions:    NewList(MaxPermissions, PermissionLen),
	}
}

// Default returns the record which Create starts from before applying
// overrides. Every call returns a fresh copy.
func Default() *Metadata {
	m := New()
	m.Name = "Default Package"
	m.Version = "1.0.0"
	m.Description = "Default description"
	m.Maintainer = "Default Maintainer"
	m.MinOSVersion = "0.0"
	return m
}

// Clone returns a deep copy of m.
func (m *Metadata) Clone() *Metadata {
	ret := *m
	ret.Dependencies = m.Dependencies.clone()
	ret.SupportedArchitectures = m.SupportedArchitectures.clone()
	ret.RequiredPermissions = m.RequiredPermissions.clone()
	return &ret
}

// Dropped returns the total number of list entries dropped because a list
// was full.
func (m *Metadata) Dropped() int {
	return m.Dependencies.Dropped() + m.SupportedArchitectures.Dropped() +
		m.RequiredPermissions.Dropped()
}

func putList(buf []byte, off int, l *List, capacity, width int) error {
	if l.Len() > capacity {
		return errors.Reason("list has %d entries, capacity is %d", l.Len(), capacity).Err()
	}
	for i, item := range l.items {
		start := off + i*width
		putText(buf[start:start+width], item)
	}
	return nil
}

// MarshalBinary encodes m to exactly Size bytes. Text fields longer than
// their capacity are truncated.
func (m *Metadata) MarshalBinary() ([]byte, error) {
	buf := make([]byte, Size)
	le := binary.LittleEndian

	putText(buf[offName:offVersion], m.Name)
	putText(buf[offVersion:offDescription], m.Version)
	putText(buf[offDescription:offArchitecture], m.Description)
	le.PutUint32(buf[offArchitecture:], m.Architecture)
	le.PutUint64(buf[offInstalledSize:], m.InstalledSize)
	putText(buf[offMaintainer:offDependencies], m.Maintainer)

	if err := putList(buf, offDependencies, &m.Dependencies, MaxDependencies, DependencyLen); err != nil {
		return nil, errors.Annotate(err, "dependencies").Err()
	}
	le.PutUint32(buf[offNumDependencies:], uint32(m.Dependencies.Len()))
	le.PutUint32(buf[offPackageType:], uint32(m.PackageType))

	if err := putList(buf, offSupportedArchitectures, &m.SupportedArchitectures, MaxArchitectures, ArchitectureLen); err != nil {
		return nil, errors.Annotate(err, "supported architectures").Err()
	}
	le.PutUint32(buf[offNumArchitectures:], uint32(m.SupportedArchitectures.Len()))
	le.PutUint32(buf[offScreenWidth:], m.MinScreen.Width)
	le.PutUint32(buf[offScreenHeight:], m.MinScreen.Height)

	if err := putList(buf, offPermissions, &m.RequiredPermissions, MaxPermissions, PermissionLen); err != nil {
		return nil, errors.Annotate(err, "required permissions").Err()
	}
	le.PutUint32(buf[offNumPermissions:], uint32(m.RequiredPermissions.Len()))
	le.PutUint32(buf[offTargetSDKVersion:], m.TargetSDKVersion)
	putText(buf[offMinOSVersion:offEnd], m.MinOSVersion)

	return buf, nil
}

func getList(buf []byte, off, countOff, capacity, width int) List {
	l := NewList(capacity, width)
	count := binary.LittleEndian.Uint32(buf[countOff:])
	if count > uint32(capacity) {
		// Only a corrupt record gets here.
		l.dropped = int(count - uint32(capacity))
		count = uint32(capacity)
	}
	for i := 0; i < int(count); i++ {
		start := off + i*width
		l.items = append(l.items, getText(buf[start:start+width]))
	}
	return l
}

// UnmarshalBinary decodes the first Size bytes of buf into m. It fails with
// a FormatError if buf is short.
//
// A list count larger than its capacity can only come from a corrupt record;
// the list is read up to its capacity and the excess is counted as dropped.
func (m *Metadata) UnmarshalBinary(buf []byte) error {
	if len(buf) < Size {
		return errors.Reason("truncated metadata: %d bytes, need %d", len(buf), Size).
			Tag(evodata.FormatError).Err()
	}
	le := binary.LittleEndian

	ret := Metadata{
		Name:          getText(buf[offName:offVersion]),
		Version:       getText(buf[offVersion:offDescription]),
		Description:   getText(buf[offDescription:offArchitecture]),
		Architecture:  le.Uint32(buf[offArchitecture:]),
		InstalledSize: le.Uint64(buf[offInstalledSize:]),
		Maintainer:    getText(buf[offMaintainer:offDependencies]),
		PackageType:   PackageType(le.Uint32(buf[offPackageType:])),
		MinScreen: ScreenSize{
			Width:  le.Uint32(buf[offScreenWidth:]),
			Height: le.Uint32(buf[offScreenHeight:]),
		},
		TargetSDKVersion: le.Uint32(buf[offTargetSDKVersion:]),
		MinOSVersion:     getText(buf[offMinOSVersion:offEnd]),
	}

	ret.Dependencies = getList(buf, offDependencies, offNumDependencies,
		MaxDependencies, DependencyLen)
	ret.SupportedArchitectures = getList(buf, offSupportedArchitectures, offNumArchitectures,
		MaxArchitectures, ArchitectureLen)
	ret.RequiredPermissions = getList(buf, offPermissions, offNumPermissions,
		MaxPermissions, PermissionLen)

	*m = ret
	return nil
}

// Decode decodes a Metadata record from buf.
func Decode(buf []byte) (*Metadata, error) {
	m := &Metadata{}
	if err := m.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return m, nil
}
