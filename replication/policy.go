// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package replication

import "github.com/bitmark-inc/vaultstore/fault"

// Class is one of the six storage classes a driver may declare (spec
// section 4.3).
type Class string

const (
	ReadPublic   Class = "read_public"
	WritePublic  Class = "write_public"
	ReadPrivate  Class = "read_private"
	WritePrivate Class = "write_private"
	ReadLocal    Class = "read_local"
	WriteLocal   Class = "write_local"
)

// Concern names a replication goal a strategy places a count against
// (spec section 4.3).
type Concern string

const (
	ConcernLocal   Concern = "local"
	ConcernPublish Concern = "publish"
	ConcernPublic  Concern = "public"
	ConcernPrivate Concern = "private"
)

// concernClasses fixes the pair of classes each concern binds to
// (spec section 4.3's table); this mapping is part of the protocol,
// not configurable per caller.
var concernClasses = map[Concern][2]Class{
	ConcernLocal:   {ReadLocal, WriteLocal},
	ConcernPublish: {ReadPublic, WritePrivate},
	ConcernPublic:  {ReadPublic, WritePublic},
	ConcernPrivate: {ReadPrivate, WritePrivate},
}

// Strategy maps each concern a datastore requires to its needed
// replica count.
type Strategy map[Concern]int

// Classification maps a driver name (as it appears in a datastore
// descriptor's Drivers list) to the classes that driver satisfies; it
// is supplied by the caller, not discovered from the live gateway
// (spec section 9 / SPEC_FULL.md section 4.11 — driver capability
// discovery is out of scope).
type Classification map[string][]Class

// Driver is the minimal descriptor SelectDrivers returns: a driver
// name paired with the classes it was found to satisfy.
type Driver struct {
	Name    string
	Classes []Class
}

func concernMatches(concern Concern, classes []Class) bool {
	required := concernClasses[concern]
	for _, class := range classes {
		if class == required[0] || class == required[1] {
			return true
		}
	}
	return false
}

// SelectDrivers returns the smallest list of drivers — in the stable
// order they appear in driverNames — that together satisfy every
// concern in strategy at least as many times as required (spec
// section 4.3). It fails with fault.ErrUnsatisfiableReplication if any
// concern remains unsatisfied once every driver has been considered.
func SelectDrivers(strategy Strategy, classification Classification, driverNames []string) ([]Driver, error) {
	remaining := make(map[Concern]int, len(strategy))
	for concern, count := range strategy {
		remaining[concern] = count
	}

	selected := make([]Driver, 0, len(driverNames))
	seen := make(map[string]bool, len(driverNames))

	for _, name := range driverNames {
		classes := classification[name]
		matchedAny := false
		for concern, count := range remaining {
			if count <= 0 {
				continue
			}
			if concernMatches(concern, classes) {
				remaining[concern] = count - 1
				matchedAny = true
			}
		}
		if matchedAny && !seen[name] {
			seen[name] = true
			selected = append(selected, Driver{Name: name, Classes: classes})
		}
	}

	for _, count := range remaining {
		if count > 0 {
			return nil, fault.ErrUnsatisfiableReplication
		}
	}

	return selected, nil
}
