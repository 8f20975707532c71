// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package replication_test

import (
	"testing"

	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/replication"
)

// end-to-end scenario 6 / invariant 5.
func TestSelectDriversMeetsLocalAndPublicConcerns(t *testing.T) {
	classification := replication.Classification{
		"A": {replication.ReadLocal, replication.WriteLocal},
		"B": {replication.ReadPublic, replication.WritePublic},
	}
	strategy := replication.Strategy{
		replication.ConcernLocal:  1,
		replication.ConcernPublic: 1,
	}

	drivers, err := replication.SelectDrivers(strategy, classification, []string{"A", "B"})
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 2 != len(drivers) {
		t.Fatalf("expected 2 drivers, got %d: %+v", len(drivers), drivers)
	}

	names := map[string]bool{}
	for _, d := range drivers {
		names[d.Name] = true
	}
	if !names["A"] || !names["B"] {
		t.Fatalf("expected both A and B selected, got %+v", drivers)
	}
}

func TestSelectDriversSatisfiesEachConcernCount(t *testing.T) {
	classification := replication.Classification{
		"A": {replication.ReadPublic, replication.WritePublic},
		"B": {replication.ReadPublic, replication.WritePublic},
		"C": {replication.ReadLocal, replication.WriteLocal},
	}
	strategy := replication.Strategy{
		replication.ConcernPublic: 2,
	}

	drivers, err := replication.SelectDrivers(strategy, classification, []string{"A", "B", "C"})
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	publicCount := 0
	for _, d := range drivers {
		for _, c := range d.Classes {
			if replication.ReadPublic == c || replication.WritePublic == c {
				publicCount++
				break
			}
		}
	}
	if publicCount < 2 {
		t.Fatalf("expected at least 2 drivers satisfying the public concern, got %d", publicCount)
	}
}

func TestSelectDriversFailsWhenUnsatisfiable(t *testing.T) {
	classification := replication.Classification{
		"A": {replication.ReadLocal, replication.WriteLocal},
	}
	strategy := replication.Strategy{
		replication.ConcernPublic: 1,
	}

	_, err := replication.SelectDrivers(strategy, classification, []string{"A"})
	if nil == err || !fault.IsErrProcess(err) {
		t.Fatalf("expected a process error for an unsatisfiable strategy, got %v", err)
	}
}

func TestSelectDriversIsSublistOfStableEnumeration(t *testing.T) {
	classification := replication.Classification{
		"A": {replication.ReadLocal, replication.WriteLocal},
		"B": {replication.ReadPublic, replication.WritePublic},
		"C": {replication.ReadPrivate, replication.WritePrivate},
	}
	order := []string{"A", "B", "C"}
	strategy := replication.Strategy{
		replication.ConcernLocal: 1,
	}

	drivers, err := replication.SelectDrivers(strategy, classification, order)
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}

	lastIndex := -1
	for _, d := range drivers {
		idx := -1
		for i, name := range order {
			if name == d.Name {
				idx = i
			}
		}
		if idx <= lastIndex {
			t.Fatalf("expected selected drivers to preserve the stable enumeration order")
		}
		lastIndex = idx
	}
}

func TestSelectDriversNoDuplicates(t *testing.T) {
	classification := replication.Classification{
		"A": {replication.ReadPublic, replication.WritePublic, replication.ReadLocal, replication.WriteLocal},
	}
	strategy := replication.Strategy{
		replication.ConcernPublic: 1,
		replication.ConcernLocal:  1,
	}

	drivers, err := replication.SelectDrivers(strategy, classification, []string{"A"})
	if nil != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 1 != len(drivers) {
		t.Fatalf("expected a single driver satisfying both concerns, got %d", len(drivers))
	}
}
