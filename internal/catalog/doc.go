// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package catalog provides the read-only occupation catalog the recommendation
// engine ranks against.
//
// A catalog snapshot is produced by an external ingestion process and loaded
// once at startup. Loading validates the document against an embedded JSON
// Schema, resolves the dimension ordering into a DimensionSchema, and
// precomputes one aligned feature vector per occupation.
//
// # Dimension Contract
//
// Every occupation vector and every user vector built for the same catalog
// shares one DimensionSchema value. The schema fixes the order of four
// groups (skills, interests, values, constraints) and the order of names
// inside each group:
//
//	[ skills... | Realistic..Conventional | Achievement..Independence | wage_level remote_feasibility education_level ]
//
// # Usage
//
//	store, err := catalog.Load("data/catalog.json")
//	if err != nil {
//	    // errors.Is(err, catalog.ErrInsufficientCatalog) is a startup-fatal condition
//	}
//	schema := store.Schema()
//	for _, occ := range store.Occupations() {
//	    _ = occ.Vector()
//	}
//
// # Thread Safety
//
// Store, DimensionSchema and Occupation are immutable after construction and
// safe for concurrent use without locking.
package catalog
