// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package models defines the HTTP wire types shared by the API and the CLI.

Key Components:

  - APIResponse: the {status, data, metadata, error} envelope every endpoint returns
  - APIError: machine-readable error code, message and details
  - FeatureResponse: a feature vector with its aligned dimension names
  - ExplainRequest / RankQuery: request bodies and query parameters
  - CatalogInfo / HealthStatus: service introspection payloads

Engine result types (recommend.Result, recommend.Candidate) are serialized
as-is inside the envelope's data field.
*/
package models
