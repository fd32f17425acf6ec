// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package services provides suture.Service wrappers for Careerpath components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so supervision logs name it.

HTTPServerService wraps *http.Server. On cancellation it calls the drain
hook, then Shutdown with the configured timeout.

CacheGCService runs BadgerDB value log GC on the skill expansion cache at a
fixed interval. GC errors are logged and do not restart the service.
*/
package services
