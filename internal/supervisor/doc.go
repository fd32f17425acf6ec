// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package supervisor provides process supervision for Careerpath using suture v4.

The tree keeps long-running services alive with automatic restart and
backoff, and shuts them down in order when the root context is canceled:

	RootSupervisor ("careerpath")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheGCService (when language model collaborators are enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervision events (start, stop, failure, backoff) are logged through
sutureslog, which the server wires to zerolog via logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, handler.SetDraining))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Configuration

TreeConfig zero values fall back to suture's defaults: a failure threshold
of 5, a decay of 30 seconds, a 15 second backoff and a 10 second shutdown
timeout.
*/
package supervisor
