// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package supervisor runs StartupVista's long-lived services under a suture v4
supervisor tree.

# Overview

	RootSupervisor ("startupvista")
	├── DataSupervisor ("data-layer")
	│   └── StoreGCService (persistent store only)
	├── AuthSupervisor ("auth-layer")
	│   └── FederatedInitService (one shot)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures on its own, so a store GC that keeps failing backs
off without restarting the HTTP server.

Supervisor events (start, failure, restart, backoff) go to the slog logger
passed to NewSupervisorTree through the sutureslog adapter. main.go passes
logging.NewSlogLogger() so they share the zerolog output.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStoreGCService(db, cfg.Store.GCInterval))
	tree.AddAuthService(services.NewFederatedInitService(bridge))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

After Serve returns, UnstoppedServiceReport lists services that ignored the
shutdown timeout.
*/
package supervisor
