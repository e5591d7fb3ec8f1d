// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package services wraps StartupVista's long-running components as suture.Service
implementations:

  - HTTPServerService: runs the API server and drains it on shutdown
  - StoreGCService: periodic badger value-log garbage collection
  - FederatedInitService: one-shot Firebase warm-up

Each service returns ctx.Err() on cancellation. Errors returned for any other
reason cause suture to restart the service with backoff, except
suture.ErrDoNotRestart which FederatedInitService uses to finish for good.
*/
package services
