// Package shutdown coordinates graceful process termination.
//
// Components register cleanup hooks with OnShutdown; Wait blocks until
// SIGINT/SIGTERM (or context cancellation) and then runs the hooks in
// reverse order under a shared deadline.
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	return h.Wait(ctx)
package shutdown
