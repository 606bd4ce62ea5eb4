// Package server runs an http.Handler with graceful shutdown driven by a
// context.
//
//	srv, err := server.New(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Configuration is read from SERVER_* environment variables, see Config.
// TLS is enabled when SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE are set.
package server
