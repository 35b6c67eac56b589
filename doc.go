// Package minilog is a minimal producer-side wrapper over Event Tracing for
// Windows. A MiniLog registers the process as an event provider, starts a
// private in-process tracing session flushing to a file, enables the
// provider inside that session and then writes opaque byte payloads, one
// record per call:
//
//	log, err := minilog.New("Mini logger", `C:\temp\out`, 4)
//	if err != nil {
//		// ...
//	}
//	defer log.Close()
//
//	if err := log.Write([]byte("Hello World!")); err != nil {
//		// ...
//	}
//
// The resulting log.etl is an ordinary trace file: any ETW consumer can
// replay it and match records against ProviderID.
//
// The package does not define the on-disk format, run a consumer, or route
// events anywhere but the session's own file.
package minilog
