// Package journal provides default persistence for the go-hooks DispatchSink.
// The Repository implements both the sink (writes) and the DispatchRepository
// read-side contract so hosts can record hook traffic and later query it for
// debugging and dashboards. Host applications can swap the repository if they
// prefer a different storage engine.
package journal
