/*
Package observability provides Prometheus metrics for qflow.

Metrics plugs into three places: the Qualtrics client (as its Observer), the
uploader (through LifecycleHooks) and the mock server (as HTTP middleware).
*/
package observability
