/*
Package observability provides Prometheus instrumentation for provisioning runs.

Service decorators count and time every remote call by service, operation and
result (ok or the domain.ErrorKind of the failure). A run is one-shot, so the
collected metrics are exported with WriteTextfile, in the format read by the
node_exporter textfile collector.
*/
package observability
