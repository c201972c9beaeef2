// Package metric provides Prometheus metrics for plainsight.
//
// A Registry owns its own prometheus.Registry so tests can create fresh
// instances; the process-wide instance is available from Global. Metrics:
//
//   - plainsight_operations_total{operation,result}
//   - plainsight_operation_duration_seconds{operation}
//   - plainsight_payload_bytes{operation}
//   - plainsight_http_requests_total{method,route,status}
//   - plainsight_http_request_duration_seconds{method,route}
//   - plainsight_build_info{version,commit,go_version}
//
// Go runtime and process collectors are registered as well. Metrics are
// served at /metrics by the HTTP API.
package metric
