// Package metrics defines the prometheus counters the servers account to.
//
// The counters follow the usual serving-path breakdown: connections in,
// commands by verb, authentication outcomes, bytes moved per direction and
// data-channel failures.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionsTotal counts accepted control connections per frontend
	// ("ftp" or "sftp").
	ConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpd_connections_total",
			Help: "Number of accepted control connections",
		},
		[]string{"server"})

	// CommandsTotal counts dispatched control commands by verb.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpd_commands_total",
			Help: "Number of commands dispatched, by verb",
		},
		[]string{"verb"})

	// AuthTotal counts authentication attempts by outcome
	// ("ok" or "failed").
	AuthTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpd_auth_total",
			Help: "Number of authentication attempts, by outcome",
		},
		[]string{"outcome"})

	// TransferBytes counts payload bytes moved over data channels, by
	// direction ("retr" or "stor").
	TransferBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftpd_transfer_bytes_total",
			Help: "Payload bytes moved over data connections, by direction",
		},
		[]string{"direction"})

	// DataConnFailures counts data connections that could not be
	// established.
	DataConnFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ftpd_data_connection_failures_total",
			Help: "Number of data connections that failed to open",
		})
)
