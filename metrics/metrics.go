// Package metrics defines the application-level Prometheus collectors
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts successful student registrations
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of successful student registrations",
		},
	)

	// BroadcastRunsTotal counts broadcast runs triggered by an administrator
	BroadcastRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_runs_total",
			Help: "Total number of broadcast runs",
		},
	)

	// BroadcastEmailsTotal counts per-recipient broadcast outcomes
	BroadcastEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_emails_total",
			Help: "Total number of broadcast emails partitioned by result",
		},
		[]string{"result"},
	)

	// MailSendFailures counts SMTP dispatch failures by host
	MailSendFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_send_failures_total",
			Help: "Total number of failed SMTP sends",
		},
		[]string{"host"},
	)
)
