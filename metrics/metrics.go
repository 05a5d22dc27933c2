// Copyright (c) 2026 KU Polls Authors. All rights reserved.

// Package metrics defines Prometheus counters for the voting engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// VoteMetrics tracks ledger activity per question. Counters are
// registered with the default registry, so NewVoteMetrics must be
// called at most once per process.
type VoteMetrics struct {
	VotesRecorded *prometheus.CounterVec
	VotesChanged  *prometheus.CounterVec
	VotesRejected *prometheus.CounterVec
}

func NewVoteMetrics(namespace string) *VoteMetrics {
	return &VoteMetrics{
		VotesRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_recorded_total",
				Help:      "Total number of first-time votes recorded",
			},
			[]string{"question_id"},
		),
		VotesChanged: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_changed_total",
				Help:      "Total number of votes overwritten by a re-vote",
			},
			[]string{"question_id"},
		),
		VotesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_rejected_total",
				Help:      "Total number of vote attempts rejected",
			},
			[]string{"reason"},
		),
	}
}
