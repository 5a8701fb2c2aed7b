// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var (
	advisorInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbmatch_advisor_invocations_total",
			Help: "Total number of model invocations by outcome",
		},
		[]string{"outcome"},
	)

	advisorInvocationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dbmatch_advisor_invocation_duration_seconds",
			Help:    "Duration of model invocations in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	validationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbmatch_validation_violations_total",
			Help: "Total number of request rule violations by field and rule",
		},
		[]string{"field", "rule"},
	)
)
