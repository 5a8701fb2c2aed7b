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

// Package host collects host and process resource metrics for health reporting.
//
// On Linux the host figures (memory, load averages, uptime, process RSS) are
// read from /proc through github.com/prometheus/procfs. Figures that cannot be
// read are reported as zero; Go runtime figures (heap, cores, platform) are
// always available.
//
//	c := host.NewCollector()
//	snap, err := c.Collect(ctx)
package host
