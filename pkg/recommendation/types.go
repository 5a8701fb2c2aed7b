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

// Request field names as they appear on the wire.
const (
	FieldProductCategory        = "productCategory"
	FieldDataSize               = "dataSize"
	FieldInitialUsers           = "initialUsers"
	FieldReadWritePattern       = "readWritePattern"
	FieldSchemaChangeFrequency  = "schemaChangeFrequency"
	FieldDataAccuracyImportance = "dataAccuracyImportance"
	FieldScalabilityImportance  = "scalabilityImportance"
	FieldBudget                 = "budget"
	FieldUserGeography          = "userGeography"
	FieldLatencyImportance      = "latencyImportance"
)

// Request describes the product whose database is being chosen.
// A Request is only produced by Validate, so every field is populated and
// every importance is within [MinImportance, MaxImportance].
type Request struct {
	ProductCategory        string `json:"productCategory" yaml:"productCategory"`
	DataSize               string `json:"dataSize" yaml:"dataSize"`
	InitialUsers           string `json:"initialUsers" yaml:"initialUsers"`
	ReadWritePattern       string `json:"readWritePattern" yaml:"readWritePattern"`
	SchemaChangeFrequency  string `json:"schemaChangeFrequency" yaml:"schemaChangeFrequency"`
	DataAccuracyImportance int    `json:"dataAccuracyImportance" yaml:"dataAccuracyImportance"`
	ScalabilityImportance  int    `json:"scalabilityImportance" yaml:"scalabilityImportance"`
	Budget                 string `json:"budget" yaml:"budget"`
	UserGeography          string `json:"userGeography" yaml:"userGeography"`
	LatencyImportance      int    `json:"latencyImportance" yaml:"latencyImportance"`
}

// Result is the model's recommendation, returned verbatim.
type Result struct {
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}
