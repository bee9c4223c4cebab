// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a generator or engine is constructed
	// with malformed parameters. Nothing is produced when it is returned.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrBeginAfterEnd is a configuration error; errors.Is matches both
	ErrBeginAfterEnd = fmt.Errorf("%w: invalid interval; begin after end date", ErrConfiguration)

	// ErrInvalidQuery is returned for non-numeric or out-of-domain filter and
	// screen inputs
	ErrInvalidQuery = errors.New("invalid query")

	ErrUnknownSymbol      = errors.New("symbol not found in catalog")
	ErrInvariantViolation = errors.New("quote invariant violated")
)
