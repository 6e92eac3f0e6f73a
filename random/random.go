// Copyright 2025 Sonic Labs
// This file is part of Alea Stochastic Analysis Infrastructure for Sonic
//
// Alea is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Alea is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Alea. If not, see <http://www.gnu.org/licenses/>.

// Package random materializes user-supplied random states into generators.
// Samplers and estimators take an explicit *rand.Rand rather than touching
// a global source so that runs are reproducible.
package random

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// State is a user-supplied source of randomness. Accepted values are nil
// (seed from the wall clock), an int, int64 or uint64 seed, or an already
// constructed *rand.Rand.
type State any

// Process materializes a random state into a generator. Integer seeds
// construct a fresh deterministic generator; an existing generator is
// passed through unchanged; any other value is rejected.
func Process(state State) (*rand.Rand, error) {
	switch v := state.(type) {
	case nil:
		return rand.New(rand.NewSource(uint64(time.Now().UnixNano()))), nil
	case int:
		return rand.New(rand.NewSource(uint64(v))), nil
	case int64:
		return rand.New(rand.NewSource(uint64(v))), nil
	case uint64:
		return rand.New(rand.NewSource(v)), nil
	case *rand.Rand:
		if v == nil {
			return nil, fmt.Errorf("Process: generator must not be nil")
		}
		return v, nil
	default:
		return nil, fmt.Errorf("Process: random state must be nil, an integer seed, or *rand.Rand; got %T", state)
	}
}
