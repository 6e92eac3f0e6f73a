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

package utils

import (
	"time"

	"github.com/0xsoniclabs/alea/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OperationThreshold is the number of operations between two progress
// reports.
const OperationThreshold = 1000

// ProgressTracker reports progress of long-running sampling and model
// evaluation loops.
type ProgressTracker struct {
	step    int           // number of operations processed so far
	target  int           // total number of operations
	start   time.Time     // time the tracker was created
	last    time.Time     // time of the last report
	printer *message.Printer
	log     logger.Logger
}

// NewProgressTracker creates a tracker for the given number of operations.
func NewProgressTracker(target int, log logger.Logger) *ProgressTracker {
	now := time.Now()
	return &ProgressTracker{
		step:    0,
		target:  target,
		start:   now,
		last:    now,
		printer: message.NewPrinter(language.English),
		log:     log,
	}
}

// PrintProgress counts one operation and reports every OperationThreshold
// operations.
func (pt *ProgressTracker) PrintProgress() {
	pt.step++
	if pt.step%OperationThreshold == 0 {
		now := time.Now()
		hours, minutes, seconds := logger.ParseTime(now.Sub(pt.start))
		rate := float64(OperationThreshold) / now.Sub(pt.last).Seconds()
		pt.log.Infof("Elapsed time: %v:%02d:%02d; finished %v of %v operations; current rate: %.2f op/s",
			hours, minutes, seconds,
			pt.printer.Sprintf("%d", pt.step),
			pt.printer.Sprintf("%d", pt.target),
			rate)
		pt.last = now
	}
}
