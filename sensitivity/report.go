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

package sensitivity

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteReport renders the estimated indices as one table per output
// channel. Confidence bounds are included when Run computed them.
func (s *Sobol) WriteReport(w io.Writer) error {
	if s.First == nil {
		return fmt.Errorf("WriteReport: no estimates available; call Run first")
	}
	nOut := len(s.First[0])
	for o := 0; o < nOut; o++ {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		if nOut > 1 {
			t.SetTitle(fmt.Sprintf("output channel %d", o))
		}
		if s.FirstCI == nil {
			t.AppendHeader(table.Row{"variable", "first order", "total order"})
			for i := range s.First {
				t.AppendRow(table.Row{
					fmt.Sprintf("x%d", i),
					fmt.Sprintf("%.4f", s.First[i][o]),
					fmt.Sprintf("%.4f", s.Total[i][o]),
				})
			}
		} else {
			t.AppendHeader(table.Row{"variable", "first order", "conf. interval", "total order", "conf. interval"})
			for i := range s.First {
				t.AppendRow(table.Row{
					fmt.Sprintf("x%d", i),
					fmt.Sprintf("%.4f", s.First[i][o]),
					fmt.Sprintf("[%.4f, %.4f]", s.FirstCI[o][i].Lower, s.FirstCI[o][i].Upper),
					fmt.Sprintf("%.4f", s.Total[i][o]),
					fmt.Sprintf("[%.4f, %.4f]", s.TotalCI[o][i].Lower, s.TotalCI[o][i].Upper),
				})
			}
		}
		t.Render()
	}
	return nil
}
