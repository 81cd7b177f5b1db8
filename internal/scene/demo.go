/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "vecraster/internal/domain"

// Demo returns the built-in sample scene: a red circle, a blue rectangle, a
// translucent green triangle and a black line on a 500x250 canvas.
func Demo() *Document {
	black := domain.Black
	cmds := []domain.DrawCommand{
		domain.Circle{
			Position: domain.Pt(100, 100),
			Radius:   50,
			Fill:     domain.RGBA(255, 0, 0, 255),
			Stroke:   domain.Solid(black, 2),
		},
		domain.Rectangle{
			Position: domain.Pt(200, 50),
			Width:    100,
			Height:   80,
			Fill:     domain.RGBA(0, 0, 255, 255),
		},
		domain.Polygon{
			Points: []domain.Point{
				{X: 350, Y: 150},
				{X: 400, Y: 50},
				{X: 450, Y: 150},
			},
			Fill:   domain.RGBA(0, 255, 0, 200),
			Stroke: domain.Solid(domain.Color{G: 128, A: 255}, 3),
		},
		domain.Line{
			Start:  domain.Pt(50, 200),
			End:    domain.Pt(450, 200),
			Stroke: domain.Solid(black, 4),
		},
	}
	d := FromCommands(500, 250, cmds)
	d.Name = "demo"
	d.Output = "demo.png"
	return d
}
