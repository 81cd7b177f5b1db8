/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectInsetAndIntersect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	in := r.Inset(5, 5)
	if in != (Rect{X: 15, Y: 25, W: 90, H: 40}) {
		t.Fatalf("unexpected inset: %+v", in)
	}
	if !r.Inset(60, 0).Empty() {
		t.Fatalf("over-inset rect should be empty")
	}
	if grown := r.Inset(-2, -2); grown != (Rect{X: 8, Y: 18, W: 104, H: 54}) {
		t.Fatalf("negative inset should grow: %+v", grown)
	}

	canvas := Rect{W: 50, H: 50}
	if got := r.Intersect(canvas); got != (Rect{X: 10, Y: 20, W: 40, H: 30}) {
		t.Fatalf("intersect = %+v", got)
	}
	if !(Rect{X: 60, Y: 0, W: 5, H: 5}).Intersect(canvas).Empty() {
		t.Fatalf("disjoint rects should not intersect")
	}
}
