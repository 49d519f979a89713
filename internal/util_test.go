package internal

import (
	"reflect"
	"testing"
)

func TestReconstructPath(t *testing.T) {
	tests := []struct {
		name     string
		cameFrom map[int]int
		goal     int
		want     []int
	}{
		{name: "start only", cameFrom: map[int]int{}, goal: 7, want: []int{7}},
		{name: "chain", cameFrom: map[int]int{2: 1, 3: 2, 4: 3}, goal: 4, want: []int{1, 2, 3, 4}},
		{name: "ignores unrelated links", cameFrom: map[int]int{2: 1, 9: 8, 3: 2}, goal: 3, want: []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconstructPath(tt.cameFrom, tt.goal)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ReconstructPath() = %v, want %v", got, tt.want)
			}
		})
	}
}
