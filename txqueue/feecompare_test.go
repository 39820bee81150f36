package txqueue

import "testing"

func TestCanReplaceByFee(t *testing.T) {
	tests := []struct {
		name           string
		newFee, oldFee int64
		newOps, oldOps uint32
		want           bool
	}{
		{"exact bar", 1000, 100, 1, 1, true},
		{"one under the bar", 999, 100, 1, 1, false},
		{"ops scale both sides", 2000, 100, 2, 1, true},
		{"asymmetric ops favor replacement", 1000, 200, 1, 2, true},
		{"equal fees never clear a positive multiplier", 100, 100, 1, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			newTx := &fakeTx{fee: tc.newFee, ops: tc.newOps}
			oldTx := &fakeTx{fee: tc.oldFee, ops: tc.oldOps}
			if got := canReplaceByFee(newTx, oldTx); got != tc.want {
				t.Fatalf("canReplaceByFee(%+v, %+v) = %v, want %v", newTx, oldTx, got, tc.want)
			}
		})
	}
}
