package txqueue

import "testing"

func TestConfigSanitize(t *testing.T) {
	got := Config{}.sanitize()
	want := Config{
		PendingDepth:         DefaultPendingDepth,
		BanDepth:             DefaultBanDepth,
		PoolLedgerMultiplier: DefaultPoolLedgerMultiplier,
	}
	if got != want {
		t.Fatalf("sanitize() = %+v, want %+v", got, want)
	}
}

func TestConfigSanitizeLeavesValidFieldsAlone(t *testing.T) {
	in := Config{PendingDepth: 20, BanDepth: 5, PoolLedgerMultiplier: 2}
	if got := in.sanitize(); got != in {
		t.Fatalf("sanitize() = %+v, want %+v unchanged", got, in)
	}
}
