package version

import "testing"

func TestInfo_Defaults(t *testing.T) {
	bi := Info("tripmaker-api")
	if bi.Service != "tripmaker-api" {
		t.Fatalf("service %q", bi.Service)
	}
	if bi.Version != "dev" || bi.Date != "unknown" {
		t.Fatalf("unexpected defaults %+v", bi)
	}
	if bi.Commit == "" {
		t.Fatal("commit should never be empty")
	}
}
