package requests

import "testing"

func TestExtractLinksRequest_ApplyDefaults(t *testing.T) {
	req := ExtractLinksRequest{URL: "https://example.com"}
	req.ApplyDefaults()

	if req.Timeout != 10 {
		t.Errorf("Timeout = %d, want 10", req.Timeout)
	}
	if req.WaitTime != 15 {
		t.Errorf("WaitTime = %d, want 15", req.WaitTime)
	}
	if req.IncludeExternal == nil || !*req.IncludeExternal {
		t.Error("IncludeExternal should default to true")
	}
	if req.UseBrowser || req.FilterDomain {
		t.Error("boolean options should stay off by default")
	}
}

func TestExtractLinksRequest_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	disabled := false
	req := ExtractLinksRequest{
		URL:             "https://example.com",
		Timeout:         30,
		WaitTime:        5,
		IncludeExternal: &disabled,
	}
	req.ApplyDefaults()

	if req.Timeout != 30 || req.WaitTime != 5 {
		t.Errorf("explicit budgets changed: timeout=%d wait=%d", req.Timeout, req.WaitTime)
	}
	if *req.IncludeExternal {
		t.Error("explicit include_external=false was overwritten")
	}
}

func TestExtractLinksRequest_External(t *testing.T) {
	req := ExtractLinksRequest{}
	if !req.External() {
		t.Error("unset include_external should read as true")
	}

	disabled := false
	req.IncludeExternal = &disabled
	if req.External() {
		t.Error("explicit false should read as false")
	}
}
