package xdatetime

import "testing"

func TestValidateCatalogue(t *testing.T) {
	if err := ValidateCatalogue(Catalogue); err != nil {
		t.Fatalf("built-in catalogue failed its own invariants: %v", err)
	}
}

func TestValidateCatalogueCatchesBadWindow(t *testing.T) {
	bad := []ParseData{
		{Pattern: "%Y-%m-%d", Layout: "2006-01-02", HasYear: true, HasTZ: false,
			WindowBegin: 5, WindowEnd: 3, CaptureBegin: 0, CaptureEnd: 1},
	}
	if err := ValidateCatalogue(bad); err == nil {
		t.Fatalf("expected an error for window_begin > window_end")
	}
}

func TestValidateCatalogueCatchesHasYearMismatch(t *testing.T) {
	bad := []ParseData{
		{Pattern: "%m-%d %H:%M:%S", Layout: "01-02 15:04:05", HasYear: true, HasTZ: false,
			WindowBegin: 0, WindowEnd: 14, CaptureBegin: 0, CaptureEnd: 14},
	}
	if err := ValidateCatalogue(bad); err == nil {
		t.Fatalf("expected an error: pattern has no %%Y/%%y but HasYear=true")
	}
}

func TestValidateCatalogueCatchesDuplicate(t *testing.T) {
	one := ParseData{Pattern: "%Y-%m-%d %H:%M:%S", Layout: "2006-01-02 15:04:05",
		HasYear: true, HasTZ: false, WindowBegin: 0, WindowEnd: 19, CaptureBegin: 0, CaptureEnd: 19}
	dup := []ParseData{one, one}
	if err := ValidateCatalogue(dup); err == nil {
		t.Fatalf("expected an error for a duplicate entry")
	}
}

func TestValidateCatalogueCatchesShortPattern(t *testing.T) {
	bad := []ParseData{
		{Pattern: "%H:%M", Layout: "15:04", HasYear: false, HasTZ: false,
			WindowBegin: 0, WindowEnd: 5, CaptureBegin: 0, CaptureEnd: 5},
	}
	if err := ValidateCatalogue(bad); err == nil {
		t.Fatalf("expected an error: pattern shorter than 6 bytes")
	}
}

func TestEffectiveLenMatchesCaptureWidth(t *testing.T) {
	for i, p := range Catalogue {
		eff := p.effectiveLen()
		capLen := p.CaptureEnd - p.CaptureBegin
		if eff > capLen {
			t.Errorf("entry %d (%s): effectiveLen %d exceeds capture width %d", i, p.Pattern, eff, capLen)
		}
	}
}
