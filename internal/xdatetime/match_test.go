package xdatetime

import (
	"errors"
	"testing"
	"time"
)

func TestParseBracketedXrdpForm(t *testing.T) {
	window := []byte("[20200113-11:03:06] [DEBUG] Closed socket 7")
	m, err := Parse(window, Catalogue, time.UTC)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := time.Date(2020, 1, 13, 11, 3, 6, 0, time.UTC)
	if !m.Time.Equal(want) {
		t.Errorf("got %v, want %v", m.Time, want)
	}
}

func TestParseProftpdXferlogForm(t *testing.T) {
	window := []byte("Sat Oct 03 11:26:12 2020 0 192.168.1.12 0 /var/log/xferlog")
	m, err := Parse(window, Catalogue, time.UTC)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := time.Date(2020, time.October, 3, 11, 26, 12, 0, time.UTC)
	if !m.Time.Equal(want) {
		t.Errorf("got %v, want %v", m.Time, want)
	}
}

func TestParseMillisWithNumericTZ(t *testing.T) {
	window := []byte("2021-07-04T08:09:10.123-0700 request completed")
	m, err := Parse(window, Catalogue, time.UTC)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Time.Nanosecond() != 123000000 {
		t.Errorf("got nanosecond %d, want 123000000", m.Time.Nanosecond())
	}
	_, offset := m.Time.Zone()
	if offset != -7*3600 {
		t.Errorf("got zone offset %d, want %d", offset, -7*3600)
	}
}

func TestParseYearlessFormReturnsErrNoYear(t *testing.T) {
	window := []byte("Mar  9 08:10:29 hostname1 kernel: something happened")
	_, err := Parse(window, Catalogue, time.UTC)
	if !errors.Is(err, ErrNoYear) {
		t.Fatalf("got err %v, want ErrNoYear", err)
	}
}

func TestParseNoMatch(t *testing.T) {
	window := []byte("hello world, this line carries no timestamp whatsoever")
	_, err := Parse(window, Catalogue, time.UTC)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("got err %v, want ErrNoMatch", err)
	}
}

func TestYearDigitPrefilterRejectsBadYear(t *testing.T) {
	p := &Catalogue[0]
	window := make([]byte, p.WindowEnd)
	for i := range window {
		window[i] = 'x'
	}
	if yearDigitPrefilter(window, p) {
		t.Fatalf("prefilter should reject a non-digit year byte")
	}
}

func TestYearDigitPrefilterAcceptsWeekdayLeadingForm(t *testing.T) {
	var p *ParseData
	for i := range Catalogue {
		if Catalogue[i].Pattern == "%a %b %d %H:%M:%S %Y " {
			p = &Catalogue[i]
			break
		}
	}
	if p == nil {
		t.Fatalf("ctime/proftpd pattern not found in catalogue")
	}
	window := []byte("Sat Oct 03 11:26:12 2020 0 192.168.1.12 0 /var/log/xferlog")
	if !yearDigitPrefilter(window, p) {
		t.Fatalf("prefilter rejected a window it should accept: weekday-leading candidate %q", p.Pattern)
	}
}

func TestApplyDefaultLocLeavesTZPatternsAlone(t *testing.T) {
	p := &ParseData{HasTZ: true}
	in := time.Date(2020, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 3600))
	out := applyDefaultLoc(p, in, time.UTC)
	if !out.Equal(in) {
		t.Errorf("HasTZ pattern should not be rewritten")
	}
}
