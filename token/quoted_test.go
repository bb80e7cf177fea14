package token

import "testing"

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"plain",
		"with \"quotes\"",
		"back\\slash",
		"ws \b\f\n\r\t",
		"ctl \x01\x1f",
		"unicode é世",
		"astral \U0001f600",
	} {
		q := Quote(s)
		sz, err := scanQuoted([]byte(q))
		if err != nil {
			t.Fatalf("%q: %v", q, err)
		}
		if sz != len(q) {
			t.Fatalf("%q: scanned %d of %d", q, sz, len(q))
		}
		if got := QuotedToString([]byte(q)); got != s {
			t.Fatalf("round trip %q: got %q", s, got)
		}
	}
}

func TestQuoteControls(t *testing.T) {
	if got := Quote("a\x01b"); got != `"ab"` {
		t.Fatalf("got %q", got)
	}
	if got := Quote("a\tb"); got != `"a\tb"` {
		t.Fatalf("got %q", got)
	}
}

func TestUnescapeSurrogatePair(t *testing.T) {
	if got := QuotedToString([]byte(`"😀"`)); got != "\U0001f600" {
		t.Fatalf("got %q", got)
	}
	if got := QuotedToString([]byte(`"A"`)); got != "A" {
		t.Fatalf("got %q", got)
	}
}
