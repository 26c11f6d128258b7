package normalize

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain paragraph", "<p>hello</p>", "<p>hello</p>"},
		{"break run collapses", "<p>a<br><br><br>b</p>", "<p>a<br>b</p>"},
		{"self-closing breaks", "<p>a<br/><br />b</p>", "<p>a<br>b</p>"},
		{"whitespace paragraph becomes marker", "<p>a</p><p>   </p><p>b</p>", "<p>a</p><p><br></p><p>b</p>"},
		{"nbsp paragraph becomes marker", "<p>a</p><p>&nbsp; &nbsp;</p><p>b</p>", "<p>a</p><p><br></p><p>b</p>"},
		{"break-only paragraph becomes marker", "<p>a</p><p><br><br></p><p>b</p>", "<p>a</p><p><br></p><p>b</p>"},
		{"marker runs collapse", "<p>a</p><p><br></p><p><br></p><p><br></p><p>b</p>", "<p>a</p><p><br></p><p>b</p>"},
		{"leading markers stripped", "<p><br></p><p><br></p><p>a</p>", "<p>a</p>"},
		{"trailing markers stripped", "<p>a</p><p><br></p><p><br></p>", "<p>a</p>"},
		{"only markers", "<p><br></p><p><br></p>", ""},
		{"crlf normalized", "<p>a</p>\r\n<p>b</p>", "<p>a</p>\n<p>b</p>"},
		{"surrounding whitespace trimmed", "  <p>a</p>  ", "<p>a</p>"},
		{"empty input", "", ""},
		{"attributes preserved", `<p class="x">a</p>`, `<p class="x">a</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"<p>hello</p>",
		"<p>a</p><p>   </p><p><br></p><p>b</p>",
		"<p><br></p><p>a<br><br>b</p><p><br></p>",
		"<p>a</p>\r\n<p>&nbsp;</p>\r\n<p>b</p>",
	}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Expected Normalize to be idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
