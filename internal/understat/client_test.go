package understat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestUnescapeJS(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`\x22hello\x22`, `"hello"`},
		{`\x5B\x7B\x22id\x22\x3A1\x7D\x5D`, `[{"id":1}]`},
		{`café`, "café"},
		{`a\\b`, `a\b`},
		{`plain`, `plain`},
	}
	for _, c := range cases {
		if got := unescapeJS(c.in); got != c.want {
			t.Errorf("unescapeJS(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractVar(t *testing.T) {
	html := `<script>
	var datesData = JSON.parse('\x5B\x7B\x22id\x22\x3A\x2226732\x22\x7D\x5D');
	var teamsData = JSON.parse('\x7B\x7D');
	</script>`

	got := extractVar(html, "datesData")
	if got != `[{"id":"26732"}]` {
		t.Errorf("datesData = %q", got)
	}
	if extractVar(html, "playersData") != "" {
		t.Error("missing variable should extract as empty")
	}
}

func TestExtractLeague(t *testing.T) {
	html := `<html><body>
	<script>var datesData = JSON.parse('\x5B\x5D');</script>
	<script>var teamsData = JSON.parse('\x7B\x7D');</script>
	<script>var playersData = JSON.parse('\x5B\x5D');</script>
	</body></html>`

	league, err := ExtractLeague(html)
	if err != nil {
		t.Fatal(err)
	}
	if league.DatesData != "[]" || league.TeamsData != "{}" || league.PlayersData != "[]" {
		t.Errorf("league = %+v", league)
	}
}

func TestExtractLeagueMissingDatesData(t *testing.T) {
	if _, err := ExtractLeague("<html><body>nothing here</body></html>"); err == nil {
		t.Fatal("page without datesData should error")
	}
	if _, err := ExtractLeague("<html>"); err == nil || !strings.Contains(err.Error(), "datesData") {
		t.Fatalf("want datesData error, got %v", err)
	}
}

func TestFresh(t *testing.T) {
	dir := t.TempDir()
	fresh := filepath.Join(dir, "fresh.csv")
	if err := os.WriteFile(fresh, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "stale.csv")
	if err := os.WriteFile(stale, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	if !Fresh(CacheMaxAge, fresh) {
		t.Error("just-written file should be fresh")
	}
	if Fresh(CacheMaxAge, stale) {
		t.Error("2-day-old file should be stale")
	}
	if Fresh(CacheMaxAge, fresh, stale) {
		t.Error("one stale file should make the set stale")
	}
	if Fresh(CacheMaxAge, filepath.Join(dir, "missing.csv")) {
		t.Error("missing file should not be fresh")
	}
}
