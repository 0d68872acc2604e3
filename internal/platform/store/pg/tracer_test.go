package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	cases := []struct{ in, want string }{
		{"select 1", "select 1"},
		{"  select   1  ", "select 1"},
		{"SELECT\t*\nFROM\r\tplaces WHERE  id =  $1", "SELECT * FROM places WHERE id = $1"},
		{"", ""},
	}
	for _, c := range cases {
		if got := compact(c.in); got != c.want {
			t.Fatalf("compact(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestTracer_Levels(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	type line struct {
		Level     string  `json:"level"`
		ElapsedMS float64 `json:"elapsed_ms"`
		SQL       string  `json:"sql"`
		Component string  `json:"component"`
		Error     string  `json:"error"`
	}
	read := func() line {
		t.Helper()
		var l line
		if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &l); err != nil {
			t.Fatalf("decode %q: %v", buf.String(), err)
		}
		buf.Reset()
		return l
	}

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT\n 1", ElapsedUS: 1500})
	l := read()
	if l.Level != "info" || l.SQL != "SELECT 1" || l.ElapsedMS != 1.5 || l.Component != "pg" {
		t.Fatalf("unexpected %+v", l)
	}

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 1", Slow: true})
	if l := read(); l.Level != "warn" {
		t.Fatalf("slow query level %q", l.Level)
	}

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 1", Err: errors.New("boom")})
	if l := read(); l.Level != "warn" || l.Error != "boom" {
		t.Fatalf("failed query %+v", l)
	}
}
