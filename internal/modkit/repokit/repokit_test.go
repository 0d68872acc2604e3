package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tripmaker/internal/platform/testkit"
)

type fakeTag struct{ n int64 }

func (t fakeTag) String() string      { return "OK" }
func (t fakeTag) RowsAffected() int64 { return t.n }

type fakeRunner struct {
	execs []string
	txs   int
	ping  error
}

func (f *fakeRunner) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.execs = append(f.execs, sql)
	return fakeTag{n: 1}, nil
}

func (f *fakeRunner) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeRunner) QueryRow(context.Context, string, ...any) Row        { return nil }

func (f *fakeRunner) Tx(ctx context.Context, fn func(q Queryer) error) error {
	f.txs++
	return fn(f)
}

func (f *fakeRunner) Ping(context.Context) error { return f.ping }

func TestWithBeginHooks_RunsHooksFirst(t *testing.T) {
	f := &fakeRunner{}
	tx := WithBeginHooks(f, StatementTimeout(1500*time.Millisecond))
	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "INSERT 1")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if f.txs != 1 || len(f.execs) != 2 {
		t.Fatalf("txs=%d execs=%v", f.txs, f.execs)
	}
	if f.execs[0] != "SET LOCAL statement_timeout = 1500" || f.execs[1] != "INSERT 1" {
		t.Fatalf("execs %v", f.execs)
	}
}

func TestWithBeginHooks_HookErrorAborts(t *testing.T) {
	f := &fakeRunner{}
	boom := errors.New("boom")
	tx := WithBeginHooks(f, func(context.Context, Queryer) error { return boom })
	called := false
	err := tx.Tx(context.Background(), func(Queryer) error { called = true; return nil })
	if !errors.Is(err, boom) || called {
		t.Fatalf("err=%v called=%v", err, called)
	}
}

func TestWithBeginHooks_NoHooksReturnsInner(t *testing.T) {
	f := &fakeRunner{}
	if WithBeginHooks(f) != TxRunner(f) {
		t.Fatal("expected the inner runner back")
	}
}

func TestHookedTx_DelegatesOutsideTx(t *testing.T) {
	f := &fakeRunner{}
	tx := WithBeginHooks(f, StatementTimeout(time.Second))
	if _, err := tx.Exec(context.Background(), "SELECT 1"); err != nil {
		t.Fatal(err)
	}
	if len(f.execs) != 1 || f.execs[0] != "SELECT 1" {
		t.Fatalf("execs %v", f.execs)
	}
}

type repo struct{ q Queryer }

func TestBindFunc_MustBind(t *testing.T) {
	b := BindFunc[repo](func(q Queryer) repo { return repo{q: q} })
	f := &fakeRunner{}
	if got := MustBind[repo](b, f); got.q != Queryer(f) {
		t.Fatal("bound the wrong queryer")
	}
	testkit.MustPanic(t, func() { MustBind[repo](b, nil) })
}

type fakeGuard struct{ err error }

func (g fakeGuard) Guard(context.Context) error { return g.err }

func TestMustGuard(t *testing.T) {
	testkit.MustNotPanic(t, func() { MustGuard(context.Background(), fakeGuard{}) })
	testkit.MustPanic(t, func() { MustGuard(context.Background(), fakeGuard{err: errors.New("down")}) })
}

type deadlinePinger struct{ had bool }

func (p *deadlinePinger) Ping(ctx context.Context) error {
	_, p.had = ctx.Deadline()
	return nil
}

func TestPingWithin(t *testing.T) {
	p := &deadlinePinger{}
	if err := PingWithin(context.Background(), p, time.Second); err != nil || !p.had {
		t.Fatalf("err=%v deadline=%v", err, p.had)
	}
	err := PingWithin(context.Background(), nil, time.Second)
	if err == nil || !strings.Contains(err.Error(), "nil dependency") {
		t.Fatalf("got %v", err)
	}
	f := &fakeRunner{ping: errors.New("refused")}
	if err := PingWithin(context.Background(), f, 0); err == nil {
		t.Fatal("expected ping error")
	}
}
