package repo

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"fundledger/internal/domain"
	"fundledger/internal/ledger"
	"fundledger/internal/sqlinline"
)

type execCall struct {
	sql  string
	args []any
}

// fakeDB records Exec calls and serves canned rows per query string.
type fakeDB struct {
	execs   []execCall
	execErr error
	rows    map[string][][]any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	rows, ok := f.rows[sql]
	if !ok {
		return nil, fmt.Errorf("unexpected query: %s", sql)
	}
	return &fakeRows{rows: rows}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return &fakeRows{}
}

func (f *fakeDB) lastExec(t *testing.T) execCall {
	t.Helper()
	if len(f.execs) == 0 {
		t.Fatal("no Exec calls recorded")
	}
	return f.execs[len(f.execs)-1]
}

// fakeRows implements pgx.Rows over canned values.
type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return pgx.ErrNoRows
	}
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan arity mismatch: %d dest, %d values", len(dest), len(row))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *string:
			*d = v.(string)
		case *bool:
			*d = v.(bool)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return fmt.Errorf("unsupported scan dest %T", dest[i])
		}
	}
	return nil
}

func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) Close()                                       {}
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }

func (r *fakeRows) Values() ([]any, error) {
	return nil, errors.New("values not supported in fake rows")
}

var eventTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	a := NewArchive(db, zerolog.Nop())

	if err := a.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema error = %v", err)
	}
	if got := db.lastExec(t).sql; got != sqlinline.QSchema {
		t.Fatalf("EnsureSchema ran %q", got)
	}

	db.execErr = errors.New("boom")
	if err := a.EnsureSchema(context.Background()); err == nil {
		t.Fatal("expected error when schema exec fails")
	}
}

func TestRecordCampaignEvent(t *testing.T) {
	db := &fakeDB{}
	a := NewArchive(db, zerolog.Nop())

	snap := domain.Campaign{
		ID:              3,
		Owner:           "0xOwner",
		Title:           "Wells",
		Description:     "Clean water",
		Target:          big.NewInt(1000),
		Deadline:        eventTime.Add(24 * time.Hour),
		AmountCollected: big.NewInt(250),
	}
	a.Record(context.Background(), ledger.Event{
		ID:         "ev-1",
		Kind:       ledger.EventCampaignCreated,
		Actor:      "0xOwner",
		CampaignID: 3,
		Timestamp:  eventTime,
		Campaign:   &snap,
	})

	if len(db.execs) != 2 {
		t.Fatalf("exec count = %d, want event insert + upsert", len(db.execs))
	}
	if db.execs[0].sql != sqlinline.QInsertLedgerEvent {
		t.Fatalf("first exec = %q", db.execs[0].sql)
	}
	upsert := db.execs[1]
	if upsert.sql != sqlinline.QUpsertCampaign {
		t.Fatalf("second exec = %q", upsert.sql)
	}
	if upsert.args[0] != int64(3) || upsert.args[4] != "1000" || upsert.args[6] != "250" {
		t.Fatalf("upsert args = %v", upsert.args)
	}
}

func TestRecordDonationEvents(t *testing.T) {
	db := &fakeDB{}
	a := NewArchive(db, zerolog.Nop())
	ctx := context.Background()

	a.Record(ctx, ledger.Event{
		ID:         "ev-2",
		Kind:       ledger.EventDonationReceived,
		Actor:      "0xDonor",
		CampaignID: 1,
		Donor:      "0xDonor",
		Amount:     big.NewInt(77),
		Timestamp:  eventTime,
	})
	insert := db.lastExec(t)
	if insert.sql != sqlinline.QInsertDonation {
		t.Fatalf("donation insert sql = %q", insert.sql)
	}
	if insert.args[0] != int64(1) || insert.args[1] != "0xDonor" || insert.args[2] != "77" {
		t.Fatalf("donation insert args = %v", insert.args)
	}

	a.Record(ctx, ledger.Event{
		ID:         "ev-3",
		Kind:       ledger.EventDonationTransferred,
		CampaignID: 1,
		Amount:     big.NewInt(77),
		Timestamp:  eventTime,
	})
	bump := db.lastExec(t)
	if bump.sql != qBumpCampaignAmount {
		t.Fatalf("bump sql = %q", bump.sql)
	}
	if bump.args[0] != int64(1) || bump.args[1] != "77" {
		t.Fatalf("bump args = %v", bump.args)
	}
}

func TestRecordAdminEventNormalizesIdentity(t *testing.T) {
	db := &fakeDB{}
	a := NewArchive(db, zerolog.Nop())

	a.Record(context.Background(), ledger.Event{
		ID:        "ev-4",
		Kind:      ledger.EventAdminUpdated,
		Actor:     "0xOwner",
		Recipient: "0xHelPer",
		Enabled:   true,
		Timestamp: eventTime,
	})

	flag := db.lastExec(t)
	if flag.sql != sqlinline.QSetAdminFlag {
		t.Fatalf("flag sql = %q", flag.sql)
	}
	if flag.args[0] != "0xhelper" || flag.args[1] != true {
		t.Fatalf("flag args = %v", flag.args)
	}
}

func TestRecordSwallowsWriteFailures(t *testing.T) {
	db := &fakeDB{execErr: errors.New("pg down")}
	a := NewArchive(db, zerolog.Nop())

	// must not panic or propagate; the ledger call already committed
	a.Record(context.Background(), ledger.Event{
		ID:         "ev-5",
		Kind:       ledger.EventDonationReceived,
		CampaignID: 0,
		Donor:      "0xDonor",
		Amount:     big.NewInt(1),
		Timestamp:  eventTime,
	})
}

func TestLoad(t *testing.T) {
	deadline := eventTime.Add(48 * time.Hour)
	db := &fakeDB{rows: map[string][][]any{
		sqlinline.QListCampaigns: {
			{int64(0), "0xOwner", "Wells", "water", "1000", deadline, "300", false},
			{int64(1), "0xOwner", "Gone", "", "500", deadline, "0", true},
		},
		sqlinline.QListDonations: {
			{int64(0), "0xDonor", "300", eventTime},
		},
		sqlinline.QListAdminFlags: {
			{"0xowner", true},
		},
	}}
	a := NewArchive(db, zerolog.Nop())

	campaigns, donations, admins, err := a.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if len(campaigns) != 2 || len(donations) != 1 || len(admins) != 1 {
		t.Fatalf("Load sizes = %d/%d/%d", len(campaigns), len(donations), len(admins))
	}
	if campaigns[0].Target.String() != "1000" || campaigns[0].AmountCollected.String() != "300" {
		t.Fatalf("campaign amounts = %s/%s", campaigns[0].Target, campaigns[0].AmountCollected)
	}
	if !campaigns[1].Deleted {
		t.Fatal("deleted flag lost in replay")
	}
	if donations[0].Amount.String() != "300" || donations[0].Donor != "0xDonor" {
		t.Fatalf("donation = %+v", donations[0])
	}
	if !admins["0xowner"] {
		t.Fatalf("admins = %v", admins)
	}
}

func TestLoadRestoresLedger(t *testing.T) {
	deadline := eventTime.Add(48 * time.Hour)
	db := &fakeDB{rows: map[string][][]any{
		sqlinline.QListCampaigns: {
			{int64(0), "0xOwner", "Wells", "water", "1000", deadline, "300", false},
		},
		sqlinline.QListDonations: {
			{int64(0), "0xDonor", "300", eventTime},
		},
		sqlinline.QListAdminFlags: {
			{"0xowner", true},
		},
	}}
	a := NewArchive(db, zerolog.Nop())

	campaigns, donations, admins, err := a.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	book := ledger.New("", nil, nil)
	book.Restore(campaigns, donations, admins)

	if !book.IsAdmin("0xOwner") {
		t.Fatal("restored admin flag missing")
	}
	got := book.AllCampaigns()
	if len(got) != 1 || got[0].AmountCollected.String() != "300" {
		t.Fatalf("restored campaigns = %+v", got)
	}
	if ds := book.Donators(0); len(ds) != 1 || ds[0].Amount.String() != "300" {
		t.Fatalf("restored donations = %+v", ds)
	}
}
