package aggregate

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundledger/internal/domain"
)

type fakeSource struct {
	campaigns []domain.Campaign
	donations map[int64][]domain.Donation
	admins    map[domain.Identity]bool
	now       time.Time
}

func (f *fakeSource) AllCampaigns() []domain.Campaign { return f.campaigns }

func (f *fakeSource) Donators(id int64) []domain.Donation { return f.donations[id] }

func (f *fakeSource) IsAdmin(identity domain.Identity) bool {
	return f.admins[identity.Normalize()]
}

func (f *fakeSource) Now() time.Time { return f.now }

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func newTestEngine(src *fakeSource) *Engine {
	if src.now.IsZero() {
		src.now = testNow
	}
	return New(src, src, src, src)
}

func donation(id int64, donor domain.Identity, amount int64, ts time.Time) domain.Donation {
	return domain.Donation{CampaignID: id, Donor: donor, Amount: big.NewInt(amount), Timestamp: ts}
}

func TestTotals(t *testing.T) {
	src := &fakeSource{
		campaigns: []domain.Campaign{
			{ID: 0, Owner: "0xA", Title: "Active", Target: big.NewInt(100), Deadline: testNow.Add(time.Hour), AmountCollected: big.NewInt(40)},
			{ID: 1, Owner: "0xA", Title: "Done", Target: big.NewInt(100), Deadline: testNow.Add(-time.Hour), AmountCollected: big.NewInt(100)},
			{ID: 2, Owner: "0xB", Title: "Gone", Target: big.NewInt(50), Deadline: testNow.Add(time.Hour), AmountCollected: big.NewInt(10), Deleted: true},
		},
		donations: map[int64][]domain.Donation{
			0: {donation(0, "0xDonorOne", 40, testNow)},
			1: {donation(1, "0xDonorOne", 60, testNow), donation(1, "0xdonorone", 40, testNow)},
			2: {donation(2, "0xDonorTwo", 10, testNow)},
		},
	}
	engine := newTestEngine(src)

	got := engine.Totals()
	assert.Equal(t, "150", got.TotalRaised.String(), "deleted campaigns still count")
	assert.Equal(t, 2, got.UniqueDonors, "donor identities are normalized")
	assert.Equal(t, 2, got.ActiveCampaigns)
	assert.Equal(t, 1, got.CompletedCampaigns)

	require.Len(t, got.Chart, 3)
	assert.Equal(t, "Active", got.Chart[0].Label)
	assert.Equal(t, "Gone (Deleted)", got.Chart[2].Label)
	assert.True(t, got.Chart[2].Deleted)
}

func TestTotalsEmpty(t *testing.T) {
	engine := newTestEngine(&fakeSource{})
	got := engine.Totals()
	assert.Zero(t, got.TotalRaised.Sign())
	assert.Zero(t, got.UniqueDonors)
	assert.Empty(t, got.Chart)
}

func TestProgress(t *testing.T) {
	src := &fakeSource{
		campaigns: []domain.Campaign{
			{ID: 0, Title: "Half", Target: big.NewInt(100), AmountCollected: big.NewInt(40)},
			{ID: 1, Title: "Over", Target: big.NewInt(100), AmountCollected: big.NewInt(130), Deleted: true},
		},
	}
	engine := newTestEngine(src)

	p, err := engine.Progress(0)
	require.NoError(t, err)
	assert.Equal(t, "40", p.Raised.String())
	assert.Equal(t, "60", p.Remaining.String())
	assert.False(t, p.Deleted)

	p, err = engine.Progress(1)
	require.NoError(t, err)
	assert.Equal(t, "0", p.Remaining.String(), "remaining clamps at zero")
	assert.True(t, p.Deleted, "deleted campaigns still report progress")

	_, err = engine.Progress(9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, WindowWeek, w)

	for _, valid := range []string{"today", "week", "month", "year"} {
		w, err := ParseWindow(valid)
		require.NoError(t, err)
		assert.Equal(t, Window(valid), w)
	}

	_, err = ParseWindow("quarter")
	assert.ErrorIs(t, err, ErrWindowInvalid)
}

func TestTimelineToday(t *testing.T) {
	src := &fakeSource{
		campaigns: []domain.Campaign{{ID: 0, Title: "C"}},
		donations: map[int64][]domain.Donation{
			0: {
				donation(0, "0xA", 10, testNow.Add(-2*time.Hour)),
				donation(0, "0xB", 20, testNow.Add(-30*time.Minute)),
				donation(0, "0xC", 5, testNow.Add(-30*time.Minute).Add(10*time.Second)),
				donation(0, "0xD", 99, testNow.Add(-26*time.Hour)), // yesterday
			},
		},
	}
	engine := newTestEngine(src)

	points, err := engine.Timeline(WindowToday)
	require.NoError(t, err)
	require.Len(t, points, 3, "each donation today is its own point")
	assert.Equal(t, "12:30", points[0].Label)
	assert.Equal(t, "10", points[0].Amount.String())

	// two donations in the same minute stay separate points sharing a label
	assert.Equal(t, "14:00", points[1].Label)
	assert.Equal(t, "20", points[1].Amount.String())
	assert.Equal(t, "14:00", points[2].Label)
	assert.Equal(t, "5", points[2].Amount.String())
}

func TestTimelineGroupsByDate(t *testing.T) {
	dayOne := testNow.Add(-3 * 24 * time.Hour)
	dayTwo := testNow.Add(-1 * 24 * time.Hour)
	src := &fakeSource{
		campaigns: []domain.Campaign{{ID: 0}, {ID: 1, Deleted: true}},
		donations: map[int64][]domain.Donation{
			0: {
				donation(0, "0xA", 10, dayOne),
				donation(0, "0xB", 5, dayTwo),
			},
			1: {
				donation(1, "0xC", 7, dayOne.Add(time.Hour)),
				donation(1, "0xD", 1, testNow.Add(-20*24*time.Hour)), // outside week
			},
		},
	}
	engine := newTestEngine(src)

	points, err := engine.Timeline(WindowWeek)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, dayOne.Format("02/01/2006"), points[0].Label)
	assert.Equal(t, "17", points[0].Amount.String(), "same-day donations are summed, deleted campaigns included")
	assert.Equal(t, "5", points[1].Amount.String())
	assert.True(t, points[0].At.Before(points[1].At), "points sorted ascending")

	month, err := engine.Timeline(WindowMonth)
	require.NoError(t, err)
	assert.Len(t, month, 3, "month window admits the older donation")

	_, err = engine.Timeline(Window("quarter"))
	assert.ErrorIs(t, err, ErrWindowInvalid)
}

func TestParsePagination(t *testing.T) {
	page, err := ParsePage(0)
	require.NoError(t, err)
	assert.Equal(t, Page(DefaultPage), page)

	perPage, err := ParsePerPage(0)
	require.NoError(t, err)
	assert.Equal(t, PerPage(DefaultPerPage), perPage)

	_, err = ParsePage(-1)
	assert.ErrorIs(t, err, ErrPageNotPositive)
	_, err = ParsePerPage(-1)
	assert.ErrorIs(t, err, ErrPerPageNotPositive)
	_, err = ParsePerPage(MaxPerPage + 1)
	assert.ErrorIs(t, err, ErrPerPageTooLarge)

	perPage, err = ParsePerPage(MaxPerPage)
	require.NoError(t, err)
	assert.Equal(t, PerPage(MaxPerPage), perPage)
}

func TestLedgerView(t *testing.T) {
	src := &fakeSource{
		campaigns: []domain.Campaign{
			{ID: 0, Owner: "0xAdmin", Title: "First"},
			{ID: 1, Owner: "0xPlain", Title: "Second", Deleted: true},
		},
		donations: map[int64][]domain.Donation{},
		admins:    map[domain.Identity]bool{domain.Identity("0xAdmin").Normalize(): true},
	}
	for i := int64(0); i < 10; i++ {
		cid := i % 2
		src.donations[cid] = append(src.donations[cid],
			donation(cid, "0xDonor", 100+i, testNow.Add(time.Duration(i)*time.Minute)))
	}
	engine := newTestEngine(src)

	first := engine.Ledger(1, 7)
	assert.Equal(t, 10, first.TotalRows)
	assert.Equal(t, 2, first.TotalPages)
	require.Len(t, first.Rows, 7)
	assert.False(t, first.HasPrevious())
	assert.True(t, first.HasNext())

	// newest first
	assert.Equal(t, "109", first.Rows[0].Amount.String())
	assert.True(t, first.Rows[0].Timestamp.After(first.Rows[1].Timestamp))

	last := engine.Ledger(2, 7)
	require.Len(t, last.Rows, 3)
	assert.True(t, last.HasPrevious())
	assert.False(t, last.HasNext())

	beyond := engine.Ledger(5, 7)
	assert.Empty(t, beyond.Rows)
	assert.Equal(t, 10, beyond.TotalRows)
	assert.Equal(t, 2, beyond.TotalPages)

	row := first.Rows[0]
	assert.Equal(t, "Second", row.CampaignTitle)
	assert.True(t, row.CampaignDeleted, "deleted campaigns stay in the audit view")
	assert.False(t, row.DonorIsAdmin)
	assert.False(t, row.OwnerIsAdmin)

	adminRow := first.Rows[1]
	assert.Equal(t, "First", adminRow.CampaignTitle)
	assert.True(t, adminRow.OwnerIsAdmin, "owner tagged by live admin lookup")
}

func TestLedgerViewEmpty(t *testing.T) {
	engine := newTestEngine(&fakeSource{})
	page := engine.Ledger(1, 7)
	assert.Empty(t, page.Rows)
	assert.Zero(t, page.TotalRows)
	assert.Zero(t, page.TotalPages)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrevious())
}
