package rebase

import (
	"reflect"
	"testing"
	"time"

	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/opensource-finance/kestrel/internal/extract"
)

func sampleReport() *domain.NormalizedReport {
	return &domain.NormalizedReport{
		Name:          "Test Applicant",
		BureauScore:   "780",
		IdentityIDs:   []string{"ABCDE1234F"},
		ReportDate:    "2025-12-01",
		ConsumerFound: true,
		QECDate:       "2025-04-06T18:06:11.418Z",
		Summary: domain.AccountSummary{
			NoOfAccounts:       "3",
			TotalBalanceAmount: "120000",
			TotalPastDue:       "5000",
		},
		Accounts: []domain.TradeAccount{
			{
				AccountType: "Personal Loan",
				DateOpened:  "2024-01-15",
				History: []domain.HistoryEntry{
					{Key: "05-25", PaymentStatus: "030"},
					{Key: "04-25", PaymentStatus: "000"},
					{Key: "03-25", PaymentStatus: "000"},
					{Key: "garbled", PaymentStatus: "060"},
				},
			},
			{
				AccountType: "Credit Card",
				DateOpened:  "2025-04-07",
				History:     []domain.HistoryEntry{{Key: "05-25", PaymentStatus: "000"}},
			},
			{
				AccountType: "Gold Loan",
				DateOpened:  "unknown",
				History:     []domain.HistoryEntry{{Key: "06-25", PaymentStatus: "000"}},
			},
			{
				AccountType: "Auto Loan",
				DateOpened:  "06-04-2025", // on the cutoff day
			},
		},
	}
}

var cutoff = time.Date(2025, 4, 6, 18, 6, 11, 0, time.UTC)

func TestRebase(t *testing.T) {
	r := sampleReport()
	out := Rebase(r, cutoff)

	t.Run("ReferenceDate", func(t *testing.T) {
		if out.ReportDate != "2025-04-06" {
			t.Errorf("expected 2025-04-06, got %s", out.ReportDate)
		}
	})

	t.Run("AccountsOpenedAfterCutoffDropped", func(t *testing.T) {
		if len(out.Accounts) != 3 {
			t.Fatalf("expected 3 accounts, got %d", len(out.Accounts))
		}
		for _, acc := range out.Accounts {
			if acc.AccountType == "Credit Card" {
				t.Error("card opened after cutoff should be dropped")
			}
			if opened, ok := extract.ParseDate(acc.DateOpened); ok && opened.After(cutoff) {
				t.Errorf("account opened %s retained", acc.DateOpened)
			}
		}
	})

	t.Run("HistoryTruncatedToCutoffMonth", func(t *testing.T) {
		var keys []string
		for _, h := range out.Accounts[0].History {
			keys = append(keys, h.Key)
		}
		want := []string{"04-25", "03-25", "garbled"}
		if !reflect.DeepEqual(keys, want) {
			t.Errorf("expected %v, got %v", want, keys)
		}
		if len(out.Accounts[1].History) != 0 {
			t.Errorf("later-month history should be dropped, got %v", out.Accounts[1].History)
		}
	})

	t.Run("SummaryNotRecomputed", func(t *testing.T) {
		if out.Summary != r.Summary {
			t.Errorf("summary should carry over unchanged: %+v", out.Summary)
		}
	})

	t.Run("InputUntouched", func(t *testing.T) {
		if !reflect.DeepEqual(r, sampleReport()) {
			t.Error("input report was modified")
		}
		out.IdentityIDs[0] = "CHANGED"
		out.Accounts[0].History[0].PaymentStatus = "999"
		if r.IdentityIDs[0] != "ABCDE1234F" || r.Accounts[0].History[1].PaymentStatus != "000" {
			t.Error("rebased report shares state with its input")
		}
	})
}

func TestRebaseIdempotent(t *testing.T) {
	once := Rebase(sampleReport(), cutoff)
	twice := Rebase(once, cutoff)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("rebase is not idempotent:\n%+v\n%+v", once, twice)
	}
}

func TestRebaseShiftsWindows(t *testing.T) {
	r := sampleReport()
	f := extract.Filter{Type: extract.TypeLoans, Status: extract.StatusAll}

	// From December the May delinquency is outside a 3-month window.
	if got := extract.MaxDPDInWindow(r, 3, f); got != 0 {
		t.Fatalf("expected 0 before rebasing, got %d", got)
	}

	late := Rebase(r, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	if got := extract.MaxDPDInWindow(late, 3, f); got != 30 {
		t.Errorf("expected 30 as of June, got %d", got)
	}
}

func TestAsOfQEC(t *testing.T) {
	t.Run("WithQEC", func(t *testing.T) {
		out, ok := AsOfQEC(sampleReport())
		if !ok {
			t.Fatal("expected QEC rebase")
		}
		if out.ReportDate != "2025-04-06" || len(out.Accounts) != 3 {
			t.Errorf("unexpected rebased report: %s, %d accounts", out.ReportDate, len(out.Accounts))
		}
	})

	for _, qec := range []string{"", "not-a-date", "06-04-2025"} {
		t.Run("Unusable "+qec, func(t *testing.T) {
			r := sampleReport()
			r.QECDate = qec
			out, ok := AsOfQEC(r)
			if ok || out != r {
				t.Errorf("expected input back unchanged for %q", qec)
			}
		})
	}
}
