package points

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestSummarize(t *testing.T) {
	now := time.Now().UTC()
	entry := func(change int, desc string) Entry {
		return Entry{StudentID: "2021A7PS0001", PointsChange: change, Description: desc, CreatedAt: now}
	}

	tests := []struct {
		name    string
		entries []Entry
		want    Summary
	}{
		{
			name: "empty ledger",
			want: Summary{},
		},
		{
			name: "distribution and redemption",
			entries: []Entry{
				entry(50, "Welcome bonus"),
				entry(-30, "Redeemed: Bamboo bottle"),
			},
			want: Summary{
				TotalDistributed: 50,
				TotalRedeemed:    30,
				CurrentBalance:   20,
				CO2SavedKg:       40,
			},
		},
		{
			name: "impact counters match descriptions case-insensitively",
			entries: []Entry{
				entry(10, "Submitted 3 plastic bottles"),
				entry(10, "SUBMITTED e-waste"),
				entry(20, "Attended: Campus Cleanup Drive"),
				entry(-5, "Redeemed: Sticker pack"),
			},
			want: Summary{
				TotalDistributed: 40,
				TotalRedeemed:    5,
				CurrentBalance:   35,
				CO2SavedKg:       32,
				ItemsRecycled:    2,
				EventsAttended:   1,
			},
		},
		{
			name: "co2 rounds down",
			entries: []Entry{
				entry(7, "Quiz reward"),
			},
			want: Summary{
				TotalDistributed: 7,
				CurrentBalance:   7,
				CO2SavedKg:       5,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.entries))
		})
	}
}

func TestServiceAward(t *testing.T) {
	repo := NewRepositoryMock()
	svc := NewService(repo)

	t.Run("no recipients", func(t *testing.T) {
		_, err := svc.Award(ctx, nil, 20, "Attended: Tree Plantation", TypeEvent)
		assert.Equal(t, ErrNoRecipients, err)
	})

	t.Run("one entry per student", func(t *testing.T) {
		ids := []string{"2021A7PS0001", "2021A7PS0002", "2021A7PS0003"}
		entries, err := svc.Award(ctx, ids, 20, "Attended: Tree Plantation", TypeEvent)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for i, e := range entries {
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, ids[i], e.StudentID)
			assert.Equal(t, 20, e.PointsChange)
			assert.Equal(t, "Attended: Tree Plantation", e.Description)
			assert.Equal(t, TypeEvent, e.Type)
			assert.False(t, e.CreatedAt.IsZero())
		}
	})

	t.Run("ledger reconciles", func(t *testing.T) {
		_, err := svc.Award(ctx, []string{"2021A7PS0001"}, -15, "Redeemed: Jute bag", TypePurchase)
		require.NoError(t, err)

		sum, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 60, sum.TotalDistributed)
		assert.Equal(t, 15, sum.TotalRedeemed)
		assert.Equal(t, 45, sum.CurrentBalance)
		assert.Equal(t, 3, sum.EventsAttended)
	})

	t.Run("for student returns own entries only", func(t *testing.T) {
		entries, err := svc.ForStudent(ctx, "2021A7PS0001")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, e := range entries {
			assert.Equal(t, "2021A7PS0001", e.StudentID)
		}
	})
}
