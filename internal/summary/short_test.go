package summary

import (
	"math"
	"strings"
	"testing"

	"github.com/jonathan/studentjobs/internal/types"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount *float64
		want   string
		wantOK bool
	}{
		{name: "nil", amount: nil, want: "", wantOK: false},
		{name: "zero", amount: ptr(0), want: "", wantOK: false},
		{name: "negative", amount: ptr(-5), want: "", wantOK: false},
		{name: "negative ten", amount: ptr(-10), want: "", wantOK: false},
		{name: "NaN", amount: ptr(math.NaN()), want: "", wantOK: false},
		{name: "integer", amount: ptr(30), want: "€30", wantOK: true},
		{name: "decimal kept as written", amount: ptr(14.5), want: "€14.5", wantOK: true},
		{name: "no rounding", amount: ptr(17.64), want: "€17.64", wantOK: true},
		{name: "no thousands separator", amount: ptr(1200), want: "€1200", wantOK: true},
		{name: "large amount in plain digits", amount: ptr(1e20), want: "€100000000000000000000", wantOK: true},
		{name: "exponent from 1e21", amount: ptr(1e21), want: "€1e+21", wantOK: true},
		{name: "exponent with fraction", amount: ptr(1.5e21), want: "€1.5e+21", wantOK: true},
		{name: "smallest plain amount", amount: ptr(0.000001), want: "€0.000001", wantOK: true},
		{name: "tiny amount in exponent", amount: ptr(5e-7), want: "€5e-7", wantOK: true},
		{name: "infinity", amount: ptr(math.Inf(1)), want: "€Infinity", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Money(tt.amount)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortDescription_Scenarios(t *testing.T) {
	t.Run("numeric gig amount with description", func(t *testing.T) {
		job := types.RawJob{
			PerGigAmount:    ptr(30),
			DescriptionHTML: "<p>Help students find housing.</p> Short shifts.",
		}
		got := ShortDescription(job)
		assert.True(t, strings.HasPrefix(got, "€30 per gig — "), got)
		assert.Equal(t, "€30 per gig — Help students find housing.", got)
	})

	t.Run("text fallbacks when amount is zero", func(t *testing.T) {
		job := types.RawJob{
			PerGigAmount:      ptr(0),
			PerGigAmountText:  "Paid per task",
			PerSaleAmountText: "Bonus on close",
			DescriptionHTML:   "<p>Great team.</p>",
		}
		assert.Equal(t, "Paid per task — Bonus on close — Great team.", ShortDescription(job))
	})

	t.Run("negative amount only yields empty string", func(t *testing.T) {
		job := types.RawJob{PerGigAmount: ptr(-10)}
		assert.Equal(t, "", ShortDescription(job))
	})
}

func TestShortDescription(t *testing.T) {
	tests := []struct {
		name string
		job  types.RawJob
		want string
	}{
		{
			name: "sale amount only",
			job:  types.RawJob{PerSaleAmount: ptr(200)},
			want: "€200 per sale",
		},
		{
			name: "gig and sale amounts in order",
			job:  types.RawJob{PerSaleAmount: ptr(200), PerGigAmount: ptr(20)},
			want: "€20 per gig — €200 per sale",
		},
		{
			name: "numeric amount wins over text",
			job:  types.RawJob{PerSaleAmount: ptr(150), PerSaleAmountText: "Commission"},
			want: "€150 per sale",
		},
		{
			name: "description only",
			job:  types.RawJob{DescriptionHTML: "<p>Deliver meal boxes in Rotterdam; fixed shifts, paid mileage; uniform & equipment provided.</p>"},
			want: "Deliver meal boxes in Rotterdam; fixed shifts, paid mileage; uniform & equipment provided.",
		},
		{
			name: "sale text and description",
			job: types.RawJob{
				PerSaleAmountText: "150 euros per shift",
				DescriptionHTML:   "<p>Join a dynamic field team. Training included.</p>",
			},
			want: "150 euros per shift — Join a dynamic field team.",
		},
		{
			name: "whitespace-only description contributes nothing",
			job:  types.RawJob{PerGigAmount: ptr(25), DescriptionHTML: "<p>   </p>"},
			want: "€25 per gig",
		},
		{
			name: "nothing set",
			job:  types.RawJob{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortDescription(tt.job)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.HasPrefix(got, Separator))
			assert.False(t, strings.HasSuffix(got, Separator))
			assert.NotContains(t, got, Separator+Separator)
		})
	}
}

func TestShortDescription_Idempotent(t *testing.T) {
	job := types.RawJob{
		PerGigAmount:    ptr(20),
		DescriptionHTML: "<p>Visit properties on behalf of students, stream live video, and complete a short checklist.</p>",
	}
	first := ShortDescription(job)
	second := ShortDescription(job)
	assert.Equal(t, first, second)
}

func TestShortDescription_LongDescriptionTruncated(t *testing.T) {
	job := types.RawJob{DescriptionHTML: "<p>" + strings.Repeat("flexible ", 40) + "</p>"}
	got := ShortDescription(job)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestIncentives(t *testing.T) {
	assert.Equal(t, []string{"€20 per gig", "€200 per sale"}, Incentives(types.RawJob{PerGigAmount: ptr(20), PerSaleAmount: ptr(200)}))
	assert.Equal(t, []string{"€150 per shift"}, Incentives(types.RawJob{PerSaleAmount: ptr(0), PerSaleAmountText: "€150 per shift"}))
	assert.Empty(t, Incentives(types.RawJob{DescriptionHTML: "<p>No commission.</p>"}))
}
